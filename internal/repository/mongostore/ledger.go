package mongostore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

type CartRepository struct {
	c *collections
}

func (r *CartRepository) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartEntry, error) {
	if quantity > models.MaxCartQuantity {
		return nil, repository.ErrQuantityLimit
	}
	if err := r.c.productExists(ctx, productID); err != nil {
		return nil, fmt.Errorf("failed to add cart entry: %w", err)
	}

	// An entry already at the cap does not match, so the upsert falls
	// through to an insert and hits the unique index.
	filter := bson.M{
		"userId":    userID.String(),
		"productId": productID.String(),
		"quantity":  bson.M{"$lte": models.MaxCartQuantity - quantity},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc entryDoc
	var err error
	// Two concurrent upserts can both miss and race on insert; the loser
	// hits the unique index and retries as an increment. A second
	// duplicate means the existing entry is over the cap.
	for attempt := 0; attempt < 2; attempt++ {
		now := r.c.now()
		update := bson.M{
			"$inc":         bson.M{"quantity": quantity},
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{"_id": uuid.NewString(), "createdAt": now},
		}
		err = r.c.cart.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
		if !mongo.IsDuplicateKeyError(err) {
			break
		}
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, repository.ErrQuantityLimit
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add cart entry: %w", translate(err))
	}
	return r.withProduct(ctx, doc)
}

func (r *CartRepository) SetQuantity(ctx context.Context, userID, entryID uuid.UUID, quantity int) (*models.CartEntry, error) {
	var doc entryDoc
	err := r.c.cart.FindOneAndUpdate(ctx,
		bson.M{"_id": entryID.String(), "userId": userID.String()},
		bson.M{"$set": bson.M{"quantity": quantity, "updatedAt": r.c.now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart entry: %w", translate(err))
	}
	return r.withProduct(ctx, doc)
}

func (r *CartRepository) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	result, err := r.c.cart.DeleteOne(ctx, bson.M{"_id": entryID.String(), "userId": userID.String()})
	if err != nil {
		return fmt.Errorf("failed to delete cart entry: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CartRepository) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.c.cart.DeleteMany(ctx, bson.M{"userId": userID.String()}); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartEntry, error) {
	entries, err := r.c.loadCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return entries, nil
}

func (r *CartRepository) withProduct(ctx context.Context, doc entryDoc) (*models.CartEntry, error) {
	entry := doc.cartEntry()
	products, err := r.c.productsByID(ctx, []string{doc.ProductID})
	if err != nil {
		return nil, err
	}
	entry.Product = products[doc.ProductID]
	return &entry, nil
}

// loadCart reads the user's entries oldest first with products attached.
// ctx may be a session context.
func (c *collections) loadCart(ctx context.Context, userID uuid.UUID) ([]models.CartEntry, error) {
	var docs []entryDoc
	if err := findAll(ctx, c.cart, bson.M{"userId": userID.String()}, options.Find().SetSort(oldestFirst), &docs); err != nil {
		return nil, err
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ProductID
	}
	products, err := c.productsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries := make([]models.CartEntry, 0, len(docs))
	for _, d := range docs {
		entry := d.cartEntry()
		entry.Product = products[d.ProductID]
		entries = append(entries, entry)
	}
	return entries, nil
}

type OrderRepository struct {
	c *collections
}

func (r *OrderRepository) PlaceOrder(ctx context.Context, userID uuid.UUID, assemble repository.AssembleFunc) (*models.Order, error) {
	var order *models.Order
	err := r.c.inTransaction(ctx, func(sc mongo.SessionContext) error {
		entries, err := r.c.loadCart(sc, userID)
		if err != nil {
			return fmt.Errorf("failed to read cart: %w", err)
		}

		built, err := assemble(entries)
		if err != nil {
			return err
		}
		built.Touch(r.c.now())
		for i := range built.Items {
			if built.Items[i].ID == uuid.Nil {
				built.Items[i].ID = uuid.New()
			}
			built.Items[i].OrderID = built.ID
		}

		if _, err := r.c.orders.InsertOne(sc, newOrderDoc(built)); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if len(entries) > 0 {
			ids := make([]string, len(entries))
			for i, e := range entries {
				ids[i] = e.ID.String()
			}
			filter := bson.M{"_id": bson.M{"$in": ids}, "userId": userID.String()}
			if _, err := r.c.cart.DeleteMany(sc, filter); err != nil {
				return fmt.Errorf("failed to clear ordered cart entries: %w", err)
			}
		}

		order = built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var docs []orderDoc
	if err := findAll(ctx, r.c.orders, bson.M{"userId": userID.String()}, options.Find().SetSort(newestFirst), &docs); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var ids []string
	for _, d := range docs {
		for _, item := range d.Items {
			ids = append(ids, item.ProductID)
		}
	}
	products, err := r.c.productsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(docs))
	for _, d := range docs {
		order := d.model()
		for i := range order.Items {
			order.Items[i].Product = products[order.Items[i].ProductID.String()]
		}
		orders = append(orders, order)
	}
	return orders, nil
}

type WishlistRepository struct {
	c *collections
}

func (r *WishlistRepository) Add(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistEntry, error) {
	product, err := (&ProductRepository{r.c}).FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	now := r.c.now()
	doc := entryDoc{
		ID:        uuid.NewString(),
		UserID:    userID.String(),
		ProductID: productID.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.c.wishlist.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to add wishlist entry: %w", translate(err))
	}
	entry := doc.wishlistEntry()
	entry.Product = product
	return &entry, nil
}

func (r *WishlistRepository) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	if _, err := r.c.wishlist.DeleteOne(ctx, bson.M{"_id": entryID.String(), "userId": userID.String()}); err != nil {
		return fmt.Errorf("failed to delete wishlist entry: %w", err)
	}
	return nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistEntry, error) {
	var docs []entryDoc
	if err := findAll(ctx, r.c.wishlist, bson.M{"userId": userID.String()}, options.Find().SetSort(newestFirst), &docs); err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ProductID
	}
	products, err := r.c.productsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries := make([]models.WishlistEntry, 0, len(docs))
	for _, d := range docs {
		entry := d.wishlistEntry()
		entry.Product = products[d.ProductID]
		entries = append(entries, entry)
	}
	return entries, nil
}
