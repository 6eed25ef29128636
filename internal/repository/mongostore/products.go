package mongostore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/princy-boutique/storefront/internal/catalog"
	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

type ProductRepository struct {
	c *collections
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.Touch(r.c.now())
	if _, err := r.c.products.InsertOne(ctx, newProductDoc(product)); err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = r.c.now()
	doc := newProductDoc(product)

	set := bson.M{}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}
	delete(set, "_id")
	delete(set, "createdAt")

	var updated productDoc
	err = r.c.products.FindOneAndUpdate(ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", translate(err))
	}
	product.CreatedAt = updated.CreatedAt
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var deleted productDoc
	err := r.c.inTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := r.c.products.FindOneAndDelete(sc, bson.M{"_id": id.String()}).Decode(&deleted); err != nil {
			return err
		}
		if _, err := r.c.cart.DeleteMany(sc, bson.M{"productId": id.String()}); err != nil {
			return err
		}
		_, err := r.c.wishlist.DeleteMany(sc, bson.M{"productId": id.String()})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", translate(err))
	}
	return deleted.model(), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var doc productDoc
	if err := r.c.products.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to get product: %w", translate(err))
	}
	return doc.model(), nil
}

func (r *ProductRepository) List(ctx context.Context, pred catalog.Predicate, page *catalog.PageRequest) ([]models.Product, int64, error) {
	filter := PredicateFilter(pred)

	total, err := r.c.products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	if total == 0 || (page != nil && int64(page.Offset()) >= total) {
		return products, total, nil
	}

	opts := options.Find().SetSort(newestFirst)
	if page != nil {
		opts.SetSkip(int64(page.Offset())).SetLimit(int64(page.Limit))
	}
	var docs []productDoc
	if err := findAll(ctx, r.c.products, filter, opts, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	for _, d := range docs {
		products = append(products, *d.model())
	}
	return products, total, nil
}

func (r *ProductRepository) Search(ctx context.Context, term string, limit int) ([]models.ProductSummary, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetLimit(int64(limit)).
		SetProjection(summaryProjection)

	var docs []summaryDoc
	if err := findAll(ctx, r.c.products, SearchFilter(term), opts, &docs); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	results := make([]models.ProductSummary, 0, len(docs))
	for _, d := range docs {
		results = append(results, d.model())
	}
	return results, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, filter interface{}, opts *options.FindOptions, out interface{}) error {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

// productsByID loads the given products keyed by id. Missing ids are
// absent from the map.
func (c *collections) productsByID(ctx context.Context, ids []string) (map[string]*models.Product, error) {
	out := make(map[string]*models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := c.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	for _, d := range docs {
		out[d.ID] = d.model()
	}
	return out, nil
}

func (c *collections) productExists(ctx context.Context, id uuid.UUID) error {
	err := c.products.FindOne(ctx, bson.M{"_id": id.String()},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Err()
	if err != nil {
		return translate(err)
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
