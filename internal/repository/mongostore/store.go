// Package mongostore implements the repository contracts on MongoDB.
// Order placement and product deletion use multi-document transactions,
// which require a replica set deployment.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/princy-boutique/storefront/internal/repository"
)

const (
	productsCollection = "products"
	usersCollection    = "users"
	cartCollection     = "cart_entries"
	ordersCollection   = "orders"
	wishlistCollection = "wishlist_entries"
	reviewsCollection  = "reviews"
	contactsCollection = "contact_messages"
)

type collections struct {
	db       *mongo.Database
	products *mongo.Collection
	users    *mongo.Collection
	cart     *mongo.Collection
	orders   *mongo.Collection
	wishlist *mongo.Collection
	reviews  *mongo.Collection
	contacts *mongo.Collection
	now      func() time.Time
}

func newCollections(db *mongo.Database) *collections {
	return &collections{
		db:       db,
		products: db.Collection(productsCollection),
		users:    db.Collection(usersCollection),
		cart:     db.Collection(cartCollection),
		orders:   db.Collection(ordersCollection),
		wishlist: db.Collection(wishlistCollection),
		reviews:  db.Collection(reviewsCollection),
		contacts: db.Collection(contactsCollection),
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func NewStore(db *mongo.Database) *repository.Store {
	c := newCollections(db)
	return &repository.Store{
		Products:  &ProductRepository{c},
		Users:     &UserRepository{c},
		Carts:     &CartRepository{c},
		Orders:    &OrderRepository{c},
		Wishlists: &WishlistRepository{c},
		Reviews:   &ReviewRepository{c},
		Contacts:  &ContactRepository{c},
		Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
		Close: func(ctx context.Context) error {
			return db.Client().Disconnect(ctx)
		},
	}
}

// EnsureIndexes creates the indexes the repositories rely on, including
// the unique (userId, productId) indexes behind cart merging and wishlist
// conflicts.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: newestFirst},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
		},
		cartCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "productId", Value: 1}}},
		},
		wishlistCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "productId", Value: 1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		reviewsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}
	for name, indexes := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// inTransaction runs fn in a session transaction. The driver retries fn
// on transient errors such as write conflicts.
func (c *collections) inTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := c.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	}
	return err
}
