// Package repository declares the storage contracts shared by the
// postgres, mongo and memory backends. Backends translate driver errors
// into ErrNotFound and ErrDuplicate; nothing above this layer sees driver
// specific errors.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/princy-boutique/storefront/internal/catalog"
	"github.com/princy-boutique/storefront/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrQuantityLimit reports a cart merge that would exceed
	// models.MaxCartQuantity. The entry is left unchanged.
	ErrQuantityLimit = errors.New("cart quantity limit exceeded")
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	// Delete removes the product together with the cart and wishlist
	// entries that reference it, returning the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// List returns the matching products newest first together with the
	// total match count. A nil page returns every match.
	List(ctx context.Context, pred catalog.Predicate, page *catalog.PageRequest) ([]models.Product, int64, error)
	Search(ctx context.Context, term string, limit int) ([]models.ProductSummary, error)
}

type UserRepository interface {
	// FindOrCreateByPhone reports whether the user was created.
	FindOrCreateByPhone(ctx context.Context, phone string) (*models.User, bool, error)
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error
}

type CartRepository interface {
	// AddOrIncrement atomically creates the (user, product) entry or adds
	// quantity to the existing one. It returns ErrQuantityLimit when the
	// merged quantity would exceed models.MaxCartQuantity.
	AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartEntry, error)
	SetQuantity(ctx context.Context, userID, entryID uuid.UUID, quantity int) (*models.CartEntry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) error
	// ListByUser returns entries oldest first with Product loaded.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartEntry, error)
}

// AssembleFunc builds an order from a locked cart snapshot. Entries carry
// their current product; an entry whose product is gone has a nil Product.
type AssembleFunc func(entries []models.CartEntry) (*models.Order, error)

type OrderRepository interface {
	// PlaceOrder snapshots the user's cart, persists the order built by
	// assemble and deletes exactly the snapshotted entries in one unit of
	// work. Any error leaves both the orders and the cart untouched.
	PlaceOrder(ctx context.Context, userID uuid.UUID, assemble AssembleFunc) (*models.Order, error)
	// ListByUser returns orders newest first with items in cart order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type WishlistRepository interface {
	// Add returns ErrDuplicate when the entry already exists.
	Add(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistEntry, error)
	// Delete is a no-op when the entry is absent.
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistEntry, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	List(ctx context.Context) ([]models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

// Store bundles one backend's repositories.
type Store struct {
	Products  ProductRepository
	Users     UserRepository
	Carts     CartRepository
	Orders    OrderRepository
	Wishlists WishlistRepository
	Reviews   ReviewRepository
	Contacts  ContactRepository

	// Ping reports store health; Close releases connections.
	Ping  func(ctx context.Context) error
	Close func(ctx context.Context) error
}
