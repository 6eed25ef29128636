package mongostore

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/princy-boutique/storefront/internal/models"
)

// Documents use string ids so that ids round-trip unchanged between
// backends and the JSON API.

type productDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Category    string    `bson:"category"`
	Price       float64   `bson:"price"`
	Description string    `bson:"description"`
	Fabric      string    `bson:"fabric"`
	Work        string    `bson:"work"`
	Occasion    string    `bson:"occasion"`
	Fit         string    `bson:"fit"`
	ReadyMade   bool      `bson:"readyMade"`
	Featured    bool      `bson:"featured"`
	Sizes       []string  `bson:"sizes"`
	Colors      []string  `bson:"colors"`
	CustomNote  string    `bson:"customNote"`
	Images      []string  `bson:"images"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func newProductDoc(p *models.Product) productDoc {
	return productDoc{
		ID:          p.ID.String(),
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Fabric:      p.Fabric,
		Work:        p.Work,
		Occasion:    p.Occasion,
		Fit:         p.Fit,
		ReadyMade:   p.ReadyMade,
		Featured:    p.Featured,
		Sizes:       nonNil(p.Sizes),
		Colors:      nonNil(p.Colors),
		CustomNote:  p.CustomNote,
		Images:      nonNil(p.Images),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d productDoc) model() *models.Product {
	p := &models.Product{
		Name:        d.Name,
		Category:    d.Category,
		Price:       d.Price,
		Description: d.Description,
		Fabric:      d.Fabric,
		Work:        d.Work,
		Occasion:    d.Occasion,
		Fit:         d.Fit,
		ReadyMade:   d.ReadyMade,
		Featured:    d.Featured,
		Sizes:       pq.StringArray(nonNil(d.Sizes)),
		Colors:      pq.StringArray(nonNil(d.Colors)),
		CustomNote:  d.CustomNote,
		Images:      pq.StringArray(nonNil(d.Images)),
	}
	p.BaseModel = base(d.ID, d.CreatedAt, d.UpdatedAt)
	return p
}

type summaryDoc struct {
	ID     string   `bson:"_id"`
	Name   string   `bson:"name"`
	Price  float64  `bson:"price"`
	Images []string `bson:"images"`
}

func (d summaryDoc) model() models.ProductSummary {
	return models.ProductSummary{
		ID:     parseID(d.ID),
		Name:   d.Name,
		Price:  d.Price,
		Images: pq.StringArray(nonNil(d.Images)),
	}
}

type userDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Phone     string    `bson:"phone"`
	IsAdmin   bool      `bson:"isAdmin"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d userDoc) model() *models.User {
	u := &models.User{Name: d.Name, Phone: d.Phone, IsAdmin: d.IsAdmin}
	u.BaseModel = base(d.ID, d.CreatedAt, d.UpdatedAt)
	return u
}

// entryDoc backs both cart and wishlist entries.
type entryDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	ProductID string    `bson:"productId"`
	Quantity  int       `bson:"quantity,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d entryDoc) cartEntry() models.CartEntry {
	return models.CartEntry{
		BaseModel: base(d.ID, d.CreatedAt, d.UpdatedAt),
		UserID:    parseID(d.UserID),
		ProductID: parseID(d.ProductID),
		Quantity:  d.Quantity,
	}
}

func (d entryDoc) wishlistEntry() models.WishlistEntry {
	return models.WishlistEntry{
		BaseModel: base(d.ID, d.CreatedAt, d.UpdatedAt),
		UserID:    parseID(d.UserID),
		ProductID: parseID(d.ProductID),
	}
}

type orderDoc struct {
	ID          string         `bson:"_id"`
	UserID      string         `bson:"userId"`
	Items       []orderItemDoc `bson:"items"`
	TotalAmount float64        `bson:"totalAmount"`
	Status      string         `bson:"status"`
	CreatedAt   time.Time      `bson:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt"`
}

type orderItemDoc struct {
	ID        string `bson:"id"`
	Position  int    `bson:"position"`
	ProductID string `bson:"productId"`
	Quantity  int    `bson:"quantity"`
}

func newOrderDoc(o *models.Order) orderDoc {
	doc := orderDoc{
		ID:          o.ID.String(),
		UserID:      o.UserID.String(),
		Items:       make([]orderItemDoc, len(o.Items)),
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for i, item := range o.Items {
		doc.Items[i] = orderItemDoc{
			ID:        item.ID.String(),
			Position:  item.Position,
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
		}
	}
	return doc
}

func (d orderDoc) model() models.Order {
	o := models.Order{
		BaseModel:   base(d.ID, d.CreatedAt, d.UpdatedAt),
		UserID:      parseID(d.UserID),
		Items:       make([]models.OrderItem, len(d.Items)),
		TotalAmount: d.TotalAmount,
		Status:      models.OrderStatus(d.Status),
	}
	for i, item := range d.Items {
		o.Items[i] = models.OrderItem{
			ID:        parseID(item.ID),
			OrderID:   o.ID,
			Position:  item.Position,
			ProductID: parseID(item.ProductID),
			Quantity:  item.Quantity,
		}
	}
	return o
}

type reviewDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Text      string    `bson:"text"`
	Stars     int       `bson:"stars"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type contactDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Subject   string    `bson:"subject"`
	Message   string    `bson:"message"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func base(id string, createdAt, updatedAt time.Time) models.BaseModel {
	return models.BaseModel{ID: parseID(id), CreatedAt: createdAt, UpdatedAt: updatedAt}
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
