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

type UserRepository struct {
	c *collections
}

func (r *UserRepository) FindOrCreateByPhone(ctx context.Context, phone string) (*models.User, bool, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var (
		doc   userDoc
		err   error
		newID string
	)
	for attempt := 0; attempt < 2; attempt++ {
		now := r.c.now()
		newID = uuid.NewString()
		update := bson.M{"$setOnInsert": bson.M{
			"_id":       newID,
			"name":      models.DefaultUserName,
			"isAdmin":   false,
			"createdAt": now,
			"updatedAt": now,
		}}
		err = r.c.users.FindOneAndUpdate(ctx, bson.M{"phone": phone}, update, opts).Decode(&doc)
		if !mongo.IsDuplicateKeyError(err) {
			break
		}
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to find or create user: %w", translate(err))
	}
	return doc.model(), doc.ID == newID, nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	result, err := r.c.users.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"isAdmin": isAdmin, "updatedAt": r.c.now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type ReviewRepository struct {
	c *collections
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.Touch(r.c.now())
	doc := reviewDoc{
		ID:        review.ID.String(),
		Name:      review.Name,
		Text:      review.Text,
		Stars:     review.Stars,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
	if _, err := r.c.reviews.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	var docs []reviewDoc
	if err := findAll(ctx, r.c.reviews, bson.M{}, options.Find().SetSort(newestFirst), &docs); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	reviews := make([]models.Review, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, models.Review{
			BaseModel: base(d.ID, d.CreatedAt, d.UpdatedAt),
			Name:      d.Name,
			Text:      d.Text,
			Stars:     d.Stars,
		})
	}
	return reviews, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.c.reviews.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type ContactRepository struct {
	c *collections
}

func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.Touch(r.c.now())
	doc := contactDoc{
		ID:        msg.ID.String(),
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
	if _, err := r.c.contacts.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	return nil
}
