package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) FindOrCreateByPhone(_ context.Context, phone string) (*models.User, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if id, ok := r.s.usersByPhone[phone]; ok {
		user := *r.s.users[id]
		return &user, false, nil
	}

	user := &models.User{Name: models.DefaultUserName, Phone: phone}
	user.Touch(r.s.tick())
	r.s.users[user.ID] = user
	r.s.usersByPhone[phone] = user.ID

	created := *user
	return &created, true, nil
}

func (r *userRepo) SetAdmin(_ context.Context, id uuid.UUID, isAdmin bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsAdmin = isAdmin
	user.UpdatedAt = r.s.tick()
	return nil
}

type reviewRepo struct {
	s *Store
}

func (r *reviewRepo) Create(_ context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	review.Touch(r.s.tick())
	stored := *review
	r.s.reviews[review.ID] = &stored
	return nil
}

func (r *reviewRepo) List(context.Context) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reviews := make([]models.Review, 0, len(r.s.reviews))
	for _, review := range r.s.reviews {
		reviews = append(reviews, *review)
	}
	sortBy(reviews, func(rv models.Review) models.BaseModel { return rv.BaseModel }, newerFirst)
	return reviews, nil
}

func (r *reviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

type contactRepo struct {
	s *Store
}

func (r *contactRepo) Create(_ context.Context, msg *models.ContactMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	msg.Touch(r.s.tick())
	r.s.contacts = append(r.s.contacts, *msg)
	return nil
}

// Contacts returns the stored contact messages in arrival order.
func (s *Store) Contacts() []models.ContactMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ContactMessage, len(s.contacts))
	copy(out, s.contacts)
	return out
}
