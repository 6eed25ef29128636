package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/princy-boutique/storefront/internal/models"
	"github.com/princy-boutique/storefront/internal/repository"
)

const msgFieldsRequired = "All fields are required"

type ReviewService struct {
	reviews repository.ReviewRepository
}

type ReviewRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Text  string `json:"text" validate:"required,max=2000"`
	Stars int    `json:"stars" validate:"required,min=1,max=5"`
}

func NewReviewService(reviews repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, storeError(err, "Review not found")
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func (s *ReviewService) Add(ctx context.Context, req *ReviewRequest) (*models.Review, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Text = strings.TrimSpace(req.Text)
	if err := validateRequest(req, msgFieldsRequired); err != nil {
		return nil, err
	}

	review := &models.Review{Name: req.Name, Text: req.Text, Stars: req.Stars}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, storeError(err, "Review not found")
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeError(s.reviews.Delete(ctx, id), "Review not found")
}

type ContactService struct {
	contacts repository.ContactRepository
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

func NewContactService(contacts repository.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) Send(ctx context.Context, req *ContactRequest) (*models.ContactMessage, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if err := validateRequest(req, msgFieldsRequired); err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, storeError(err, "Message not found")
	}
	return msg, nil
}
