package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/repository"
	"github.com/princy-boutique/storefront/internal/utils"
)

// AuthService logs users in by phone number. Unknown numbers get an
// account on first login.
type AuthService struct {
	users  repository.UserRepository
	tokens *utils.TokenIssuer
	admins map[string]struct{}
}

type PhoneLoginRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type SessionUser struct {
	ID      uuid.UUID `json:"id"`
	Phone   string    `json:"phone"`
	Name    string    `json:"name"`
	IsAdmin bool      `json:"isAdmin"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

func NewAuthService(users repository.UserRepository, tokens *utils.TokenIssuer, adminPhones []string) *AuthService {
	admins := make(map[string]struct{}, len(adminPhones))
	for _, p := range adminPhones {
		if p = strings.TrimSpace(p); p != "" {
			admins[p] = struct{}{}
		}
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		admins: admins,
	}
}

func (s *AuthService) PhoneLogin(ctx context.Context, req *PhoneLoginRequest) (*AuthResponse, error) {
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Phone == "" {
		return nil, apperr.Validation("Phone number required")
	}
	if err := validateRequest(req, "Invalid phone number"); err != nil {
		return nil, err
	}

	user, created, err := s.users.FindOrCreateByPhone(ctx, req.Phone)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	if created {
		logrus.WithField("user_id", user.ID).Info("Created user on first login")
	}

	_, isAdmin := s.admins[user.Phone]
	if user.IsAdmin != isAdmin {
		if err := s.users.SetAdmin(ctx, user.ID, isAdmin); err != nil {
			return nil, storeError(err, "User not found")
		}
		user.IsAdmin = isAdmin
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperr.Internal("Failed to issue token", err)
	}

	return &AuthResponse{
		Token: token,
		User: SessionUser{
			ID:      user.ID,
			Phone:   user.Phone,
			Name:    user.Name,
			IsAdmin: user.IsAdmin,
		},
	}, nil
}
