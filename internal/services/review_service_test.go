package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princy-boutique/storefront/internal/apperr"
)

func TestReviewService(t *testing.T) {
	svc := NewReviewService(newTestStore(t).Reviews)
	ctx := context.Background()

	first, err := svc.Add(ctx, &ReviewRequest{Name: "Asha", Text: "Lovely fabric", Stars: 5})
	require.NoError(t, err)
	second, err := svc.Add(ctx, &ReviewRequest{Name: "Meera", Text: "Quick delivery", Stars: 4})
	require.NoError(t, err)

	reviews, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, second.ID, reviews[0].ID)
	assert.Equal(t, first.ID, reviews[1].ID)

	for _, bad := range []ReviewRequest{
		{Name: "A", Text: "B", Stars: 0},
		{Name: "A", Text: "B", Stars: 6},
		{Name: " ", Text: "B", Stars: 3},
	} {
		_, err := svc.Add(ctx, &bad)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}

	require.NoError(t, svc.Delete(ctx, first.ID))
	err = svc.Delete(ctx, uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Review not found", apperr.PublicMessage(err))
}

func TestContactService_Send(t *testing.T) {
	svc := NewContactService(newTestStore(t).Contacts)
	ctx := context.Background()

	msg, err := svc.Send(ctx, &ContactRequest{
		Name:    "Asha",
		Email:   "asha@example.com",
		Subject: "Custom stitching",
		Message: "Do you take blouse measurements?",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, msg.ID)

	_, err = svc.Send(ctx, &ContactRequest{Name: "Asha", Email: "not-an-email", Subject: "x", Message: "y"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "All fields are required", apperr.PublicMessage(err))
}
