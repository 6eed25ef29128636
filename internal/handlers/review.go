package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/i18n"
	"github.com/princy-boutique/storefront/internal/services"
	"github.com/princy-boutique/storefront/internal/utils"
)

type ReviewHandler struct {
	reviewService  *services.ReviewService
	contactService *services.ContactService
}

func NewReviewHandler(reviewService *services.ReviewService, contactService *services.ContactService) *ReviewHandler {
	return &ReviewHandler{
		reviewService:  reviewService,
		contactService: contactService,
	}
}

// GET /reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// POST /reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "")
		return
	}

	review, err := h.reviewService.Add(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, apperr.NotFound("Review not found"))
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.TranslatedMessage(c, http.StatusOK, i18n.KeyReviewDeleted)
}

// POST /contact
func (h *ReviewHandler) SendContact(c *gin.Context) {
	var req services.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "")
		return
	}

	msg, err := h.contactService.Send(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyContactSent),
		"contact": msg,
	})
}
