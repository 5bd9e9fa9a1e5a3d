package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appreview "github.com/tripshare/backend/internal/application/review"
	"github.com/tripshare/backend/internal/interfaces/http/dto"
)

// ReviewHandler handles review submission and listing
type ReviewHandler struct {
	BaseHandler
	reviewService *appreview.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *appreview.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Create submits a review for a concluded trip.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindingError(c, err)
		return
	}
	tripID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid trip ID")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	created, err := h.reviewService.Create(c.Request.Context(), userID, tripID, appreview.CreateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newReviewResponse(created))
}
