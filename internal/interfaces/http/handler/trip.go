package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apptrip "github.com/tripshare/backend/internal/application/trip"
	domaintrip "github.com/tripshare/backend/internal/domain/trip"
	"github.com/tripshare/backend/internal/interfaces/http/dto"
)

// TripHandler handles trip lifecycle and membership HTTP requests
type TripHandler struct {
	BaseHandler
	tripService *apptrip.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripService *apptrip.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
	}
}

// List returns trips matching the search/status/hasSlots query.
func (h *TripHandler) List(c *gin.Context) {
	var req ListTripsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := domaintrip.NewTripFilter()
	if req.Search != "" {
		filter = filter.WithKeyword(req.Search)
	}
	if req.Status != "" {
		filter = filter.WithStatus(domaintrip.TripStatus(req.Status))
	}
	if req.HasSlots {
		filter = filter.WithHasSlots()
	}
	filter = filter.WithPaging(req.Offset, req.Limit)

	items, err := h.tripService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newTripListResponse(items))
}

// Get returns the full detail of a single trip.
func (h *TripHandler) Get(c *gin.Context) {
	tripID, ok := h.bindTripID(c)
	if !ok {
		return
	}

	detail, err := h.tripService.Get(c.Request.Context(), tripID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newTripDetailResponse(detail))
}

// Create creates a trip with the caller as host.
func (h *TripHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := apptrip.CreateTripInput{
		Title:           req.Title,
		Description:     req.Description,
		Destination:     req.Destination,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MinParticipants: req.MinParticipants,
		MaxParticipants: req.MaxParticipants,
	}
	if req.CoverPhoto != "" {
		photo, mediaType, err := dto.ParseImageDataURL(req.CoverPhoto)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		input.CoverPhoto = photo
		input.CoverPhotoType = mediaType
	}

	created, err := h.tripService.Create(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newTripResponse(created))
}

// Update applies a host edit to a trip.
func (h *TripHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	tripID, ok := h.bindTripID(c)
	if !ok {
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := apptrip.UpdateTripInput{
		Title:             req.Title,
		Description:       req.Description,
		Destination:       req.Destination,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		MinParticipants:   req.MinParticipants,
		MaxParticipants:   req.MaxParticipants,
		Status:            req.Status,
		CoverPhotoChanged: req.CoverPhotoChanged,
	}
	if req.CoverPhotoChanged && req.CoverPhoto != "" {
		photo, mediaType, err := dto.ParseImageDataURL(req.CoverPhoto)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		input.CoverPhoto = photo
		input.CoverPhotoType = mediaType
	}

	updated, err := h.tripService.Update(c.Request.Context(), userID, tripID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newTripResponse(updated))
}

// Cancel moves a trip to Cancelled.
func (h *TripHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, h.tripService.Cancel)
}

// Conclude moves a trip to Concluded.
func (h *TripHandler) Conclude(c *gin.Context) {
	h.applyTransition(c, h.tripService.Conclude)
}

func (h *TripHandler) applyTransition(c *gin.Context, transition func(ctx context.Context, callerID, tripID uuid.UUID) (*domaintrip.Trip, error)) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	tripID, ok := h.bindTripID(c)
	if !ok {
		return
	}

	updated, err := transition(c.Request.Context(), userID, tripID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newTripResponse(updated))
}

// Join adds the caller to a trip.
func (h *TripHandler) Join(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	tripID, ok := h.bindTripID(c)
	if !ok {
		return
	}

	if err := h.tripService.Join(c.Request.Context(), userID, tripID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Leave removes the caller from a trip.
func (h *TripHandler) Leave(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	tripID, ok := h.bindTripID(c)
	if !ok {
		return
	}

	if err := h.tripService.Leave(c.Request.Context(), userID, tripID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveParticipant lets the host remove a participant.
func (h *TripHandler) RemoveParticipant(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ParticipantPathRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	tripID, _ := uuid.Parse(req.TripID)
	targetID, _ := uuid.Parse(req.UserID)

	if err := h.tripService.RemoveParticipant(c.Request.Context(), userID, tripID, targetID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *TripHandler) bindTripID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BindingError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid trip ID")
		return uuid.Nil, false
	}
	return id, true
}
