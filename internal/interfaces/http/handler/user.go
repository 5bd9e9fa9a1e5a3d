package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/tripshare/backend/internal/application/identity"
	"github.com/tripshare/backend/internal/interfaces/http/dto"
)

// UserHandler handles profile-related HTTP requests
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile returns the caller's own profile aggregation.
func (h *UserHandler) GetProfile(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	targetID, ok := h.bindUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), callerID, targetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newProfileResponse(profile))
}

// MyTrips returns every trip the caller participates in.
func (h *UserHandler) MyTrips(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	items, err := h.userService.ListMyTrips(c.Request.Context(), callerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newTripListResponse(items))
}

// UpdateProfile applies a self-only profile edit.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	targetID, ok := h.bindUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := appidentity.UpdateProfileInput{
		Username: req.Username,
		Mantra:   req.Mantra,
	}
	if req.BioPhoto != nil {
		input.BioPhotoChanged = true
		if *req.BioPhoto != "" {
			photo, mediaType, err := dto.ParseImageDataURL(*req.BioPhoto)
			if err != nil {
				h.HandleError(c, err)
				return
			}
			input.BioPhoto = photo
			input.BioPhotoType = mediaType
		}
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), callerID, targetID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newUserResponse(updated))
}

func (h *UserHandler) bindUserID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BindingError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}
