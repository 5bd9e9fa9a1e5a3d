package handler

import (
	"time"

	"github.com/google/uuid"

	domainidentity "github.com/tripshare/backend/internal/domain/identity"
	"github.com/tripshare/backend/internal/interfaces/http/dto"
)

// =====================
// Auth Request DTOs
// =====================

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Mantra   string `json:"mantra" binding:"required,max=128"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// =====================
// Auth Response DTOs
// =====================

// UserResponse represents user data in responses. The bio photo is rendered
// as a base64 data URL, empty when none is stored.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Mantra    string    `json:"mantra"`
	BioPhoto  string    `json:"bioPhoto,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse represents the response body for register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func newUserResponse(u *domainidentity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Mantra:    u.Mantra,
		BioPhoto:  dto.ImageDataURL(u.BioPhoto, u.BioPhotoType),
		CreatedAt: u.CreatedAt,
	}
}
