package handler

import (
	"time"

	"github.com/google/uuid"

	apptrip "github.com/tripshare/backend/internal/application/trip"
	domainreview "github.com/tripshare/backend/internal/domain/review"
	domaintrip "github.com/tripshare/backend/internal/domain/trip"
	"github.com/tripshare/backend/internal/interfaces/http/dto"
)

// =====================
// Trip Request DTOs
// =====================

// CreateTripRequest represents the request body for trip creation
type CreateTripRequest struct {
	Title           string    `json:"title" binding:"required,max=128"`
	Description     string    `json:"description" binding:"required,max=255"`
	Destination     string    `json:"destination" binding:"required,max=100"`
	StartDate       time.Time `json:"startDate" binding:"required"`
	EndDate         time.Time `json:"endDate" binding:"required"`
	MinParticipants int       `json:"minParticipants" binding:"required,min=1"`
	MaxParticipants int       `json:"maxParticipants" binding:"required,min=1"`
	CoverPhoto      string    `json:"coverPhoto" binding:"omitempty,datauri_image"`
}

// UpdateTripRequest represents the request body for a host edit. Nil fields
// are left unchanged; the cover photo is replaced or cleared only when
// coverPhotoChanged is true.
type UpdateTripRequest struct {
	Title             *string    `json:"title" binding:"omitempty,max=128"`
	Description       *string    `json:"description" binding:"omitempty,max=255"`
	Destination       *string    `json:"destination" binding:"omitempty,max=100"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	MinParticipants   *int       `json:"minParticipants" binding:"omitempty,min=1"`
	MaxParticipants   *int       `json:"maxParticipants" binding:"omitempty,min=1"`
	Status            *string    `json:"status" binding:"omitempty,oneof=Upcoming Full Cancelled Concluded"`
	CoverPhotoChanged bool       `json:"coverPhotoChanged"`
	CoverPhoto        string     `json:"coverPhoto" binding:"omitempty,datauri_image"`
}

// ListTripsRequest represents the query parameters for trip listings
type ListTripsRequest struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=Upcoming Full Cancelled Concluded"`
	HasSlots bool   `form:"hasSlots"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ParticipantPathRequest binds the participant removal path parameters
type ParticipantPathRequest struct {
	TripID string `uri:"id" binding:"required,uuid"`
	UserID string `uri:"userId" binding:"required,uuid"`
}

// =====================
// Trip Response DTOs
// =====================

// HostSummary identifies the trip host in list and detail responses
type HostSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// TripResponse represents trip data in responses. The cover photo is a data
// URL, or the default cover path when none is stored.
type TripResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Destination     string    `json:"destination"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	MinParticipants int       `json:"minParticipants"`
	MaxParticipants int       `json:"maxParticipants"`
	Status          string    `json:"status"`
	CoverPhoto      string    `json:"coverPhoto"`
	HostID          uuid.UUID `json:"hostId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TripListItemResponse represents one row of a trip listing
type TripListItemResponse struct {
	TripResponse
	ParticipantCount int         `json:"participantCount"`
	Host             HostSummary `json:"host"`
}

// ParticipantResponse represents a trip participant
type ParticipantResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Mantra   string    `json:"mantra"`
	BioPhoto string    `json:"bioPhoto,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}

// TripDetailResponse represents the full trip page payload
type TripDetailResponse struct {
	TripResponse
	ParticipantCount int                   `json:"participantCount"`
	Host             HostSummary           `json:"host"`
	Participants     []ParticipantResponse `json:"participants"`
	Reviews          []ReviewResponse      `json:"reviews"`
}

func newTripResponse(t *domaintrip.Trip) TripResponse {
	coverPhoto := dto.DefaultCoverPhotoURL
	if t.HasCoverPhoto() {
		coverPhoto = dto.ImageDataURL(t.CoverPhoto, t.CoverPhotoType)
	}
	return TripResponse{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Destination:     t.Destination,
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
		MinParticipants: t.MinParticipants,
		MaxParticipants: t.MaxParticipants,
		Status:          string(t.Status),
		CoverPhoto:      coverPhoto,
		HostID:          t.HostID,
		CreatedAt:       t.CreatedAt,
	}
}

func newTripListItemResponse(item *domaintrip.TripListItem) TripListItemResponse {
	return TripListItemResponse{
		TripResponse:     newTripResponse(item.Trip),
		ParticipantCount: item.ParticipantCount,
		Host: HostSummary{
			ID:       item.Trip.HostID,
			Username: item.HostUsername,
		},
	}
}

func newTripListResponse(items []*domaintrip.TripListItem) []TripListItemResponse {
	responses := make([]TripListItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, newTripListItemResponse(item))
	}
	return responses
}

func newParticipantResponse(p *domaintrip.ParticipantInfo) ParticipantResponse {
	return ParticipantResponse{
		ID:       p.UserID,
		Username: p.Username,
		Mantra:   p.Mantra,
		BioPhoto: dto.ImageDataURL(p.BioPhoto, p.BioPhotoType),
		JoinedAt: p.JoinedAt,
	}
}

func newTripDetailResponse(detail *apptrip.TripDetail) TripDetailResponse {
	participants := make([]ParticipantResponse, 0, len(detail.Participants))
	for _, p := range detail.Participants {
		participants = append(participants, newParticipantResponse(p))
	}
	reviews := make([]ReviewResponse, 0, len(detail.Reviews))
	for _, r := range detail.Reviews {
		reviews = append(reviews, newReviewWithAuthorResponse(r))
	}
	return TripDetailResponse{
		TripResponse:     newTripResponse(detail.Trip),
		ParticipantCount: detail.ParticipantCount,
		Host: HostSummary{
			ID:       detail.Trip.HostID,
			Username: detail.HostUsername,
		},
		Participants: participants,
		Reviews:      reviews,
	}
}

// =====================
// Review DTOs
// =====================

// CreateReviewRequest represents the request body for a review submission
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// ReviewAuthorResponse identifies the review author; omitted entirely when
// the account was deleted
type ReviewAuthorResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	BioPhoto string    `json:"bioPhoto,omitempty"`
}

// ReviewResponse represents a single review
type ReviewResponse struct {
	ID        uuid.UUID             `json:"id"`
	TripID    uuid.UUID             `json:"tripId"`
	Rating    int                   `json:"rating"`
	Comment   string                `json:"comment"`
	Author    *ReviewAuthorResponse `json:"author,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

func newReviewResponse(r *domainreview.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		TripID:    r.TripID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	return resp
}

func newReviewWithAuthorResponse(rw *domainreview.ReviewWithAuthor) ReviewResponse {
	resp := newReviewResponse(rw.Review)
	if rw.Author != nil && rw.Author.ID != uuid.Nil {
		resp.Author = &ReviewAuthorResponse{
			ID:       rw.Author.ID,
			Username: rw.Author.Username,
			BioPhoto: dto.ImageDataURL(rw.Author.BioPhoto, rw.Author.BioPhotoType),
		}
	}
	return resp
}
