package handler

import (
	"time"

	"github.com/google/uuid"

	appidentity "github.com/tripshare/backend/internal/application/identity"
	domainreview "github.com/tripshare/backend/internal/domain/review"
	"github.com/tripshare/backend/internal/interfaces/http/dto"
)

// =====================
// User Request DTOs
// =====================

// UpdateProfileRequest represents the request body for a profile edit. Nil
// fields are left unchanged; a present bioPhoto replaces the stored one.
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Mantra   *string `json:"mantra" binding:"omitempty,max=128"`
	BioPhoto *string `json:"bioPhoto" binding:"omitempty,datauri_image"`
}

// =====================
// User Response DTOs
// =====================

// HostedTripResponse summarizes a trip the user hosts
type HostedTripResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"startDate"`
}

// HostReviewResponse is a review received on one of the user's trips
type HostReviewResponse struct {
	ReviewResponse
	Trip HostedTripSummary `json:"trip"`
}

// HostedTripSummary identifies the reviewed trip
type HostedTripSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// ProfileResponse aggregates everything the profile page renders
type ProfileResponse struct {
	User        UserResponse           `json:"user"`
	HostedTrips []HostedTripResponse   `json:"hostedTrips"`
	JoinedTrips []TripListItemResponse `json:"joinedTrips"`
	Reviews     []HostReviewResponse   `json:"reviews"`
}

func newHostReviewResponse(hr *domainreview.HostReview) HostReviewResponse {
	resp := HostReviewResponse{
		ReviewResponse: newReviewResponse(hr.Review),
		Trip: HostedTripSummary{
			ID:    hr.Trip.ID,
			Title: hr.Trip.Title,
		},
	}
	if hr.Author != nil && hr.Author.ID != uuid.Nil {
		resp.Author = &ReviewAuthorResponse{
			ID:       hr.Author.ID,
			Username: hr.Author.Username,
			BioPhoto: dto.ImageDataURL(hr.Author.BioPhoto, hr.Author.BioPhotoType),
		}
	}
	return resp
}

func newProfileResponse(profile *appidentity.ProfileResult) ProfileResponse {
	hosted := make([]HostedTripResponse, 0, len(profile.HostedTrips))
	for _, t := range profile.HostedTrips {
		hosted = append(hosted, HostedTripResponse{
			ID:        t.ID,
			Title:     t.Title,
			Status:    string(t.Status),
			StartDate: t.StartDate,
		})
	}
	joined := newTripListResponse(profile.JoinedTrips)
	reviews := make([]HostReviewResponse, 0, len(profile.HostReviews))
	for _, hr := range profile.HostReviews {
		reviews = append(reviews, newHostReviewResponse(hr))
	}
	return ProfileResponse{
		User:        newUserResponse(profile.User),
		HostedTrips: hosted,
		JoinedTrips: joined,
		Reviews:     reviews,
	}
}
