package review

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthorInfo is the denormalized author identity carried with each review so
// the read path needs no second lookup. Zero value means the author account
// was deleted.
type AuthorInfo struct {
	ID           uuid.UUID
	Username     string
	BioPhoto     []byte
	BioPhotoType string
}

// ReviewWithAuthor pairs a review with its author identity.
type ReviewWithAuthor struct {
	Review *Review
	Author *AuthorInfo
}

// TripSummary identifies the reviewed trip on aggregated read paths.
type TripSummary struct {
	ID    uuid.UUID
	Title string
}

// HostReview is a review received on one of a host's trips.
type HostReview struct {
	Review    *Review
	Author    *AuthorInfo
	Trip      TripSummary
	CreatedAt time.Time
}

// ReviewRepository defines the persistence contract for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	// ListByTrip returns reviews for a trip, most recent first.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*ReviewWithAuthor, error)
	// ListByHost returns reviews received across all trips the user hosts,
	// most recent first.
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]*HostReview, error)
	ExistsByTripAndAuthor(ctx context.Context, tripID, authorID uuid.UUID) (bool, error)
}
