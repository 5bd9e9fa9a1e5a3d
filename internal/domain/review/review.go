package review

import (
	"github.com/google/uuid"

	"github.com/tripshare/backend/internal/domain/shared"
)

const (
	minRating = 1
	maxRating = 5
)

// Review is an immutable rating left on a concluded trip. The author link is
// weak: deleting the author keeps the review with a nil AuthorID, preserving
// the trip's history.
type Review struct {
	shared.BaseEntity
	TripID   uuid.UUID
	AuthorID *uuid.UUID
	Rating   int
	Comment  string
}

// NewReview creates a validated review.
func NewReview(tripID, authorID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < minRating || rating > maxRating {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "rating must be between 1 and 5")
	}
	if comment == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "comment is required")
	}

	author := authorID
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		TripID:     tripID,
		AuthorID:   &author,
		Rating:     rating,
		Comment:    comment,
	}, nil
}
