package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripshare/backend/internal/domain/review"
)

// ReviewModel is the persistence model for reviews. AuthorID is nullable so
// deleting a user keeps their reviews on the trip.
type ReviewModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	TripID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_trip_author"`
	AuthorID  *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_trip_author"`
	Rating    int        `gorm:"not null"`
	Comment   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the model to a domain review
func (m *ReviewModel) ToDomain() *review.Review {
	r := &review.Review{
		TripID:   m.TripID,
		AuthorID: m.AuthorID,
		Rating:   m.Rating,
		Comment:  m.Comment,
	}
	r.ID = m.ID
	r.CreatedAt = m.CreatedAt
	r.UpdatedAt = m.CreatedAt
	return r
}

// ReviewModelFromDomain converts a domain review to the persistence model
func ReviewModelFromDomain(r *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:        r.ID,
		TripID:    r.TripID,
		AuthorID:  r.AuthorID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
