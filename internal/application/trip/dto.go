package trip

import (
	"time"

	"github.com/tripshare/backend/internal/domain/review"
	domaintrip "github.com/tripshare/backend/internal/domain/trip"
)

// CreateTripInput carries a trip creation request
type CreateTripInput struct {
	Title           string
	Description     string
	Destination     string
	StartDate       time.Time
	EndDate         time.Time
	MinParticipants int
	MaxParticipants int
	CoverPhoto      []byte
	CoverPhotoType  string
}

// UpdateTripInput carries a host edit. Nil pointers leave fields unchanged.
// CoverPhotoChanged gates the photo explicitly: each request states whether
// the image is to be replaced, so nothing is inferred from payload presence.
type UpdateTripInput struct {
	Title             *string
	Description       *string
	Destination       *string
	StartDate         *time.Time
	EndDate           *time.Time
	MinParticipants   *int
	MaxParticipants   *int
	Status            *string
	CoverPhotoChanged bool
	CoverPhoto        []byte
	CoverPhotoType    string
}

// TripDetail is the full read model for a single trip page
type TripDetail struct {
	Trip             *domaintrip.Trip
	ParticipantCount int
	HostUsername     string
	Participants     []*domaintrip.ParticipantInfo
	Reviews          []*review.ReviewWithAuthor
}
