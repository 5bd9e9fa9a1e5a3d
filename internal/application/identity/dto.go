package identity

import (
	domainidentity "github.com/tripshare/backend/internal/domain/identity"
	"github.com/tripshare/backend/internal/domain/review"
	"github.com/tripshare/backend/internal/domain/trip"
)

// RegisterInput carries a registration request
type RegisterInput struct {
	Username string
	Password string
	Mantra   string
}

// LoginInput carries a login request
type LoginInput struct {
	Username string
	Password string
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	User  *domainidentity.User
	Token string
}

// UpdateProfileInput carries a profile edit. Nil pointers leave the field
// unchanged; BioPhotoChanged gates the photo explicitly so an empty payload
// can clear it.
type UpdateProfileInput struct {
	Username        *string
	Mantra          *string
	BioPhotoChanged bool
	BioPhoto        []byte
	BioPhotoType    string
}

// ProfileResult aggregates everything the profile page renders
type ProfileResult struct {
	User        *domainidentity.User
	HostedTrips []*trip.Trip
	JoinedTrips []*trip.TripListItem
	HostReviews []*review.HostReview
}
