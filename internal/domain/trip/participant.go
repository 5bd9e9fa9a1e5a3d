package trip

import (
	"time"

	"github.com/google/uuid"
)

// Participation links a user to a trip. The (TripID, UserID) pair is unique;
// the host always holds the first participation of their trip.
type Participation struct {
	TripID   uuid.UUID
	UserID   uuid.UUID
	JoinedAt time.Time
}

// NewParticipation creates a participation joining now.
func NewParticipation(tripID, userID uuid.UUID) *Participation {
	return &Participation{
		TripID:   tripID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
}

// ParticipantInfo is the read model for a trip's participant list,
// denormalized with the participant's identity.
type ParticipantInfo struct {
	UserID       uuid.UUID
	Username     string
	Mantra       string
	BioPhoto     []byte
	BioPhotoType string
	JoinedAt     time.Time
}
