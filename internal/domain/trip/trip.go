package trip

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripshare/backend/internal/domain/shared"
)

const (
	maxTitleLength       = 128
	maxDescriptionLength = 255
	maxDestinationLength = 100
)

// TripStatus represents the lifecycle state of a trip.
type TripStatus string

const (
	TripStatusUpcoming  TripStatus = "Upcoming"
	TripStatusFull      TripStatus = "Full"
	TripStatusCancelled TripStatus = "Cancelled"
	TripStatusConcluded TripStatus = "Concluded"
)

// IsValid reports whether the status is a known lifecycle state.
func (s TripStatus) IsValid() bool {
	switch s {
	case TripStatusUpcoming, TripStatusFull, TripStatusCancelled, TripStatusConcluded:
		return true
	}
	return false
}

// IsTerminal reports whether the status freezes count-driven recomputation.
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusCancelled || s == TripStatusConcluded
}

// Trip is the aggregate root of the lifecycle engine. Status is stored and
// recomputed from the participant count inside the same transaction as every
// membership mutation; Cancelled and Concluded freeze recomputation.
type Trip struct {
	shared.BaseAggregateRoot
	Title           string
	Description     string
	Destination     string
	StartDate       time.Time
	EndDate         time.Time
	MinParticipants int
	MaxParticipants int
	CoverPhoto      []byte
	CoverPhotoType  string
	HostID          uuid.UUID
	Status          TripStatus
}

// NewTrip creates an Upcoming trip owned by hostID. The host becomes the
// first participant when the trip is persisted.
func NewTrip(hostID uuid.UUID, title, description, destination string, startDate, endDate time.Time, minParticipants, maxParticipants int) (*Trip, error) {
	t := &Trip{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HostID:            hostID,
		Status:            TripStatusUpcoming,
	}
	if err := t.setDetails(title, description, destination); err != nil {
		return nil, err
	}
	if err := t.setDates(startDate, endDate); err != nil {
		return nil, err
	}
	if err := t.setCapacity(minParticipants, maxParticipants); err != nil {
		return nil, err
	}
	return t, nil
}

// IsHost reports whether userID owns this trip.
func (t *Trip) IsHost(userID uuid.UUID) bool {
	return t.HostID == userID
}

// Cancel moves the trip to Cancelled. Cancelling twice is rejected.
func (t *Trip) Cancel() error {
	if t.Status == TripStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "trip is already cancelled")
	}
	t.Status = TripStatusCancelled
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Conclude moves the trip to Concluded. Concluding twice is rejected.
func (t *Trip) Conclude() error {
	if t.Status == TripStatusConcluded {
		return shared.NewDomainError("INVALID_STATE", "trip is already concluded")
	}
	t.Status = TripStatusConcluded
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// RecomputeStatus flips Upcoming/Full based on the participant count.
// Terminal states are never touched.
func (t *Trip) RecomputeStatus(participantCount int) {
	if t.Status.IsTerminal() {
		return
	}
	if participantCount >= t.MaxParticipants {
		t.Status = TripStatusFull
	} else {
		t.Status = TripStatusUpcoming
	}
}

// CanAcceptJoin reports whether a join is possible at the given count.
// Joins are hard-capped at MaxParticipants.
func (t *Trip) CanAcceptJoin(participantCount int) bool {
	return t.Status == TripStatusUpcoming && participantCount < t.MaxParticipants
}

// ChangeDetails updates title, description and destination.
func (t *Trip) ChangeDetails(title, description, destination string) error {
	if err := t.setDetails(title, description, destination); err != nil {
		return err
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// ChangeDates updates the travel window.
func (t *Trip) ChangeDates(startDate, endDate time.Time) error {
	if err := t.setDates(startDate, endDate); err != nil {
		return err
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// ChangeCapacity updates the participant bounds.
func (t *Trip) ChangeCapacity(minParticipants, maxParticipants int) error {
	if err := t.setCapacity(minParticipants, maxParticipants); err != nil {
		return err
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// ChangeCoverPhoto replaces the cover image. An empty payload clears it.
func (t *Trip) ChangeCoverPhoto(photo []byte, mediaType string) {
	t.CoverPhoto = photo
	t.CoverPhotoType = mediaType
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// ChangeStatus sets an explicit status, as supplied on an edit.
func (t *Trip) ChangeStatus(status TripStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "unknown trip status")
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// HasCoverPhoto reports whether a cover image is stored.
func (t *Trip) HasCoverPhoto() bool {
	return len(t.CoverPhoto) > 0
}

func (t *Trip) setDetails(title, description, destination string) error {
	if title == "" || len(title) > maxTitleLength {
		return shared.NewDomainError("VALIDATION_ERROR", "title must be between 1 and 128 characters")
	}
	if description == "" || len(description) > maxDescriptionLength {
		return shared.NewDomainError("VALIDATION_ERROR", "description must be between 1 and 255 characters")
	}
	if destination == "" || len(destination) > maxDestinationLength {
		return shared.NewDomainError("VALIDATION_ERROR", "destination must be between 1 and 100 characters")
	}
	t.Title = title
	t.Description = description
	t.Destination = destination
	return nil
}

func (t *Trip) setDates(startDate, endDate time.Time) error {
	if startDate.IsZero() || endDate.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "start and end dates are required")
	}
	if endDate.Before(startDate) {
		return shared.NewDomainError("VALIDATION_ERROR", "end date must not be before start date")
	}
	t.StartDate = startDate
	t.EndDate = endDate
	return nil
}

func (t *Trip) setCapacity(minParticipants, maxParticipants int) error {
	if minParticipants < 1 {
		return shared.NewDomainError("VALIDATION_ERROR", "minimum participants must be at least 1")
	}
	if maxParticipants < minParticipants {
		return shared.NewDomainError("VALIDATION_ERROR", "maximum participants must not be less than minimum participants")
	}
	t.MinParticipants = minParticipants
	t.MaxParticipants = maxParticipants
	return nil
}
