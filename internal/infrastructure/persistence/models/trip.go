package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripshare/backend/internal/domain/trip"
)

// TripModel is the persistence model for trips.
type TripModel struct {
	AggregateModel
	Title           string    `gorm:"type:varchar(128);not null"`
	Description     string    `gorm:"type:varchar(255);not null"`
	Destination     string    `gorm:"type:varchar(100);not null"`
	StartDate       time.Time `gorm:"type:date;not null"`
	EndDate         time.Time `gorm:"type:date;not null"`
	MinParticipants int       `gorm:"not null"`
	MaxParticipants int       `gorm:"not null"`
	CoverPhoto      []byte    `gorm:"type:bytea"`
	CoverPhotoType  string    `gorm:"type:varchar(50)"`
	HostID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name
func (TripModel) TableName() string {
	return "trips"
}

// ToDomain converts the model to a domain trip
func (m *TripModel) ToDomain() *trip.Trip {
	t := &trip.Trip{
		Title:           m.Title,
		Description:     m.Description,
		Destination:     m.Destination,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		MinParticipants: m.MinParticipants,
		MaxParticipants: m.MaxParticipants,
		CoverPhoto:      m.CoverPhoto,
		CoverPhotoType:  m.CoverPhotoType,
		HostID:          m.HostID,
		Status:          trip.TripStatus(m.Status),
	}
	t.ID = m.ID
	t.CreatedAt = m.CreatedAt
	t.UpdatedAt = m.UpdatedAt
	t.Version = m.Version
	return t
}

// TripModelFromDomain converts a domain trip to the persistence model
func TripModelFromDomain(t *trip.Trip) *TripModel {
	m := &TripModel{
		Title:           t.Title,
		Description:     t.Description,
		Destination:     t.Destination,
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
		MinParticipants: t.MinParticipants,
		MaxParticipants: t.MaxParticipants,
		CoverPhoto:      t.CoverPhoto,
		CoverPhotoType:  t.CoverPhotoType,
		HostID:          t.HostID,
		Status:          string(t.Status),
	}
	m.ID = t.ID
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
	m.Version = t.Version
	return m
}

// ParticipationModel is the persistence model for trip memberships. The
// composite primary key backs duplicate-join rejection at the store.
type ParticipationModel struct {
	TripID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	JoinedAt time.Time `gorm:"not null"`
}

// TableName returns the table name
func (ParticipationModel) TableName() string {
	return "trip_participants"
}

// ToDomain converts the model to a domain participation
func (m *ParticipationModel) ToDomain() *trip.Participation {
	return &trip.Participation{
		TripID:   m.TripID,
		UserID:   m.UserID,
		JoinedAt: m.JoinedAt,
	}
}

// ParticipationModelFromDomain converts a domain participation to the model
func ParticipationModelFromDomain(p *trip.Participation) *ParticipationModel {
	return &ParticipationModel{
		TripID:   p.TripID,
		UserID:   p.UserID,
		JoinedAt: p.JoinedAt,
	}
}
