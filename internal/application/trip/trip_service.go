package trip

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripshare/backend/internal/domain/review"
	"github.com/tripshare/backend/internal/domain/shared"
	domaintrip "github.com/tripshare/backend/internal/domain/trip"
)

// TripService is the lifecycle engine: creation, listing, host-only edits
// and transitions, and the membership operations. Capacity and status
// consistency is delegated to the repository's transactional membership
// mutations; this service owns validation and authorization.
type TripService struct {
	tripRepo   domaintrip.TripRepository
	reviewRepo review.ReviewRepository
	logger     *zap.Logger
}

// NewTripService creates a new trip service
func NewTripService(tripRepo domaintrip.TripRepository, reviewRepo review.ReviewRepository, logger *zap.Logger) *TripService {
	return &TripService{
		tripRepo:   tripRepo,
		reviewRepo: reviewRepo,
		logger:     logger,
	}
}

// Create validates and persists a new trip with the host as its first
// participant. Nothing is written when any step fails.
func (s *TripService) Create(ctx context.Context, hostID uuid.UUID, input CreateTripInput) (*domaintrip.Trip, error) {
	t, err := domaintrip.NewTrip(hostID, input.Title, input.Description, input.Destination,
		input.StartDate, input.EndDate, input.MinParticipants, input.MaxParticipants)
	if err != nil {
		return nil, err
	}
	if len(input.CoverPhoto) > 0 {
		t.ChangeCoverPhoto(input.CoverPhoto, input.CoverPhotoType)
	}

	if err := s.tripRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("trip created",
		zap.String("trip_id", t.ID.String()),
		zap.String("host_id", hostID.String()),
		zap.String("destination", t.Destination),
	)
	return t, nil
}

// List returns trips matching the filter, newest first.
func (s *TripService) List(ctx context.Context, filter domaintrip.TripFilter) ([]*domaintrip.TripListItem, error) {
	return s.tripRepo.List(ctx, filter)
}

// Get returns the full trip detail with participants and reviews.
func (s *TripService) Get(ctx context.Context, tripID uuid.UUID) (*TripDetail, error) {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	participants, err := s.tripRepo.ListParticipants(ctx, tripID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	detail := &TripDetail{
		Trip:             t,
		ParticipantCount: len(participants),
		Participants:     participants,
		Reviews:          reviews,
	}
	for _, p := range participants {
		if p.UserID == t.HostID {
			detail.HostUsername = p.Username
			break
		}
	}
	return detail, nil
}

// Update applies a host-only edit. Status is preserved unless supplied and
// the cover photo is touched only when the request says so.
func (s *TripService) Update(ctx context.Context, callerID, tripID uuid.UUID, input UpdateTripInput) (*domaintrip.Trip, error) {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !t.IsHost(callerID) {
		return nil, shared.NewDomainError("FORBIDDEN", "only the host can edit this trip")
	}

	title, description, destination := t.Title, t.Description, t.Destination
	if input.Title != nil {
		title = *input.Title
	}
	if input.Description != nil {
		description = *input.Description
	}
	if input.Destination != nil {
		destination = *input.Destination
	}
	if err := t.ChangeDetails(title, description, destination); err != nil {
		return nil, err
	}

	startDate, endDate := t.StartDate, t.EndDate
	if input.StartDate != nil {
		startDate = *input.StartDate
	}
	if input.EndDate != nil {
		endDate = *input.EndDate
	}
	if err := t.ChangeDates(startDate, endDate); err != nil {
		return nil, err
	}

	minParticipants, maxParticipants := t.MinParticipants, t.MaxParticipants
	if input.MinParticipants != nil {
		minParticipants = *input.MinParticipants
	}
	if input.MaxParticipants != nil {
		maxParticipants = *input.MaxParticipants
	}
	if err := t.ChangeCapacity(minParticipants, maxParticipants); err != nil {
		return nil, err
	}

	if input.Status != nil {
		if err := t.ChangeStatus(domaintrip.TripStatus(*input.Status)); err != nil {
			return nil, err
		}
	}

	if input.CoverPhotoChanged {
		t.ChangeCoverPhoto(input.CoverPhoto, input.CoverPhotoType)
	}

	if err := s.tripRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("trip updated", zap.String("trip_id", t.ID.String()))
	return t, nil
}

// Cancel moves the trip to Cancelled. Host only, rejected when already
// cancelled.
func (s *TripService) Cancel(ctx context.Context, callerID, tripID uuid.UUID) (*domaintrip.Trip, error) {
	return s.transition(ctx, callerID, tripID, (*domaintrip.Trip).Cancel, "trip cancelled")
}

// Conclude moves the trip to Concluded. Host only, rejected when already
// concluded.
func (s *TripService) Conclude(ctx context.Context, callerID, tripID uuid.UUID) (*domaintrip.Trip, error) {
	return s.transition(ctx, callerID, tripID, (*domaintrip.Trip).Conclude, "trip concluded")
}

func (s *TripService) transition(ctx context.Context, callerID, tripID uuid.UUID, apply func(*domaintrip.Trip) error, msg string) (*domaintrip.Trip, error) {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !t.IsHost(callerID) {
		return nil, shared.NewDomainError("FORBIDDEN", "only the host can perform this action")
	}
	if err := apply(t); err != nil {
		return nil, err
	}
	if err := s.tripRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info(msg, zap.String("trip_id", t.ID.String()))
	return t, nil
}

// Join adds the caller to the trip. The host is already a participant, so a
// host join is rejected deterministically rather than hitting the composite
// key.
func (s *TripService) Join(ctx context.Context, callerID, tripID uuid.UUID) error {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return err
	}
	if t.IsHost(callerID) {
		return shared.NewDomainError("CONFLICT", "the host is already a participant")
	}

	if err := s.tripRepo.AddParticipant(ctx, tripID, callerID); err != nil {
		return err
	}

	s.logger.Info("participant joined",
		zap.String("trip_id", tripID.String()),
		zap.String("user_id", callerID.String()),
	)
	return nil
}

// Leave removes the caller from the trip. Hosts must cancel or conclude
// instead of leaving.
func (s *TripService) Leave(ctx context.Context, callerID, tripID uuid.UUID) error {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return err
	}
	if t.IsHost(callerID) {
		return shared.NewDomainError("FORBIDDEN", "the host cannot leave their own trip")
	}

	if err := s.tripRepo.RemoveParticipant(ctx, tripID, callerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("CONFLICT", "you are not a participant of this trip")
		}
		return err
	}

	s.logger.Info("participant left",
		zap.String("trip_id", tripID.String()),
		zap.String("user_id", callerID.String()),
	)
	return nil
}

// RemoveParticipant lets the host remove a member while the trip is still
// active. The host's own participation cannot be removed.
func (s *TripService) RemoveParticipant(ctx context.Context, callerID, tripID, targetID uuid.UUID) error {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return err
	}
	if !t.IsHost(callerID) {
		return shared.NewDomainError("FORBIDDEN", "only the host can remove participants")
	}
	if targetID == t.HostID {
		return shared.NewDomainError("FORBIDDEN", "the host cannot be removed from their own trip")
	}
	if t.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "participants cannot be removed from a cancelled or concluded trip")
	}

	if err := s.tripRepo.RemoveParticipant(ctx, tripID, targetID); err != nil {
		return err
	}

	s.logger.Info("participant removed",
		zap.String("trip_id", tripID.String()),
		zap.String("user_id", targetID.String()),
		zap.String("removed_by", callerID.String()),
	)
	return nil
}
