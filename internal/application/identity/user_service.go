package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainidentity "github.com/tripshare/backend/internal/domain/identity"
	"github.com/tripshare/backend/internal/domain/review"
	"github.com/tripshare/backend/internal/domain/shared"
	"github.com/tripshare/backend/internal/domain/trip"
)

// UserService handles the profile read surface and profile edits.
type UserService struct {
	userRepo   domainidentity.UserRepository
	tripRepo   trip.TripRepository
	reviewRepo review.ReviewRepository
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo domainidentity.UserRepository, tripRepo trip.TripRepository, reviewRepo review.ReviewRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		tripRepo:   tripRepo,
		reviewRepo: reviewRepo,
		logger:     logger,
	}
}

// GetProfile returns the caller's own profile with hosted trips, joined
// trips and the reviews received as host. Profiles are private to their owner.
func (s *UserService) GetProfile(ctx context.Context, callerID, targetID uuid.UUID) (*ProfileResult, error) {
	if callerID != targetID {
		return nil, shared.NewDomainError("FORBIDDEN", "you can only view your own profile")
	}

	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	hosted, err := s.tripRepo.ListByHost(ctx, targetID)
	if err != nil {
		return nil, err
	}

	joined, err := s.tripRepo.ListByParticipant(ctx, targetID, true)
	if err != nil {
		return nil, err
	}

	hostReviews, err := s.reviewRepo.ListByHost(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &ProfileResult{
		User:        user,
		HostedTrips: hosted,
		JoinedTrips: joined,
		HostReviews: hostReviews,
	}, nil
}

// ListMyTrips returns every trip the user participates in, hosted ones
// included, most recent start first.
func (s *UserService) ListMyTrips(ctx context.Context, userID uuid.UUID) ([]*trip.TripListItem, error) {
	return s.tripRepo.ListByParticipant(ctx, userID, false)
}

// UpdateProfile applies a self-only profile edit.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, targetID uuid.UUID, input UpdateProfileInput) (*domainidentity.User, error) {
	if callerID != targetID {
		return nil, shared.NewDomainError("FORBIDDEN", "you can only edit your own profile")
	}

	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		taken, err := s.userRepo.ExistsByUsername(ctx, *input.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "username is already taken")
		}
		if err := user.ChangeUsername(*input.Username); err != nil {
			return nil, err
		}
	}

	if input.Mantra != nil {
		if err := user.ChangeMantra(*input.Mantra); err != nil {
			return nil, err
		}
	}

	if input.BioPhotoChanged {
		user.ChangeBioPhoto(input.BioPhoto, input.BioPhotoType)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", zap.String("user_id", user.ID.String()))
	return user, nil
}
