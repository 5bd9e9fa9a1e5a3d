package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainidentity "github.com/tripshare/backend/internal/domain/identity"
	"github.com/tripshare/backend/internal/domain/review"
	"github.com/tripshare/backend/internal/domain/shared"
	"github.com/tripshare/backend/internal/domain/trip"
)

func newTestUserService(userRepo *MockUserRepository, tripRepo *MockTripRepository, reviewRepo *MockReviewRepository) *UserService {
	return NewUserService(userRepo, tripRepo, reviewRepo, zap.NewNop())
}

func newStoredProfileUser(t *testing.T) *domainidentity.User {
	t.Helper()
	user, err := domainidentity.NewUser("alice", "secret1", "collect moments")
	require.NoError(t, err)
	return user
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates hosted trips, joined trips and host reviews", func(t *testing.T) {
		user := newStoredProfileUser(t)

		userRepo := new(MockUserRepository)
		tripRepo := new(MockTripRepository)
		reviewRepo := new(MockReviewRepository)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		tripRepo.On("ListByHost", ctx, user.ID).Return([]*trip.Trip{}, nil)
		tripRepo.On("ListByParticipant", ctx, user.ID, true).Return([]*trip.TripListItem{}, nil)
		reviewRepo.On("ListByHost", ctx, user.ID).Return([]*review.HostReview{}, nil)

		service := newTestUserService(userRepo, tripRepo, reviewRepo)
		profile, err := service.GetProfile(ctx, user.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user, profile.User)
		tripRepo.AssertExpectations(t)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("rejects viewing another user's profile", func(t *testing.T) {
		service := newTestUserService(new(MockUserRepository), new(MockTripRepository), new(MockReviewRepository))

		_, err := service.GetProfile(ctx, uuid.New(), uuid.New())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestUserService_ListMyTrips(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tripRepo := new(MockTripRepository)
	tripRepo.On("ListByParticipant", ctx, userID, false).Return([]*trip.TripListItem{}, nil)

	service := newTestUserService(new(MockUserRepository), tripRepo, new(MockReviewRepository))
	_, err := service.ListMyTrips(ctx, userID)
	require.NoError(t, err)
	tripRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("updates username and mantra", func(t *testing.T) {
		user := newStoredProfileUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("ExistsByUsername", ctx, "wanderer").Return(false, nil)
		userRepo.On("Update", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		service := newTestUserService(userRepo, new(MockTripRepository), new(MockReviewRepository))
		username, mantra := "wanderer", "new mantra"
		updated, err := service.UpdateProfile(ctx, user.ID, user.ID, UpdateProfileInput{
			Username: &username,
			Mantra:   &mantra,
		})
		require.NoError(t, err)
		assert.Equal(t, "wanderer", updated.Username)
		assert.Equal(t, "new mantra", updated.Mantra)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		user := newStoredProfileUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("ExistsByUsername", ctx, "taken").Return(true, nil)

		service := newTestUserService(userRepo, new(MockTripRepository), new(MockReviewRepository))
		username := "taken"
		_, err := service.UpdateProfile(ctx, user.ID, user.ID, UpdateProfileInput{Username: &username})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("keeping own username skips the uniqueness check", func(t *testing.T) {
		user := newStoredProfileUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		service := newTestUserService(userRepo, new(MockTripRepository), new(MockReviewRepository))
		username := user.Username
		_, err := service.UpdateProfile(ctx, user.ID, user.ID, UpdateProfileInput{Username: &username})
		require.NoError(t, err)
		userRepo.AssertNotCalled(t, "ExistsByUsername", mock.Anything, mock.Anything)
	})

	t.Run("replaces bio photo only when flagged", func(t *testing.T) {
		user := newStoredProfileUser(t)
		user.ChangeBioPhoto([]byte{0x01}, "image/png")

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		service := newTestUserService(userRepo, new(MockTripRepository), new(MockReviewRepository))

		_, err := service.UpdateProfile(ctx, user.ID, user.ID, UpdateProfileInput{})
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01}, user.BioPhoto)

		updated, err := service.UpdateProfile(ctx, user.ID, user.ID, UpdateProfileInput{
			BioPhotoChanged: true,
			BioPhoto:        []byte{0x02},
			BioPhotoType:    "image/jpeg",
		})
		require.NoError(t, err)
		assert.Equal(t, []byte{0x02}, updated.BioPhoto)
		assert.Equal(t, "image/jpeg", updated.BioPhotoType)
	})

	t.Run("rejects editing another user's profile", func(t *testing.T) {
		service := newTestUserService(new(MockUserRepository), new(MockTripRepository), new(MockReviewRepository))

		_, err := service.UpdateProfile(ctx, uuid.New(), uuid.New(), UpdateProfileInput{})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}
