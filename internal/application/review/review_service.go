package review

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainreview "github.com/tripshare/backend/internal/domain/review"
	"github.com/tripshare/backend/internal/domain/shared"
	"github.com/tripshare/backend/internal/domain/trip"
)

// CreateReviewInput carries a review submission
type CreateReviewInput struct {
	Rating  int
	Comment string
}

// ReviewService gates review submission on lifecycle state and eligibility.
type ReviewService struct {
	reviewRepo domainreview.ReviewRepository
	tripRepo   trip.TripRepository
	logger     *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo domainreview.ReviewRepository, tripRepo trip.TripRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		tripRepo:   tripRepo,
		logger:     logger,
	}
}

// Create appends a review. The trip must be concluded, the author must have
// been a participant, and each author reviews a trip at most once.
func (s *ReviewService) Create(ctx context.Context, authorID, tripID uuid.UUID, input CreateReviewInput) (*domainreview.Review, error) {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.Status != trip.TripStatusConcluded {
		return nil, shared.NewDomainError("INVALID_STATE", "reviews can only be added to concluded trips")
	}

	isParticipant, err := s.tripRepo.IsParticipant(ctx, tripID, authorID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, shared.NewDomainError("FORBIDDEN", "only participants can review this trip")
	}

	exists, err := s.reviewRepo.ExistsByTripAndAuthor(ctx, tripID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CONFLICT", "you have already reviewed this trip")
	}

	r, err := domainreview.NewReview(tripID, authorID, input.Rating, input.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("review added",
		zap.String("trip_id", tripID.String()),
		zap.String("author_id", authorID.String()),
		zap.Int("rating", input.Rating),
	)
	return r, nil
}

// ListByTrip returns a trip's reviews, most recent first.
func (s *ReviewService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domainreview.ReviewWithAuthor, error) {
	return s.reviewRepo.ListByTrip(ctx, tripID)
}
