package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripshare/backend/internal/domain/review"
	"github.com/tripshare/backend/internal/infrastructure/persistence/models"
)

// GormReviewRepository implements review.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

var _ review.ReviewRepository = (*GormReviewRepository)(nil)

// NewGormReviewRepository creates a new review repository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create persists a new review
func (r *GormReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	return r.db.WithContext(ctx).Create(models.ReviewModelFromDomain(rev)).Error
}

// ListByTrip returns reviews for a trip, most recent first, with author identity
func (r *GormReviewRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*review.ReviewWithAuthor, error) {
	var reviewModels []models.ReviewModel
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at DESC").
		Find(&reviewModels).Error
	if err != nil {
		return nil, err
	}

	authors, err := r.loadAuthors(ctx, reviewModels)
	if err != nil {
		return nil, err
	}

	result := make([]*review.ReviewWithAuthor, 0, len(reviewModels))
	for i := range reviewModels {
		item := &review.ReviewWithAuthor{Review: reviewModels[i].ToDomain()}
		if reviewModels[i].AuthorID != nil {
			item.Author = authors[*reviewModels[i].AuthorID]
		}
		result = append(result, item)
	}
	return result, nil
}

// ListByHost returns reviews received across all trips the user hosts,
// most recent first
func (r *GormReviewRepository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]*review.HostReview, error) {
	var reviewModels []models.ReviewModel
	err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Joins("JOIN trips ON trips.id = reviews.trip_id").
		Where("trips.host_id = ?", hostID).
		Order("reviews.created_at DESC").
		Find(&reviewModels).Error
	if err != nil {
		return nil, err
	}

	authors, err := r.loadAuthors(ctx, reviewModels)
	if err != nil {
		return nil, err
	}

	tripIDs := make([]uuid.UUID, 0, len(reviewModels))
	for i := range reviewModels {
		tripIDs = append(tripIDs, reviewModels[i].TripID)
	}
	tripsByID := make(map[uuid.UUID]review.TripSummary)
	if len(tripIDs) > 0 {
		var tripModels []models.TripModel
		if err := r.db.WithContext(ctx).
			Select("id", "title").
			Where("id IN ?", tripIDs).
			Find(&tripModels).Error; err != nil {
			return nil, err
		}
		for _, t := range tripModels {
			tripsByID[t.ID] = review.TripSummary{ID: t.ID, Title: t.Title}
		}
	}

	result := make([]*review.HostReview, 0, len(reviewModels))
	for i := range reviewModels {
		item := &review.HostReview{
			Review:    reviewModels[i].ToDomain(),
			Trip:      tripsByID[reviewModels[i].TripID],
			CreatedAt: reviewModels[i].CreatedAt,
		}
		if reviewModels[i].AuthorID != nil {
			item.Author = authors[*reviewModels[i].AuthorID]
		}
		result = append(result, item)
	}
	return result, nil
}

// ExistsByTripAndAuthor checks whether the author already reviewed the trip
func (r *GormReviewRepository) ExistsByTripAndAuthor(ctx context.Context, tripID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("trip_id = ? AND author_id = ?", tripID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormReviewRepository) loadAuthors(ctx context.Context, reviewModels []models.ReviewModel) (map[uuid.UUID]*review.AuthorInfo, error) {
	authorIDs := make([]uuid.UUID, 0, len(reviewModels))
	for i := range reviewModels {
		if reviewModels[i].AuthorID != nil {
			authorIDs = append(authorIDs, *reviewModels[i].AuthorID)
		}
	}
	authors := make(map[uuid.UUID]*review.AuthorInfo, len(authorIDs))
	if len(authorIDs) == 0 {
		return authors, nil
	}

	var users []models.UserModel
	err := r.db.WithContext(ctx).
		Select("id", "username", "bio_photo", "bio_photo_type").
		Where("id IN ?", authorIDs).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		authors[u.ID] = &review.AuthorInfo{
			ID:           u.ID,
			Username:     u.Username,
			BioPhoto:     u.BioPhoto,
			BioPhotoType: u.BioPhotoType,
		}
	}
	return authors, nil
}
