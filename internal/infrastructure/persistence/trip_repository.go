package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tripshare/backend/internal/domain/shared"
	"github.com/tripshare/backend/internal/domain/trip"
	"github.com/tripshare/backend/internal/infrastructure/persistence/models"
)

// GormTripRepository implements trip.TripRepository using GORM
type GormTripRepository struct {
	db *gorm.DB
}

var _ trip.TripRepository = (*GormTripRepository)(nil)

// NewGormTripRepository creates a new trip repository
func NewGormTripRepository(db *gorm.DB) *GormTripRepository {
	return &GormTripRepository{db: db}
}

// Create persists the trip and its host's participation in one transaction.
func (r *GormTripRepository) Create(ctx context.Context, t *trip.Trip) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.TripModelFromDomain(t)).Error; err != nil {
			return err
		}
		host := trip.NewParticipation(t.ID, t.HostID)
		return tx.Create(models.ParticipationModelFromDomain(host)).Error
	})
}

// Update persists changes to an existing trip
func (r *GormTripRepository) Update(ctx context.Context, t *trip.Trip) error {
	model := models.TripModelFromDomain(t)
	result := r.db.WithContext(ctx).Model(&models.TripModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"title":            model.Title,
			"description":      model.Description,
			"destination":      model.Destination,
			"start_date":       model.StartDate,
			"end_date":         model.EndDate,
			"min_participants": model.MinParticipants,
			"max_participants": model.MaxParticipants,
			"cover_photo":      model.CoverPhoto,
			"cover_photo_type": model.CoverPhotoType,
			"status":           model.Status,
			"updated_at":       model.UpdatedAt,
			"version":          model.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID retrieves a trip by ID
func (r *GormTripRepository) FindByID(ctx context.Context, id uuid.UUID) (*trip.Trip, error) {
	var model models.TripModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List retrieves trips matching the filter, newest first, with participant
// counts and host usernames attached.
func (r *GormTripRepository) List(ctx context.Context, filter trip.TripFilter) ([]*trip.TripListItem, error) {
	query := r.db.WithContext(ctx).Model(&models.TripModel{})

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(destination) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.HasSlots {
		query = query.Where("status = ?", string(trip.TripStatusUpcoming)).
			Where("(SELECT COUNT(*) FROM trip_participants tp WHERE tp.trip_id = trips.id) < max_participants")
	}

	var tripModels []models.TripModel
	err := query.Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&tripModels).Error
	if err != nil {
		return nil, err
	}

	return r.toListItems(ctx, tripModels)
}

// AddParticipant inserts a participation under a trip row lock and flips
// Upcoming to Full when the insert saturates capacity. Status, duplicate and
// capacity checks all happen under the lock so racing joins cannot overshoot.
func (r *GormTripRepository) AddParticipant(ctx context.Context, tripID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := r.lockTrip(tx, tripID)
		if err != nil {
			return err
		}

		if t.Status != trip.TripStatusUpcoming {
			return shared.NewDomainError("INVALID_STATE", "trip is not open for joining")
		}

		var existing int64
		if err := tx.Model(&models.ParticipationModel{}).
			Where("trip_id = ? AND user_id = ?", tripID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return shared.NewDomainError("CONFLICT", "already a participant of this trip")
		}

		var count int64
		if err := tx.Model(&models.ParticipationModel{}).
			Where("trip_id = ?", tripID).
			Count(&count).Error; err != nil {
			return err
		}
		if !t.CanAcceptJoin(int(count)) {
			return shared.NewDomainError("CONFLICT", "trip is at full capacity")
		}

		p := trip.NewParticipation(tripID, userID)
		if err := tx.Create(models.ParticipationModelFromDomain(p)).Error; err != nil {
			return err
		}

		before := t.Status
		t.RecomputeStatus(int(count) + 1)
		if t.Status != before {
			return tx.Model(&models.TripModel{}).
				Where("id = ?", tripID).
				Update("status", string(t.Status)).Error
		}
		return nil
	})
}

// RemoveParticipant deletes a participation under a trip row lock and demotes
// Full to Upcoming when capacity frees up.
func (r *GormTripRepository) RemoveParticipant(ctx context.Context, tripID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := r.lockTrip(tx, tripID)
		if err != nil {
			return err
		}

		result := tx.Where("trip_id = ? AND user_id = ?", tripID, userID).
			Delete(&models.ParticipationModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		var count int64
		if err := tx.Model(&models.ParticipationModel{}).
			Where("trip_id = ?", tripID).
			Count(&count).Error; err != nil {
			return err
		}

		before := t.Status
		t.RecomputeStatus(int(count))
		if t.Status != before {
			return tx.Model(&models.TripModel{}).
				Where("id = ?", tripID).
				Update("status", string(t.Status)).Error
		}
		return nil
	})
}

// IsParticipant checks whether the user holds a participation for the trip
func (r *GormTripRepository) IsParticipant(ctx context.Context, tripID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ParticipationModel{}).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountParticipants counts participations for a trip
func (r *GormTripRepository) CountParticipants(ctx context.Context, tripID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ParticipationModel{}).
		Where("trip_id = ?", tripID).
		Count(&count).Error
	return count, err
}

// ListParticipants returns the trip's members with their identity, in join order.
func (r *GormTripRepository) ListParticipants(ctx context.Context, tripID uuid.UUID) ([]*trip.ParticipantInfo, error) {
	var result []*trip.ParticipantInfo
	var participations []models.ParticipationModel
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("joined_at ASC").
		Find(&participations).Error
	if err != nil {
		return nil, err
	}
	if len(participations) == 0 {
		return result, nil
	}

	userIDs := make([]uuid.UUID, 0, len(participations))
	for _, p := range participations {
		userIDs = append(userIDs, p.UserID)
	}

	var users []models.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.UserModel, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	for _, p := range participations {
		info := &trip.ParticipantInfo{
			UserID:   p.UserID,
			JoinedAt: p.JoinedAt,
		}
		if u, ok := byID[p.UserID]; ok {
			info.Username = u.Username
			info.Mantra = u.Mantra
			info.BioPhoto = u.BioPhoto
			info.BioPhotoType = u.BioPhotoType
		}
		result = append(result, info)
	}
	return result, nil
}

// ListByHost returns trips hosted by the user, most recent start first
func (r *GormTripRepository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]*trip.Trip, error) {
	var tripModels []models.TripModel
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("start_date DESC").
		Find(&tripModels).Error
	if err != nil {
		return nil, err
	}

	trips := make([]*trip.Trip, 0, len(tripModels))
	for i := range tripModels {
		trips = append(trips, tripModels[i].ToDomain())
	}
	return trips, nil
}

// ListByParticipant returns trips the user participates in, most recent
// start first, optionally excluding trips they host.
func (r *GormTripRepository) ListByParticipant(ctx context.Context, userID uuid.UUID, excludeHosted bool) ([]*trip.TripListItem, error) {
	query := r.db.WithContext(ctx).Model(&models.TripModel{}).
		Joins("JOIN trip_participants tp ON tp.trip_id = trips.id").
		Where("tp.user_id = ?", userID)
	if excludeHosted {
		query = query.Where("trips.host_id <> ?", userID)
	}

	var tripModels []models.TripModel
	if err := query.Order("trips.start_date DESC").Find(&tripModels).Error; err != nil {
		return nil, err
	}
	return r.toListItems(ctx, tripModels)
}

// lockTrip loads the trip row for update. SQLite has no FOR UPDATE and
// serializes writers itself, so the clause is only applied on postgres.
func (r *GormTripRepository) lockTrip(tx *gorm.DB, tripID uuid.UUID) (*trip.Trip, error) {
	query := tx
	if tx.Dialector.Name() != "sqlite" {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.TripModel
	if err := query.First(&model, "id = ?", tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// toListItems batches participant counts and host usernames for a trip page.
func (r *GormTripRepository) toListItems(ctx context.Context, tripModels []models.TripModel) ([]*trip.TripListItem, error) {
	items := make([]*trip.TripListItem, 0, len(tripModels))
	if len(tripModels) == 0 {
		return items, nil
	}

	tripIDs := make([]uuid.UUID, 0, len(tripModels))
	hostIDs := make([]uuid.UUID, 0, len(tripModels))
	for i := range tripModels {
		tripIDs = append(tripIDs, tripModels[i].ID)
		hostIDs = append(hostIDs, tripModels[i].HostID)
	}

	var counts []struct {
		TripID uuid.UUID
		Count  int
	}
	err := r.db.WithContext(ctx).Model(&models.ParticipationModel{}).
		Select("trip_id, COUNT(*) AS count").
		Where("trip_id IN ?", tripIDs).
		Group("trip_id").
		Find(&counts).Error
	if err != nil {
		return nil, err
	}
	countByTrip := make(map[uuid.UUID]int, len(counts))
	for _, c := range counts {
		countByTrip[c.TripID] = c.Count
	}

	var hosts []models.UserModel
	if err := r.db.WithContext(ctx).
		Select("id", "username").
		Where("id IN ?", hostIDs).
		Find(&hosts).Error; err != nil {
		return nil, err
	}
	hostByID := make(map[uuid.UUID]string, len(hosts))
	for _, h := range hosts {
		hostByID[h.ID] = h.Username
	}

	for i := range tripModels {
		items = append(items, &trip.TripListItem{
			Trip:             tripModels[i].ToDomain(),
			ParticipantCount: countByTrip[tripModels[i].ID],
			HostUsername:     hostByID[tripModels[i].HostID],
		})
	}
	return items, nil
}
