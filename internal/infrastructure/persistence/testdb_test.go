package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tripshare/backend/internal/domain/identity"
	"github.com/tripshare/backend/internal/domain/trip"
	"github.com/tripshare/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.TripModel{},
		&models.ParticipationModel{},
		&models.ReviewModel{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, "secret1", "wander often, wonder always")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func createTestTrip(t *testing.T, db *gorm.DB, hostID uuid.UUID, maxParticipants int) *trip.Trip {
	t.Helper()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	tr, err := trip.NewTrip(hostID, "Coastal hike", "A week on the coast path", "Cornwall",
		start, start.AddDate(0, 0, 7), 1, maxParticipants)
	require.NoError(t, err)
	require.NoError(t, NewGormTripRepository(db).Create(context.Background(), tr))
	return tr
}
