package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripshare/backend/internal/domain/identity"
	"github.com/tripshare/backend/internal/domain/shared"
)

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find by id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormUserRepository(db)
		user := createTestUser(t, db, "alice")

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Username)
		assert.Equal(t, user.PasswordHash, found.PasswordHash)
		assert.Equal(t, user.Mantra, found.Mantra)
	})

	t.Run("find by username is case-insensitive", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormUserRepository(db)
		createTestUser(t, db, "Alice")

		found, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice", found.Username)
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormUserRepository(db)

		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("exists by username", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormUserRepository(db)
		createTestUser(t, db, "alice")

		exists, err := repo.ExistsByUsername(ctx, "ALICE")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate username violates unique index", func(t *testing.T) {
		db := setupTestDB(t)
		createTestUser(t, db, "alice")

		repo := NewGormUserRepository(db)
		dup, err := identity.NewUser("alice", "secret1", "another mantra")
		require.NoError(t, err)
		assert.Error(t, repo.Create(ctx, dup))
	})

	t.Run("update persists profile changes", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormUserRepository(db)
		user := createTestUser(t, db, "alice")

		require.NoError(t, user.ChangeMantra("leave only footprints"))
		user.ChangeBioPhoto([]byte{0x89, 0x50, 0x4e, 0x47}, "image/png")
		require.NoError(t, repo.Update(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "leave only footprints", found.Mantra)
		assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, found.BioPhoto)
		assert.Equal(t, "image/png", found.BioPhotoType)
	})

	t.Run("update missing user returns not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormUserRepository(db)
		user := createTestUser(t, db, "alice")
		user.ID = uuid.New()

		assert.ErrorIs(t, repo.Update(ctx, user), shared.ErrNotFound)
	})
}
