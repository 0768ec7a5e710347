package repositories

import (
	"context"
	"testing"
	"time"

	"campus-keyledger/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRepository_BorrowableByFloor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewKeyRepository(db)
	ctx := context.Background()

	quiet := createTestRoom(t, db, "A101", 1)
	busy := createTestRoom(t, db, "A102", 1)
	upstairs := createTestRoom(t, db, "B201", 2)
	require.NoError(t, db.Model(busy).Update("borrowings_count", 5).Error)

	quietKey := createTestKey(t, db, quiet.ID, 101, models.KeyClassOrdinary)
	busyKey := createTestKey(t, db, busy.ID, 102, models.KeyClassOrdinary)
	borrowedKey := createTestKey(t, db, busy.ID, 103, models.KeyClassOrdinary)
	masterKey := createTestKey(t, db, quiet.ID, 901, models.KeyClassMaster)
	createTestKey(t, db, upstairs.ID, 201, models.KeyClassOrdinary)

	person := createTestPerson(t, db, "Jan", "Novak")
	authorization := createTestAuthorization(t, db, person.ID, busy.ID, models.OriginAdmin, time.Now().Add(24*time.Hour))
	_, err := NewBorrowingRepository(db).Borrow(ctx, borrowedKey.ID, authorization.ID, time.Now().UTC())
	require.NoError(t, err)

	t.Run("ordinary keys only, busiest room first", func(t *testing.T) {
		keys, err := repo.BorrowableByFloor(ctx, 1, true)
		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.Equal(t, busyKey.ID, keys[0].ID)
		assert.Equal(t, quietKey.ID, keys[1].ID)
		require.NotNil(t, keys[0].Room)
		assert.Equal(t, "A102", keys[0].Room.Name)
	})

	t.Run("master keys included on request", func(t *testing.T) {
		keys, err := repo.BorrowableByFloor(ctx, 1, false)
		require.NoError(t, err)
		ids := make([]uint, 0, len(keys))
		for _, k := range keys {
			ids = append(ids, k.ID)
		}
		assert.ElementsMatch(t, []uint{quietKey.ID, busyKey.ID, masterKey.ID}, ids)
	})
}
