package repositories

import (
	"context"
	"testing"
	"time"

	"campus-keyledger/internal/adapters/persistence/models"
	"campus-keyledger/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowingRepository_Borrow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBorrowingRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, db, "A113", 1)
	key := createTestKey(t, db, room.ID, 101, models.KeyClassOrdinary)
	person := createTestPerson(t, db, "Jan", "Novak")
	authorization := createTestAuthorization(t, db, person.ID, room.ID, models.OriginAdmin, time.Now().Add(24*time.Hour))

	now := time.Now().UTC()

	t.Run("opens a borrowing and bumps the room counter", func(t *testing.T) {
		borrowing, err := repo.Borrow(ctx, key.ID, authorization.ID, now)
		require.NoError(t, err)
		assert.Equal(t, key.ID, borrowing.KeyID)
		assert.Equal(t, authorization.ID, borrowing.AuthorizationID)
		assert.Nil(t, borrowing.Returned)

		var fresh models.Room
		require.NoError(t, db.First(&fresh, room.ID).Error)
		assert.Equal(t, 1, fresh.BorrowingsCount)
	})

	t.Run("rejects a second borrowing of the same key", func(t *testing.T) {
		_, err := repo.Borrow(ctx, key.ID, authorization.ID, now)
		assert.ErrorIs(t, err, domain.ErrKeyAlreadyBorrowed)

		var count int64
		require.NoError(t, db.Model(&models.Borrowing{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := repo.Borrow(ctx, 9999, authorization.ID, now)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("unknown authorization", func(t *testing.T) {
		spare := createTestKey(t, db, room.ID, 102, models.KeyClassOrdinary)
		_, err := repo.Borrow(ctx, spare.ID, 9999, now)
		assert.ErrorIs(t, err, domain.ErrAuthorizationNotFound)
	})
}

func TestBorrowingRepository_Return(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBorrowingRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, db, "B201", 2)
	key := createTestKey(t, db, room.ID, 201, models.KeyClassOrdinary)
	person := createTestPerson(t, db, "Petr", "Svoboda")
	authorization := createTestAuthorization(t, db, person.ID, room.ID, models.OriginAdmin, time.Now().Add(24*time.Hour))

	borrowed := time.Now().UTC().Add(-time.Hour)
	borrowing, err := repo.Borrow(ctx, key.ID, authorization.ID, borrowed)
	require.NoError(t, err)

	t.Run("closes an open borrowing", func(t *testing.T) {
		returned, err := repo.Return(ctx, borrowing.ID, time.Now().UTC())
		require.NoError(t, err)
		require.NotNil(t, returned.Returned)
	})

	t.Run("a second return fails", func(t *testing.T) {
		_, err := repo.Return(ctx, borrowing.ID, time.Now().UTC())
		assert.ErrorIs(t, err, domain.ErrAlreadyReturned)
	})

	t.Run("unknown borrowing", func(t *testing.T) {
		_, err := repo.Return(ctx, 9999, time.Now().UTC())
		assert.ErrorIs(t, err, domain.ErrBorrowingNotFound)
	})

	t.Run("returned key can be borrowed again", func(t *testing.T) {
		_, err := repo.Borrow(ctx, key.ID, authorization.ID, time.Now().UTC())
		require.NoError(t, err)
	})
}

func TestBorrowingRepository_Ongoing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBorrowingRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, db, "C301", 3)
	keyOld := createTestKey(t, db, room.ID, 301, models.KeyClassOrdinary)
	keyNew := createTestKey(t, db, room.ID, 302, models.KeyClassOrdinary)
	keyDone := createTestKey(t, db, room.ID, 303, models.KeyClassOrdinary)
	person := createTestPerson(t, db, "Eva", "Dvorakova")
	authorization := createTestAuthorization(t, db, person.ID, room.ID, models.OriginAdmin, time.Now().Add(24*time.Hour))

	now := time.Now().UTC()
	older, err := repo.Borrow(ctx, keyOld.ID, authorization.ID, now.Add(-48*time.Hour))
	require.NoError(t, err)
	newer, err := repo.Borrow(ctx, keyNew.ID, authorization.ID, now.Add(-time.Minute))
	require.NoError(t, err)
	closed, err := repo.Borrow(ctx, keyDone.ID, authorization.ID, now.Add(-72*time.Hour))
	require.NoError(t, err)
	_, err = repo.Return(ctx, closed.ID, now)
	require.NoError(t, err)

	t.Run("lists open borrowings oldest first", func(t *testing.T) {
		ongoing, err := repo.Ongoing(ctx)
		require.NoError(t, err)
		require.Len(t, ongoing, 2)
		assert.Equal(t, older.ID, ongoing[0].ID)
		assert.Equal(t, newer.ID, ongoing[1].ID)
		require.NotNil(t, ongoing[0].Key)
		assert.Equal(t, keyOld.ID, ongoing[0].Key.ID)
	})

	t.Run("cutoff keeps only stale borrowings", func(t *testing.T) {
		stale, err := repo.OngoingOlderThan(ctx, now.Add(-24*time.Hour))
		require.NoError(t, err)
		require.Len(t, stale, 1)
		assert.Equal(t, older.ID, stale[0].ID)
	})
}
