package services

import (
	"context"
	"testing"
	"time"

	"campus-keyledger/internal/adapters/persistence/models"
	"campus-keyledger/internal/adapters/persistence/repositories"
	"campus-keyledger/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthorizationService(db *gorm.DB) *AuthorizationService {
	return NewAuthorizationService(
		repositories.NewAuthorizationRepository(db),
		repositories.NewPersonRepository(db),
		repositories.NewRoomRepository(db),
	)
}

func TestAuthorizationService_Add(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthorizationService(db)
	ctx := context.Background()

	room := createTestRoom(t, db, "A113", 1)
	person := createTestPerson(t, db, "Jan", "Novak")
	expiration := time.Now().Add(24 * time.Hour)

	t.Run("unknown person", func(t *testing.T) {
		_, err := service.Add(ctx, &AddAuthorizationInput{PersonID: 9999, RoomID: room.ID, Expiration: expiration})
		assert.ErrorIs(t, err, domain.ErrPersonNotFound)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := service.Add(ctx, &AddAuthorizationInput{PersonID: person.ID, RoomID: 9999, Expiration: expiration})
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	})

	t.Run("origin defaults to admin", func(t *testing.T) {
		authorization, err := service.Add(ctx, &AddAuthorizationInput{
			PersonID:   person.ID,
			RoomID:     room.ID,
			Expiration: expiration,
		})
		require.NoError(t, err)
		assert.Equal(t, models.OriginAdmin, authorization.OriginID)
	})

	t.Run("duplicate grants are allowed", func(t *testing.T) {
		_, err := service.Add(ctx, &AddAuthorizationInput{
			PersonID:   person.ID,
			RoomID:     room.ID,
			Expiration: expiration,
		})
		require.NoError(t, err)

		valid, err := service.ValidForRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Len(t, valid, 2)
	})
}

func TestAuthorizationService_Invalidate(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthorizationService(db)
	ctx := context.Background()

	room := createTestRoom(t, db, "A113", 1)
	person := createTestPerson(t, db, "Jan", "Novak")
	authorization := createTestAuthorization(t, db, person.ID, room.ID, models.OriginAdmin, time.Now().Add(24*time.Hour))

	t.Run("unknown authorization", func(t *testing.T) {
		err := service.Invalidate(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrAuthorizationNotFound)
	})

	t.Run("invalidated authorization stops being valid", func(t *testing.T) {
		require.NoError(t, service.Invalidate(ctx, authorization.ID))

		valid, err := service.ValidForRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Empty(t, valid)

		// the row survives for the borrowing history
		var count int64
		require.NoError(t, db.Model(&models.Authorization{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestAuthorizationService_ValidForRoomOrdering(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthorizationService(db)
	borrowingRepo := repositories.NewBorrowingRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, db, "A113", 1)
	key := createTestKey(t, db, room.ID, 101, models.KeyClassOrdinary)

	used := createTestPerson(t, db, "Jan", "Novak")
	unused := createTestPerson(t, db, "Petr", "Svoboda")
	now := time.Now().UTC()
	usedAuth := createTestAuthorization(t, db, used.ID, room.ID, models.OriginAdmin, now.Add(24*time.Hour))
	unusedAuth := createTestAuthorization(t, db, unused.ID, room.ID, models.OriginAdmin, now.Add(24*time.Hour))

	open, err := borrowingRepo.Borrow(ctx, key.ID, usedAuth.ID, now)
	require.NoError(t, err)
	_, err = borrowingRepo.Return(ctx, open.ID, now.Add(time.Hour))
	require.NoError(t, err)

	valid, err := service.ValidForRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, valid, 2)
	// fewest prior borrowings first
	assert.Equal(t, unusedAuth.ID, valid[0].ID)
	assert.Equal(t, usedAuth.ID, valid[1].ID)
}

func TestAuthorizationService_Search(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthorizationService(db)
	ctx := context.Background()

	room := createTestRoom(t, db, "A113", 1)
	person := createTestPerson(t, db, "Jan", "Novak")
	createTestAuthorization(t, db, person.ID, room.ID, models.OriginAdmin, time.Now().Add(24*time.Hour))

	t.Run("rejects expressions with more than two tokens", func(t *testing.T) {
		_, err := service.Search(ctx, "Jan Novak Petr")
		assert.ErrorIs(t, err, domain.ErrSearchExpression)
	})

	t.Run("matches by swapped name order", func(t *testing.T) {
		found, err := service.Search(ctx, "Novak Jan")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, person.ID, found[0].PersonID)
	})

	t.Run("restricts the prioritized ranking", func(t *testing.T) {
		ranked, err := service.SearchPrioritizedForRoom(ctx, "Jan", room.ID)
		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.Equal(t, person.ID, ranked[0].PersonID)
	})
}

func TestAuthorizationService_Overview(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthorizationService(db)
	ctx := context.Background()

	room := createTestRoom(t, db, "A113", 1)
	person := createTestPerson(t, db, "Jan", "Novak")
	createTestAuthorization(t, db, person.ID, room.ID, models.OriginDeansWrit, time.Now().Add(24*time.Hour))

	rows, err := service.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "dean's office", rows[0].Origin)
	assert.Equal(t, "A113", rows[0].Room)
}
