package repositories

import (
	"testing"
	"time"

	"campus-keyledger/internal/adapters/persistence/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	origins := []models.AuthorizationOrigin{
		{ID: models.OriginAdmin, Name: "admin"},
		{ID: models.OriginDeansWrit, Name: "dean's office"},
		{ID: models.OriginRectorate, Name: "rectorate"},
	}
	require.NoError(t, db.Create(&origins).Error)

	return db
}

func createTestRoom(t *testing.T, db *gorm.DB, name string, floor int) *models.Room {
	room := &models.Room{Name: name, Floor: floor}
	require.NoError(t, db.Create(room).Error)
	return room
}

func createTestKey(t *testing.T, db *gorm.DB, roomID uint, registration, class int) *models.Key {
	key := &models.Key{RoomID: roomID, RegistrationNumber: registration, KeyClass: class}
	require.NoError(t, db.Create(key).Error)
	return key
}

func createTestPerson(t *testing.T, db *gorm.DB, firstname, surname string) *models.AuthorizedPerson {
	person := &models.AuthorizedPerson{Firstname: firstname, Surname: surname}
	require.NoError(t, db.Create(person).Error)
	return person
}

func createTestAuthorization(t *testing.T, db *gorm.DB, personID, roomID, originID uint, expiration time.Time) *models.Authorization {
	authorization := &models.Authorization{
		PersonID:   personID,
		RoomID:     roomID,
		OriginID:   originID,
		Expiration: expiration,
	}
	require.NoError(t, db.Create(authorization).Error)
	return authorization
}
