package repositories

import (
	"context"
	"testing"

	"campus-keyledger/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPersonRepository(db)
	ctx := context.Background()

	novak := createTestPerson(t, db, "Jan", "Novak")
	janacek := createTestPerson(t, db, "Petr", "Janacek")
	createTestPerson(t, db, "Eva", "Dvorakova")

	t.Run("single token prefix-matches firstname and surname", func(t *testing.T) {
		persons, err := repo.Search(ctx, []string{"Jan"})
		require.NoError(t, err)
		require.Len(t, persons, 2)
		// ordered by surname
		assert.Equal(t, janacek.ID, persons[0].ID)
		assert.Equal(t, novak.ID, persons[1].ID)
	})

	t.Run("two tokens in natural order", func(t *testing.T) {
		persons, err := repo.Search(ctx, []string{"Jan", "Novak"})
		require.NoError(t, err)
		require.Len(t, persons, 1)
		assert.Equal(t, novak.ID, persons[0].ID)
	})

	t.Run("two tokens swapped", func(t *testing.T) {
		persons, err := repo.Search(ctx, []string{"Novak", "Jan"})
		require.NoError(t, err)
		require.Len(t, persons, 1)
		assert.Equal(t, novak.ID, persons[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		persons, err := repo.Search(ctx, []string{"Zelenka"})
		require.NoError(t, err)
		assert.Empty(t, persons)
	})
}

func TestPersonRepository_UpdateFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPersonRepository(db)
	ctx := context.Background()

	person := createTestPerson(t, db, "Jan", "Novak")

	require.NoError(t, repo.UpdateFields(ctx, person.ID, map[string]interface{}{
		"surname": "Novotny",
	}))

	var fresh models.AuthorizedPerson
	require.NoError(t, db.First(&fresh, person.ID).Error)
	assert.Equal(t, "Jan", fresh.Firstname)
	assert.Equal(t, "Novotny", fresh.Surname)
}
