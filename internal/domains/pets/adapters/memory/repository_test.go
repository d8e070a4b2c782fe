package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
)

func TestRepository_SaveAssignsIDsAndKeepsCreatedAt(t *testing.T) {
	repo := NewRepository()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	repo.WithClock(func() time.Time { return now })

	pet, err := domain.NewPet(1, "Rex")
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), pet)
	require.NoError(t, err)
	require.Equal(t, int64(1), saved.Entity.ID)
	require.Equal(t, int64(1), pet.ID)

	now = start.Add(time.Hour)
	pet.Describe("good dog")
	updated, err := repo.Save(context.Background(), pet)
	require.NoError(t, err)
	require.Equal(t, start, updated.Metadata.CreatedAt)
	require.Equal(t, now, updated.Metadata.UpdatedAt)
	require.Equal(t, "good dog", updated.Entity.Description)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	pet, err := domain.NewPet(1, "Rex")
	require.NoError(t, err)
	pet.ReplaceBreeds([]string{"beagle"})
	_, err = repo.Save(context.Background(), pet)
	require.NoError(t, err)

	loaded, err := repo.GetByID(context.Background(), pet.ID)
	require.NoError(t, err)
	loaded.Entity.Breeds[0] = "poodle"

	again, err := repo.GetByID(context.Background(), pet.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"beagle"}, again.Entity.Breeds)
}

func TestRepository_FindOrdersByID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C", "D"} {
		pet, err := domain.NewPet(1, name)
		require.NoError(t, err)
		_, err = repo.Save(ctx, pet)
		require.NoError(t, err)
	}

	list, err := repo.Find(ctx, ports.PetQuery{})
	require.NoError(t, err)
	require.Len(t, list, 4)
	for i := 1; i < len(list); i++ {
		require.Less(t, list[i-1].Entity.ID, list[i].Entity.ID)
	}
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	_, err := NewRepository().GetByID(context.Background(), 99)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
