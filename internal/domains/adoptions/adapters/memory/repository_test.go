package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petmemory "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/memory"
	petdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	sheltermemory "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/memory"
	shelterdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"
)

func TestRepository_ListForShelterOwner(t *testing.T) {
	ctx := context.Background()
	pets := petmemory.NewRepository()
	shelters := sheltermemory.NewRepository()
	repo := NewRepository(pets, shelters)

	petFor := func(ownerID int64, name string) int64 {
		s, err := shelterdomain.NewShelter(ownerID, name+" shelter")
		require.NoError(t, err)
		saved, err := shelters.Save(ctx, s)
		require.NoError(t, err)
		p, err := petdomain.NewPet(saved.Entity.ID, name)
		require.NoError(t, err)
		_, err = pets.Save(ctx, p)
		require.NoError(t, err)
		return p.ID
	}
	mine := petFor(10, "Rex")
	theirs := petFor(20, "Tom")

	submit := func(petID int64) int64 {
		app, err := domain.NewApplication(petID, 99, domain.ApplicantDetails{FullName: "Jane", Email: "j@x"}, time.Now())
		require.NoError(t, err)
		_, err = repo.Save(ctx, app)
		require.NoError(t, err)
		return app.ID
	}
	first := submit(mine)
	submit(theirs)
	third := submit(mine)

	list, err := repo.ListForShelterOwner(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first, list[0].Entity.ID)
	require.Equal(t, third, list[1].Entity.ID)

	list, err = repo.ListForShelterOwner(ctx, 30)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRepository_GetByID(t *testing.T) {
	repo := NewRepository(petmemory.NewRepository(), sheltermemory.NewRepository())
	_, err := repo.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, ports.ErrNotFound)

	app := &domain.Application{PetID: 1, UserID: 2, FullName: "Jane", Email: "j@x"}
	saved, err := repo.Save(context.Background(), app)
	require.NoError(t, err)
	require.Equal(t, int64(1), app.ID)

	app.FullName = "changed"
	loaded, err := repo.GetByID(context.Background(), saved.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane", loaded.Entity.FullName)
}
