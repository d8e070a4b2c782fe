//go:build integration
// +build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petpostgres "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/persistence/postgres"
	petdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	shelterpostgres "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/persistence/postgres"
	shelterdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/platform/postgres/pgtest"
)

func TestRepository_SubmitAndListForShelterOwner(t *testing.T) {
	db := pgtest.Start(t)
	ctx := context.Background()
	repo := NewRepository(db)
	pets := petpostgres.NewRepository(db)
	shelters := shelterpostgres.NewRepository(db)

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

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []int64
	for _, petID := range []int64{mine, theirs, mine} {
		app, err := domain.NewApplication(petID, 99, domain.ApplicantDetails{FullName: "Jane", Email: "jane@example.com"}, at)
		require.NoError(t, err)
		saved, err := repo.Save(ctx, app)
		require.NoError(t, err)
		require.Equal(t, app.ID, saved.Entity.ID)
		ids = append(ids, app.ID)
	}

	list, err := repo.ListForShelterOwner(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, ids[0], list[0].Entity.ID)
	require.Equal(t, ids[2], list[1].Entity.ID)
	require.Equal(t, "Jane", list[0].Entity.FullName)
	require.True(t, at.Equal(list[0].Entity.CreatedAt))

	list, err = repo.ListForShelterOwner(ctx, 99)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRepository_GetByIDAndImmutability(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 12345)
	require.ErrorIs(t, err, ports.ErrNotFound)

	app, err := domain.NewApplication(1, 2, domain.ApplicantDetails{FullName: "Jane", Email: "jane@example.com", Phone: "555"}, time.Now().UTC())
	require.NoError(t, err)
	_, err = repo.Save(ctx, app)
	require.NoError(t, err)

	loaded, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, "555", loaded.Entity.Phone)

	_, err = repo.Save(ctx, app)
	require.Error(t, err)
}
