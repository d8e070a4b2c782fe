//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/platform/postgres/pgtest"
)

func TestRepository_SaveAndGetByUsername(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	user, err := domain.NewUser("alice", "alice@example.com", "secret-pass")
	require.NoError(t, err)
	user.IsShelter = true

	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.True(t, saved.IsShelter)

	fetched, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.True(t, fetched.CheckPassword("secret-pass"))

	_, err = repo.GetByID(ctx, saved.ID+100)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DuplicateUsername(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	first, err := domain.NewUser("bob", "", "secret-pass")
	require.NoError(t, err)
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewUser("bob", "", "other-pass")
	require.NoError(t, err)
	_, err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, ports.ErrUsernameTaken)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	db := pgtest.Start(t)
	users := NewRepository(db)
	store := NewSessionStore(db)
	ctx := context.Background()

	user, err := domain.NewUser("carol", "", "secret-pass")
	require.NoError(t, err)
	_, err = users.Save(ctx, user)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, store.Save(ctx, ports.Session{Token: "live", UserID: user.ID, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, ports.Session{Token: "stale", UserID: user.ID, ExpiresAt: now.Add(-time.Hour)}))

	session, err := store.Lookup(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Lookup(ctx, "stale")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "live"))
	_, err = store.Lookup(ctx, "live")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestRepository_DeleteFreesUsername(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	user, err := domain.NewUser("carol", "", "secret-pass")
	require.NoError(t, err)
	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	_, err = repo.GetByUsername(ctx, "carol")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	again, err := domain.NewUser("carol", "", "secret-pass")
	require.NoError(t, err)
	_, err = repo.Save(ctx, again)
	assert.NoError(t, err)
}
