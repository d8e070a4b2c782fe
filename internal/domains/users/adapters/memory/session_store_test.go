package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
)

func TestSessionStore_PurgeExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore()
	store.WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, ports.Session{Token: "old", UserID: 1, ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, store.Save(ctx, ports.Session{Token: "fresh", UserID: 1, ExpiresAt: now.Add(time.Hour)}))

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), purged)

	_, err = store.Lookup(ctx, "old")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
	session, err := store.Lookup(ctx, "fresh")
	require.NoError(t, err)
	require.Equal(t, int64(1), session.UserID)
}
