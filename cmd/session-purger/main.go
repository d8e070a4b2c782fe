package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	userpostgres "github.com/Apurer/go-gin-shelter-server/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/go-gin-shelter-server/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		logger.Error("POSTGRES_DSN not set or connection failed; cannot purge sessions")
		os.Exit(1)
	}
	defer cleanup()

	purged, err := userpostgres.NewSessionStore(db).PurgeExpired(ctx)
	if err != nil {
		logger.Error("failed to purge sessions", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
}
