package ports

import (
	"context"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
)

// EventPublisher forwards domain events recorded by pet aggregates.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}

// NoopEventPublisher drops events.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(context.Context, ...domain.Event) error { return nil }
