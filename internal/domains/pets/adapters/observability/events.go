package observability

import (
	"context"
	"log/slog"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
)

// EventLogger publishes pet domain events as structured log lines.
type EventLogger struct {
	logger *slog.Logger
}

func NewEventLogger(logger *slog.Logger) *EventLogger {
	if logger == nil {
		logger = defaultLogger()
	}
	return &EventLogger{logger: logger}
}

func (l *EventLogger) Publish(ctx context.Context, events ...domain.Event) error {
	for _, event := range events {
		attrs := []slog.Attr{
			slog.String("event", event.EventName()),
			slog.Time("occurred_at", event.OccurredAt()),
		}
		switch e := event.(type) {
		case domain.PetAdmitted:
			attrs = append(attrs, slog.Int64("pet.id", e.PetID), slog.Int64("shelter.id", e.ShelterID), slog.String("pet.name", e.Name))
		case domain.PetStatusChanged:
			attrs = append(attrs, slog.Int64("pet.id", e.PetID), slog.String("from", string(e.FromStatus)), slog.String("to", string(e.ToStatus)))
		}
		l.logger.LogAttrs(ctx, slog.LevelInfo, "pet event", attrs...)
	}
	return nil
}

var _ ports.EventPublisher = (*EventLogger)(nil)
