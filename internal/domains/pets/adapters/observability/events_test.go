package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
)

func TestEventLogger_WritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := NewEventLogger(logger).Publish(context.Background(),
		domain.PetAdmitted{BaseEvent: domain.BaseEvent{Timestamp: at}, PetID: 3, ShelterID: 1, Name: "Rex"},
		domain.PetStatusChanged{BaseEvent: domain.BaseEvent{Timestamp: at}, PetID: 3, FromStatus: domain.StatusAdoptable, ToStatus: domain.StatusAdopted},
	)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var second map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &second))
	require.Equal(t, "pets.pet.status_changed", second["event"])
	require.Equal(t, "adopted", second["to"])
	require.EqualValues(t, 3, second["pet.id"])
}
