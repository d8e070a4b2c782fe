package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dispatchclient "github.com/Apurer/go-gin-shelter-server/internal/clients/http/dispatch"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
)

// HTTPDispatcher implements the dispatcher port over the dispatch HTTP service.
type HTTPDispatcher struct {
	client *dispatchclient.Client
}

// NewHTTPDispatcher wires a dispatch HTTP client into the dispatcher port.
func NewHTTPDispatcher(client *dispatchclient.Client) *HTTPDispatcher {
	return &HTTPDispatcher{client: client}
}

func (d *HTTPDispatcher) Fetch(ctx context.Context, field, action string, key int64) (string, error) {
	if d == nil || d.client == nil {
		return "", ports.ErrDispatchUnavailable
	}
	field = strings.TrimSpace(field)
	action = strings.TrimSpace(action)
	if field == "" || action == "" {
		return "", errors.New("dispatch field and action are required")
	}
	value, err := d.client.Fetch(ctx, field, action, key)
	if err != nil {
		return "", fmt.Errorf("dispatch %s/%s/%d: %w", field, action, key, err)
	}
	return value, nil
}

var _ ports.Dispatcher = (*HTTPDispatcher)(nil)
