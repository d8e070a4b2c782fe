package ports

import (
	"context"
	"errors"
)

// ErrDispatchUnavailable is returned when no dispatch backend is configured.
var ErrDispatchUnavailable = errors.New("dispatch backend unavailable")

// Dispatch field and action names used by the pet editor.
const (
	DispatchFieldDescription = "description"
	DispatchActionGet        = "get"
)

// Dispatcher sources field values from an outside service, keyed by a record identifier.
type Dispatcher interface {
	Fetch(ctx context.Context, field, action string, key int64) (string, error)
}

// NoopDispatcher is used when no dispatch backend is configured.
type NoopDispatcher struct{}

func (NoopDispatcher) Fetch(context.Context, string, string, int64) (string, error) {
	return "", ErrDispatchUnavailable
}

var _ Dispatcher = NoopDispatcher{}
