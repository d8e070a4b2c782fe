package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{now: time.Now}
}

// WithClock overrides the clock used by PurgeExpired.
func (s *SessionStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *SessionStore) Save(_ context.Context, session ports.Session) error {
	session.Token = strings.TrimSpace(session.Token)
	if session.Token == "" || session.UserID <= 0 {
		return ports.ErrSessionNotFound
	}
	s.sessions.Store(session.Token, session)
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, token string) (*ports.Session, error) {
	value, ok := s.sessions.Load(strings.TrimSpace(token))
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	session := value.(ports.Session)
	return &session, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.sessions.Delete(strings.TrimSpace(token))
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context) (int64, error) {
	now := s.now()
	var purged int64
	s.sessions.Range(func(key, value any) bool {
		if value.(ports.Session).Expired(now) {
			s.sessions.Delete(key)
			purged++
		}
		return true
	})
	return purged, nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
