package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	shelterports "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

// DefaultSessionTTL applies when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// Service exposes user bounded context use cases.
type Service struct {
	repo       ports.Repository
	sessions   ports.SessionStore
	shelters   shelterports.Service
	sessionTTL time.Duration
	now        func() time.Time
	newToken   func() string
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo ports.Repository, sessions ports.SessionStore, shelters shelterports.Service, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		sessions:   sessions,
		shelters:   shelters,
		sessionTTL: DefaultSessionTTL,
		now:        time.Now,
		newToken:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates the account and, for shelter staff, their shelter.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.Registration, error) {
	user, err := domain.NewUser(input.Username, input.Email, input.Password)
	if err != nil {
		return nil, mapError(err)
	}
	user.IsShelter = input.IsShelter
	opensShelter := input.IsShelter && strings.TrimSpace(input.ShelterName) != ""

	if _, err := s.repo.GetByUsername(ctx, user.Username); err == nil {
		return nil, ports.ErrUsernameTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	registration := &ports.Registration{User: saved}

	if opensShelter {
		shelter, err := s.shelters.Open(ctx, shelterports.OpenShelterInput{
			UserID:  saved.ID,
			Name:    input.ShelterName,
			Address: input.ShelterAddress,
			Phone:   input.ShelterPhone,
		})
		if err != nil {
			// Roll back the account so the username stays free.
			if delErr := s.repo.Delete(ctx, saved.ID); delErr != nil {
				err = errors.Join(err, delErr)
			}
			return nil, fmt.Errorf("open shelter for %s: %w", saved.Username, err)
		}
		registration.Shelter = shelter.Entity
	}
	return registration, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrInvalidCredentials)
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	session := ports.Session{
		Token:     s.newToken(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: session.Token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// Logout drops the session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a token. Expired sessions are removed and rejected.
func (s *Service) Authenticate(ctx context.Context, token string) (auth.Viewer, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Viewer{}, mapError(ports.ErrSessionNotFound)
	}
	session, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return auth.Viewer{}, mapError(err)
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return auth.Viewer{}, mapError(ports.ErrSessionNotFound)
	}
	user, err := s.repo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return auth.Viewer{}, mapError(ports.ErrSessionNotFound)
		}
		return auth.Viewer{}, err
	}
	return auth.Viewer{UserID: user.ID, Username: user.Username, IsShelter: user.IsShelter}, nil
}

var _ ports.Service = (*Service)(nil)
