package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/users/domain"
	shelterdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

// RegisterInput creates an account. A shelter is opened when IsShelter is set and ShelterName is given.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	IsShelter      bool
	ShelterName    string
	ShelterAddress string
	ShelterPhone   string
}

// Registration is the outcome of Register.
type Registration struct {
	User    *domain.User
	Shelter *shelterdomain.Shelter
}

// LoginResult carries the issued session token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Registration, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token to the viewer it belongs to.
	Authenticate(ctx context.Context, token string) (auth.Viewer, error)
}
