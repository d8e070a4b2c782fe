package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/users/domain"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

// Repository stores users. Save assigns an ID to users that have none.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Delete removes a user. Unknown ids are ignored.
	Delete(ctx context.Context, id int64) error
}
