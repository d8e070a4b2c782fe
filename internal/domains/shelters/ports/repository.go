package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/projection"
)

var (
	ErrNotFound = errors.New("shelter not found")
	// ErrAlreadyExists is returned when a user tries to open a second shelter.
	ErrAlreadyExists = errors.New("user already runs a shelter")
)

type ShelterProjection = projection.Projection[*domain.Shelter]

// Repository stores shelters. Save assigns an ID to shelters that have none.
type Repository interface {
	Save(ctx context.Context, shelter *domain.Shelter) (*ShelterProjection, error)
	GetByID(ctx context.Context, id int64) (*ShelterProjection, error)
	// FindByUser returns the shelter run by userID or ErrNotFound.
	FindByUser(ctx context.Context, userID int64) (*ShelterProjection, error)
}
