package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/projection"
)

var ErrNotFound = errors.New("adoption application not found")

type ApplicationProjection = projection.Projection[*domain.Application]

// Repository stores applications. Applications are only ever inserted.
type Repository interface {
	Save(ctx context.Context, app *domain.Application) (*ApplicationProjection, error)
	GetByID(ctx context.Context, id int64) (*ApplicationProjection, error)
	// ListForShelterOwner returns applications for pets in shelters run by userID, ordered by ID.
	ListForShelterOwner(ctx context.Context, userID int64) ([]*ApplicationProjection, error)
}
