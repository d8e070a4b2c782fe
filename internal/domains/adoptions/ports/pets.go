package ports

import (
	"context"

	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
)

// PetStatusChanger is the part of the pets service adoption decisions drive.
type PetStatusChanger interface {
	GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	Adopt(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	ReturnToAdoptable(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
}
