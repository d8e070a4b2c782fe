package ports

import (
	"context"

	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	List(ctx context.Context, input pettypes.ListPetsInput) (*pettypes.Catalog, error)
	Detail(ctx context.Context, input pettypes.PetDetailInput) (*pettypes.PetDetail, error)
	Admit(ctx context.Context, input pettypes.AdmitPetInput) (*pettypes.PetProjection, error)
	PrepareEdit(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.EditForm, error)
	Edit(ctx context.Context, input pettypes.EditPetInput) (*pettypes.PetProjection, error)
	GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	Adopt(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	ReturnToAdoptable(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
}
