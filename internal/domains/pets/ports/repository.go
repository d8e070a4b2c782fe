package ports

import (
	"context"
	"errors"

	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
)

var ErrNotFound = errors.New("pet not found")

// PetQuery narrows a pet search. Zero values are not applied.
type PetQuery struct {
	ShelterID *int64
	Statuses  []domain.Status
	Species   domain.Species
	Gender    domain.Gender
	Size      domain.Size
}

// Matches reports whether pet satisfies every applied criterion.
func (q PetQuery) Matches(pet *domain.Pet) bool {
	if pet == nil {
		return false
	}
	if q.ShelterID != nil && pet.ShelterID != *q.ShelterID {
		return false
	}
	if len(q.Statuses) > 0 {
		found := false
		for _, s := range q.Statuses {
			if pet.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Species != "" && pet.Species != q.Species {
		return false
	}
	if q.Gender != "" && pet.Gender != q.Gender {
		return false
	}
	if q.Size != "" && pet.Size != q.Size {
		return false
	}
	return true
}

// Repository persists pets. Save assigns an ID to pets that have none.
// Find returns results ordered by ID.
type Repository interface {
	Save(ctx context.Context, pet *domain.Pet) (*pettypes.PetProjection, error)
	GetByID(ctx context.Context, id int64) (*pettypes.PetProjection, error)
	Find(ctx context.Context, query PetQuery) ([]*pettypes.PetProjection, error)
}
