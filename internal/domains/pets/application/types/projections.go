package types

import (
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	shelterdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/projection"
)

// PetProjection transports a pet aggregate together with its persistence metadata.
type PetProjection = projection.Projection[*domain.Pet]

// Catalog is the result of a pet listing. Shelter is set when the listing was scoped to one.
type Catalog struct {
	Pets    []*PetProjection
	Shelter *shelterdomain.Shelter
}

// PetDetail is one pet plus the viewer's own shelter, when the viewer runs one.
type PetDetail struct {
	Pet           *PetProjection
	ViewerShelter *shelterdomain.Shelter
}

// EditForm holds the initial values of the pet editor.
type EditForm struct {
	Pet         *PetProjection
	Name        string
	Species     string
	Breeds      []string
	Age         int
	Gender      string
	Size        string
	WeightKg    float64
	Photos      []string
	Description string
}
