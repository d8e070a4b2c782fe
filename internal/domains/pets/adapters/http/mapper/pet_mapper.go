package mapper

import (
	"time"

	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	sheltermapper "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/http/mapper"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

// PetAttributes are the optional pet fields shared by the intake and edit forms.
// Pointer fields distinguish "not sent" from a zero value.
type PetAttributes struct {
	Species     *string  `form:"species" json:"species" binding:"omitempty,oneof=dog cat bird rabbit other"`
	Breeds      []string `form:"breeds" json:"breeds" binding:"omitempty,dive,max=64"`
	Age         *int     `form:"age" json:"age" binding:"omitempty,gte=0,lte=100"`
	Gender      *string  `form:"gender" json:"gender" binding:"omitempty,oneof=male female"`
	Size        *string  `form:"size" json:"size" binding:"omitempty,oneof=small medium large"`
	WeightKg    *float64 `form:"weight" json:"weight" binding:"omitempty,gte=0"`
	Photos      []string `form:"photos" json:"photos" binding:"omitempty,dive,url"`
	Description *string  `form:"description" json:"description" binding:"omitempty,max=4000"`
}

// AdmitPetForm is the intake form. Name is required.
type AdmitPetForm struct {
	Name string `form:"name" json:"name" binding:"required,max=100"`
	PetAttributes
}

// EditPetForm is the editor form. Every field is optional.
type EditPetForm struct {
	Name *string `form:"name" json:"name" binding:"omitempty,min=1,max=100"`
	PetAttributes
}

// CatalogQuery binds the catalog filter form. Values are validated by the service.
type CatalogQuery struct {
	Species string `form:"species"`
	Gender  string `form:"gender"`
	Size    string `form:"size"`
}

// Pet is the HTTP representation of a pet.
type Pet struct {
	ID          int64     `json:"id"`
	ShelterID   int64     `json:"shelterId"`
	Name        string    `json:"name"`
	Species     string    `json:"species,omitempty"`
	Breeds      []string  `json:"breeds"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender,omitempty"`
	Size        string    `json:"size,omitempty"`
	WeightKg    float64   `json:"weight"`
	Photos      []string  `json:"photos"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Catalog is the pet listing response.
type Catalog struct {
	Pets    []Pet                  `json:"pets"`
	Shelter *sheltermapper.Shelter `json:"shelter"`
}

// PetDetail is the pet page response.
type PetDetail struct {
	Pet     Pet                    `json:"pet"`
	Shelter *sheltermapper.Shelter `json:"shelter"`
}

// EditForm is the editor's initial state.
type EditForm struct {
	Pet    Pet         `json:"pet"`
	Fields EditedField `json:"initial"`
}

// EditedField holds the initial values of the editor fields.
type EditedField struct {
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	Breeds      []string `json:"breeds"`
	Age         int      `json:"age"`
	Gender      string   `json:"gender"`
	Size        string   `json:"size"`
	WeightKg    float64  `json:"weight"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
}

// ToAdmitInput maps the intake form to the application input.
func ToAdmitInput(viewer auth.Viewer, form AdmitPetForm) pettypes.AdmitPetInput {
	name := form.Name
	input := pettypes.AdmitPetInput{Viewer: viewer, PetMutationInput: form.PetAttributes.toMutation()}
	input.Name = &name
	return input
}

// ToEditInput maps the editor form to the application input.
func ToEditInput(viewer auth.Viewer, id int64, form EditPetForm) pettypes.EditPetInput {
	input := pettypes.EditPetInput{ID: id, Viewer: viewer, PetMutationInput: form.PetAttributes.toMutation()}
	input.Name = form.Name
	return input
}

// ToListInput maps the catalog query.
func ToListInput(shelterID *int64, query CatalogQuery) pettypes.ListPetsInput {
	return pettypes.ListPetsInput{
		ShelterID: shelterID,
		Species:   query.Species,
		Gender:    query.Gender,
		Size:      query.Size,
	}
}

func (a PetAttributes) toMutation() pettypes.PetMutationInput {
	m := pettypes.PetMutationInput{
		Species:     a.Species,
		Age:         a.Age,
		Gender:      a.Gender,
		Size:        a.Size,
		WeightKg:    a.WeightKg,
		Description: a.Description,
	}
	if a.Breeds != nil {
		breeds := append([]string{}, a.Breeds...)
		m.Breeds = &breeds
	}
	if a.Photos != nil {
		photos := append([]string{}, a.Photos...)
		m.Photos = &photos
	}
	return m
}

// FromProjection maps a stored pet for responses.
func FromProjection(p *pettypes.PetProjection) Pet {
	if p == nil || p.Entity == nil {
		return Pet{}
	}
	pet := p.Entity
	return Pet{
		ID:          pet.ID,
		ShelterID:   pet.ShelterID,
		Name:        pet.Name,
		Species:     string(pet.Species),
		Breeds:      nonNil(pet.Breeds),
		Age:         pet.Age,
		Gender:      string(pet.Gender),
		Size:        string(pet.Size),
		WeightKg:    pet.WeightKg,
		Photos:      nonNil(pet.Photos),
		Description: pet.Description,
		Status:      string(pet.Status),
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
	}
}

// FromProjections maps a list of stored pets.
func FromProjections(list []*pettypes.PetProjection) []Pet {
	out := make([]Pet, 0, len(list))
	for _, p := range list {
		if p == nil {
			continue
		}
		out = append(out, FromProjection(p))
	}
	return out
}

func FromCatalog(c *pettypes.Catalog) Catalog {
	if c == nil {
		return Catalog{Pets: []Pet{}}
	}
	return Catalog{Pets: FromProjections(c.Pets), Shelter: sheltermapper.FromDomainShelter(c.Shelter)}
}

func FromDetail(d *pettypes.PetDetail) PetDetail {
	return PetDetail{Pet: FromProjection(d.Pet), Shelter: sheltermapper.FromDomainShelter(d.ViewerShelter)}
}

func FromEditForm(f *pettypes.EditForm) EditForm {
	return EditForm{
		Pet: FromProjection(f.Pet),
		Fields: EditedField{
			Name:        f.Name,
			Species:     f.Species,
			Breeds:      nonNil(f.Breeds),
			Age:         f.Age,
			Gender:      f.Gender,
			Size:        f.Size,
			WeightKg:    f.WeightKg,
			Photos:      nonNil(f.Photos),
			Description: f.Description,
		},
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}
