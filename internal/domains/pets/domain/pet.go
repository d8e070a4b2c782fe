package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status represents where a pet is in the adoption lifecycle.
type Status string

const (
	StatusAdoptable       Status = "adoptable"
	StatusPendingAdoption Status = "pending_adoption"
	StatusAdopted         Status = "adopted"
)

// ListedStatuses are the statuses shown in the public catalog.
var ListedStatuses = []Status{StatusAdoptable, StatusPendingAdoption}

// Species of animal housed by a shelter.
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

// Gender of a pet.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Size is the coarse size class used by catalog filters.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

var (
	ErrEmptyName         = errors.New("pet name is required")
	ErrInvalidSpecies    = errors.New("unknown species")
	ErrInvalidGender     = errors.New("unknown gender")
	ErrInvalidSize       = errors.New("unknown size")
	ErrInvalidStatus     = errors.New("unknown status")
	ErrNegativeAge       = errors.New("age must be greater or equal to zero")
	ErrNegativeWeight    = errors.New("weight must be greater or equal to zero")
	ErrMissingShelter    = errors.New("pet must belong to a shelter")
	ErrInvalidTransition = errors.New("invalid pet status transition")
)

// Pet is the aggregate a shelter lists for adoption.
type Pet struct {
	ID          int64
	ShelterID   int64
	Name        string
	Species     Species
	Breeds      []string
	Age         int
	Gender      Gender
	Size        Size
	WeightKg    float64
	Photos      []string
	Description string
	Status      Status

	events []Event
}

// NewPet admits a pet into a shelter. New pets are adoptable.
func NewPet(shelterID int64, name string) (*Pet, error) {
	if shelterID <= 0 {
		return nil, ErrMissingShelter
	}
	p := &Pet{ShelterID: shelterID, Status: StatusAdoptable}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseSpecies validates a species value.
func ParseSpecies(value string) (Species, error) {
	s := Species(strings.ToLower(strings.TrimSpace(value)))
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesOther:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSpecies, value)
}

// ParseGender validates a gender value.
func ParseGender(value string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(value)))
	switch g {
	case GenderMale, GenderFemale:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGender, value)
}

// ParseSize validates a size value.
func ParseSize(value string) (Size, error) {
	s := Size(strings.ToLower(strings.TrimSpace(value)))
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSize, value)
}

// ParseStatus validates a stored status value.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	switch s {
	case StatusAdoptable, StatusPendingAdoption, StatusAdopted:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

func (p *Pet) SetSpecies(value string) error {
	if strings.TrimSpace(value) == "" {
		p.Species = ""
		return nil
	}
	s, err := ParseSpecies(value)
	if err != nil {
		return err
	}
	p.Species = s
	return nil
}

func (p *Pet) SetGender(value string) error {
	if strings.TrimSpace(value) == "" {
		p.Gender = ""
		return nil
	}
	g, err := ParseGender(value)
	if err != nil {
		return err
	}
	p.Gender = g
	return nil
}

func (p *Pet) SetSize(value string) error {
	if strings.TrimSpace(value) == "" {
		p.Size = ""
		return nil
	}
	s, err := ParseSize(value)
	if err != nil {
		return err
	}
	p.Size = s
	return nil
}

func (p *Pet) SetAge(years int) error {
	if years < 0 {
		return ErrNegativeAge
	}
	p.Age = years
	return nil
}

func (p *Pet) SetWeight(kg float64) error {
	if kg < 0 {
		return ErrNegativeWeight
	}
	p.WeightKg = kg
	return nil
}

// ReplaceBreeds stores the trimmed, non-empty breed names.
func (p *Pet) ReplaceBreeds(breeds []string) {
	p.Breeds = compact(breeds)
}

// ReplacePhotos stores the trimmed, non-empty photo URLs.
func (p *Pet) ReplacePhotos(urls []string) {
	p.Photos = compact(urls)
}

func (p *Pet) Describe(description string) {
	p.Description = strings.TrimSpace(description)
}

// Adopt marks the pet adopted. Only adoptable or pending pets can be adopted.
func (p *Pet) Adopt(at time.Time) error {
	if p.Status != StatusAdoptable && p.Status != StatusPendingAdoption {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, StatusAdopted)
	}
	p.changeStatus(StatusAdopted, at)
	return nil
}

// ReturnToAdoptable puts the pet back on the catalog from any status.
func (p *Pet) ReturnToAdoptable(at time.Time) {
	p.changeStatus(StatusAdoptable, at)
}

// IsListed reports whether the pet appears in the unscoped catalog.
func (p *Pet) IsListed() bool {
	for _, s := range ListedStatuses {
		if p.Status == s {
			return true
		}
	}
	return false
}

// Admitted records the intake event once the pet has an identity.
func (p *Pet) Admitted(at time.Time) {
	p.record(PetAdmitted{BaseEvent: BaseEvent{Timestamp: at}, PetID: p.ID, ShelterID: p.ShelterID, Name: p.Name})
}

func (p *Pet) changeStatus(to Status, at time.Time) {
	from := p.Status
	p.Status = to
	if from != to {
		p.record(PetStatusChanged{BaseEvent: BaseEvent{Timestamp: at}, PetID: p.ID, FromStatus: from, ToStatus: to})
	}
}

func (p *Pet) record(e Event) {
	p.events = append(p.events, e)
}

// Events returns the events recorded since the last ClearEvents.
func (p *Pet) Events() []Event {
	return append([]Event(nil), p.events...)
}

// ClearEvents drops recorded events.
func (p *Pet) ClearEvents() {
	p.events = nil
}

// Clone returns a deep copy without recorded events.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Breeds = append([]string(nil), p.Breeds...)
	clone.Photos = append([]string(nil), p.Photos...)
	clone.events = nil
	return &clone
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

var _ AggregateWithEvents = (*Pet)(nil)
