package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	types "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
	shelterdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"
	shelterports "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo       ports.Repository
	shelters   shelterports.Repository
	dispatcher ports.Dispatcher
	events     ports.EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Service)

// WithDispatcher sets the backend that pre-populates the editor's description.
func WithDispatcher(d ports.Dispatcher) Option {
	return func(s *Service) { s.dispatcher = d }
}

// WithEventPublisher sets where recorded pet events go.
func WithEventPublisher(p ports.EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository, shelters shelterports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		shelters:   shelters,
		dispatcher: ports.NoopDispatcher{},
		events:     ports.NoopEventPublisher{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List returns the catalog. Unscoped listings only show adoptable and pending pets;
// a listing scoped to a shelter shows all of that shelter's pets.
func (s *Service) List(ctx context.Context, input types.ListPetsInput) (*types.Catalog, error) {
	query := catalogQuery(input)
	catalog := &types.Catalog{}
	if input.ShelterID != nil {
		shelter, err := s.shelters.GetByID(ctx, *input.ShelterID)
		if err != nil {
			return nil, mapError(err)
		}
		catalog.Shelter = shelter.Entity
		id := shelter.Entity.ID
		query.ShelterID = &id
	} else {
		query.Statuses = domain.ListedStatuses
	}
	pets, err := s.repo.Find(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	catalog.Pets = pets
	return catalog, nil
}

// catalogQuery applies the species, gender and size filters only when all supplied values are valid.
func catalogQuery(input types.ListPetsInput) ports.PetQuery {
	var query ports.PetQuery
	if input.Species != "" {
		species, err := domain.ParseSpecies(input.Species)
		if err != nil {
			return ports.PetQuery{}
		}
		query.Species = species
	}
	if input.Gender != "" {
		gender, err := domain.ParseGender(input.Gender)
		if err != nil {
			return ports.PetQuery{}
		}
		query.Gender = gender
	}
	if input.Size != "" {
		size, err := domain.ParseSize(input.Size)
		if err != nil {
			return ports.PetQuery{}
		}
		query.Size = size
	}
	return query
}

// Detail loads a pet and, for shelter users, the shelter they run.
func (s *Service) Detail(ctx context.Context, input types.PetDetailInput) (*types.PetDetail, error) {
	pet, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	detail := &types.PetDetail{Pet: pet}
	if input.Viewer.Authenticated() && input.Viewer.IsShelter {
		shelter, err := s.shelters.FindByUser(ctx, input.Viewer.UserID)
		switch {
		case err == nil:
			detail.ViewerShelter = shelter.Entity
		case !errors.Is(err, shelterports.ErrNotFound):
			return nil, err
		}
	}
	return detail, nil
}

// Admit creates a pet in the viewer's shelter.
func (s *Service) Admit(ctx context.Context, input types.AdmitPetInput) (*types.PetProjection, error) {
	if !input.Viewer.Authenticated() {
		return nil, ErrUnauthenticated
	}
	shelter, err := s.viewerShelter(ctx, input.Viewer)
	if err != nil {
		if errors.Is(err, shelterports.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrPrecondition, input.Viewer.UserID)
		}
		return nil, err
	}
	if input.Name == nil {
		return nil, mapError(domain.ErrEmptyName)
	}
	pet, err := domain.NewPet(shelter.ID, *input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyMutation(pet, input.PetMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	pet.ID = saved.Entity.ID
	pet.Admitted(s.now())
	s.publish(ctx, pet)
	return saved, nil
}

// PrepareEdit returns the editor's initial values. The description comes from the
// dispatcher; the stored description is used when the dispatcher fails.
func (s *Service) PrepareEdit(ctx context.Context, input types.PetIdentifier) (*types.EditForm, error) {
	proj, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := proj.Entity
	form := &types.EditForm{
		Pet:         proj,
		Name:        pet.Name,
		Species:     string(pet.Species),
		Breeds:      append([]string(nil), pet.Breeds...),
		Age:         pet.Age,
		Gender:      string(pet.Gender),
		Size:        string(pet.Size),
		WeightKg:    pet.WeightKg,
		Photos:      append([]string(nil), pet.Photos...),
		Description: pet.Description,
	}
	description, err := s.dispatcher.Fetch(ctx, ports.DispatchFieldDescription, ports.DispatchActionGet, pet.ID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "dispatch lookup failed, using stored description",
			slog.Int64("pet.id", pet.ID), slog.String("error", err.Error()))
		return form, nil
	}
	form.Description = description
	return form, nil
}

// Edit overwrites the supplied attributes of a pet run by the viewer's shelter.
func (s *Service) Edit(ctx context.Context, input types.EditPetInput) (*types.PetProjection, error) {
	if !input.Viewer.Authenticated() {
		return nil, ErrUnauthenticated
	}
	proj, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.authorize(ctx, input.Viewer, proj.Entity); err != nil {
		return nil, err
	}
	if err := applyMutation(proj.Entity, input.PetMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, proj.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	proj, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return proj, nil
}

// Adopt marks a pet adopted.
func (s *Service) Adopt(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	return s.changeStatus(ctx, input.ID, func(p *domain.Pet) error {
		return p.Adopt(s.now())
	})
}

// ReturnToAdoptable puts a pet back on the catalog.
func (s *Service) ReturnToAdoptable(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	return s.changeStatus(ctx, input.ID, func(p *domain.Pet) error {
		p.ReturnToAdoptable(s.now())
		return nil
	})
}

func (s *Service) changeStatus(ctx context.Context, id int64, change func(*domain.Pet) error) (*types.PetProjection, error) {
	proj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	pet := proj.Entity
	if err := change(pet); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, pet)
	return saved, nil
}

func (s *Service) viewerShelter(ctx context.Context, viewer auth.Viewer) (*shelterdomain.Shelter, error) {
	proj, err := s.shelters.FindByUser(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	return proj.Entity, nil
}

func (s *Service) authorize(ctx context.Context, viewer auth.Viewer, pet *domain.Pet) error {
	shelter, err := s.viewerShelter(ctx, viewer)
	if err != nil {
		if errors.Is(err, shelterports.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if shelter.ID != pet.ShelterID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) publish(ctx context.Context, pet *domain.Pet) {
	events := pet.Events()
	pet.ClearEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish pet events",
			slog.Int64("pet.id", pet.ID), slog.String("error", err.Error()))
	}
}

func applyMutation(target *domain.Pet, input types.PetMutationInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Species != nil {
		if err := target.SetSpecies(*input.Species); err != nil {
			return err
		}
	}
	if input.Breeds != nil {
		target.ReplaceBreeds(*input.Breeds)
	}
	if input.Age != nil {
		if err := target.SetAge(*input.Age); err != nil {
			return err
		}
	}
	if input.Gender != nil {
		if err := target.SetGender(*input.Gender); err != nil {
			return err
		}
	}
	if input.Size != nil {
		if err := target.SetSize(*input.Size); err != nil {
			return err
		}
	}
	if input.WeightKg != nil {
		if err := target.SetWeight(*input.WeightKg); err != nil {
			return err
		}
	}
	if input.Photos != nil {
		target.ReplacePhotos(*input.Photos)
	}
	if input.Description != nil {
		target.Describe(*input.Description)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
