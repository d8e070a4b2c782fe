package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	shelterports "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

// Service implements the adoption use cases on top of the pets and shelters contexts.
type Service struct {
	repo     ports.Repository
	pets     ports.PetStatusChanger
	shelters shelterports.Service
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo ports.Repository, pets ports.PetStatusChanger, shelters shelterports.Service, opts ...Option) *Service {
	s := &Service{repo: repo, pets: pets, shelters: shelters, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) PrepareSubmission(ctx context.Context, petID int64) (*pettypes.PetProjection, error) {
	return s.pets.GetByID(ctx, pettypes.PetIdentifier{ID: petID})
}

// Submit records an application. The pet is resolved first so an unknown pet is
// reported as not found whoever asks, and nothing is stored.
func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*ports.ApplicationProjection, error) {
	pet, err := s.pets.GetByID(ctx, pettypes.PetIdentifier{ID: input.PetID})
	if err != nil {
		return nil, err
	}
	if !input.Viewer.Authenticated() {
		return nil, ErrUnauthenticated
	}
	app, err := domain.NewApplication(pet.Entity.ID, input.Viewer.UserID, input.ApplicantDetails, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, app)
}

// Queue lists the applications for pets in the viewer's shelter.
func (s *Service) Queue(ctx context.Context, viewer auth.Viewer) ([]*ports.QueueEntry, error) {
	if !viewer.Authenticated() {
		return nil, ErrUnauthenticated
	}
	apps, err := s.repo.ListForShelterOwner(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	entries := make([]*ports.QueueEntry, 0, len(apps))
	for _, app := range apps {
		pet, err := s.pets.GetByID(ctx, pettypes.PetIdentifier{ID: app.Entity.PetID})
		if err != nil {
			return nil, fmt.Errorf("load pet %d for application %d: %w", app.Entity.PetID, app.Entity.ID, err)
		}
		entries = append(entries, &ports.QueueEntry{Application: app, Pet: pet})
	}
	return entries, nil
}

func (s *Service) AuthorizeDecision(ctx context.Context, input ports.DecideInput) (*ports.DecisionCommand, error) {
	if !input.Viewer.Authenticated() {
		return nil, ErrUnauthenticated
	}
	decision, err := domain.ParseDecision(string(input.Decision))
	if err != nil {
		return nil, mapError(err)
	}
	app, err := s.repo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	pet, err := s.pets.GetByID(ctx, pettypes.PetIdentifier{ID: app.Entity.PetID})
	if err != nil {
		return nil, err
	}
	shelter, err := s.shelters.GetByID(ctx, pet.Entity.ShelterID)
	if err != nil {
		return nil, err
	}
	if !shelter.Entity.OwnedBy(input.Viewer.UserID) {
		return nil, ErrForbidden
	}
	return &ports.DecisionCommand{ApplicationID: app.Entity.ID, PetID: pet.Entity.ID, Decision: decision}, nil
}

// ApplyDecision sets the pet adopted on approval and adoptable on rejection.
// The application itself is left untouched.
func (s *Service) ApplyDecision(ctx context.Context, cmd ports.DecisionCommand) (*ports.DecisionResult, error) {
	id := pettypes.PetIdentifier{ID: cmd.PetID}
	var (
		pet *pettypes.PetProjection
		err error
	)
	switch cmd.Decision {
	case domain.DecisionApprove:
		pet, err = s.pets.Adopt(ctx, id)
	case domain.DecisionReject:
		pet, err = s.pets.ReturnToAdoptable(ctx, id)
	default:
		return nil, mapError(fmt.Errorf("%w: %q", domain.ErrInvalidDecision, cmd.Decision))
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &ports.DecisionResult{ApplicationID: cmd.ApplicationID, PetID: pet.Entity.ID, Status: pet.Entity.Status}, nil
}

var _ ports.Service = (*Service)(nil)
