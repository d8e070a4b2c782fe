package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
)

// ErrInvalidInput signals the request violated a shelter invariant.
var ErrInvalidInput = errors.New("invalid shelter input")

// Service implements shelter use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Open creates the shelter a user runs. A user can run at most one shelter.
func (s *Service) Open(ctx context.Context, input ports.OpenShelterInput) (*ports.ShelterProjection, error) {
	shelter, err := domain.NewShelter(input.UserID, input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	shelter.UpdateContact(input.Address, input.Phone)

	if _, err := s.repo.FindByUser(ctx, input.UserID); err == nil {
		return nil, ports.ErrAlreadyExists
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, shelter)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*ports.ShelterProjection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ForUser(ctx context.Context, userID int64) (*ports.ShelterProjection, error) {
	return s.repo.FindByUser(ctx, userID)
}

func mapError(err error) error {
	if errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrMissingOwner) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
