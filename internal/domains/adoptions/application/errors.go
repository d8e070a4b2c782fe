package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
)

var (
	// ErrInvalidInput signals the application form violated a domain invariant.
	ErrInvalidInput = errors.New("invalid adoption input")
	// ErrUnauthenticated is returned when a use case needs a signed-in user.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the viewer does not run the shelter housing the pet.
	ErrForbidden = errors.New("application belongs to another shelter")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyFullName) ||
		errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrMissingPet) ||
		errors.Is(err, domain.ErrInvalidDecision) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, petdomain.ErrInvalidTransition) && !errors.Is(err, ports.ErrDecisionConflict) {
		return fmt.Errorf("%w: %w", ports.ErrDecisionConflict, err)
	}
	return err
}
