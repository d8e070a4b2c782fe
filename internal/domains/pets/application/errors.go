package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid pet input")
	// ErrUnauthenticated is returned when a use case needs a signed-in user.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the viewer does not run the pet's shelter.
	ErrForbidden = errors.New("pet belongs to another shelter")
	// ErrPrecondition is returned for an intake by a user who runs no shelter.
	ErrPrecondition = errors.New("user has no shelter")
	// ErrConflict is returned when a status change is not allowed from the current status.
	ErrConflict = errors.New("pet status conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidSpecies) ||
		errors.Is(err, domain.ErrInvalidGender) ||
		errors.Is(err, domain.ErrInvalidSize) ||
		errors.Is(err, domain.ErrNegativeAge) ||
		errors.Is(err, domain.ErrNegativeWeight) ||
		errors.Is(err, domain.ErrMissingShelter) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
