package adoptions

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	adoptionapp "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/application"
	adoptionports "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petports "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
)

const (
	// ApplyDecisionActivityName changes a pet's status for an authorized decision.
	ApplyDecisionActivityName = "adoptions.activities.ApplyDecision"

	// Application error types surfaced to workflow callers.
	ErrorTypeInvalidTransition = "InvalidStatusTransition"
	ErrorTypeNotFound          = "NotFound"
	ErrorTypeInvalidInput      = "InvalidInput"
)

// Activities groups activities that operate on the adoptions bounded context.
type Activities struct {
	service adoptionports.Service
}

func NewActivities(service adoptionports.Service) *Activities {
	return &Activities{service: service}
}

// ApplyDecision runs the decision against the pets store. Domain failures are
// returned as non-retryable application errors.
func (a *Activities) ApplyDecision(ctx context.Context, cmd adoptionports.DecisionCommand) (*adoptionports.DecisionResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("decision activity not initialized", "applicationId", cmd.ApplicationID)
		return nil, errors.New("decision activity not initialized")
	}
	logger.Info("ApplyDecision activity started", "applicationId", cmd.ApplicationID, "petId", cmd.PetID, "decision", string(cmd.Decision))
	result, err := a.service.ApplyDecision(ctx, cmd)
	if err != nil {
		logger.Error("ApplyDecision activity failed", "applicationId", cmd.ApplicationID, "error", err)
		return nil, classify(err)
	}
	logger.Info("ApplyDecision activity completed", "applicationId", cmd.ApplicationID, "status", string(result.Status))
	return result, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, adoptionports.ErrDecisionConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidTransition, err)
	case errors.Is(err, petports.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeNotFound, err)
	case errors.Is(err, adoptionapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidInput, err)
	}
	return err
}
