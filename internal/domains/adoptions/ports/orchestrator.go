package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	petdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
)

// ErrDecisionConflict is returned when the pet's current status does not allow the decision.
var ErrDecisionConflict = errors.New("decision conflicts with pet status")

// DecisionCommand is an authorized decision, ready to be applied.
type DecisionCommand struct {
	ApplicationID int64
	PetID         int64
	Decision      domain.Decision
}

// DecisionResult reports the pet status after a decision.
type DecisionResult struct {
	ApplicationID int64
	PetID         int64
	Status        petdomain.Status
}

// DecisionOrchestrator runs an authorized decision, inline or durably.
type DecisionOrchestrator interface {
	Decide(ctx context.Context, cmd DecisionCommand) (*DecisionResult, error)
}
