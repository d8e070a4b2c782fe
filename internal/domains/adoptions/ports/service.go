package ports

import (
	"context"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

// SubmitInput is an adoption application for PetID by Viewer.
type SubmitInput struct {
	PetID  int64
	Viewer auth.Viewer
	domain.ApplicantDetails
}

// DecideInput asks to approve or reject an application.
type DecideInput struct {
	ApplicationID int64
	Viewer        auth.Viewer
	Decision      domain.Decision
}

// QueueEntry is one pending application together with its pet.
type QueueEntry struct {
	Application *ApplicationProjection
	Pet         *pettypes.PetProjection
}

// Service defines the adoption use cases.
type Service interface {
	// PrepareSubmission loads the pet an application form is for.
	PrepareSubmission(ctx context.Context, petID int64) (*pettypes.PetProjection, error)
	Submit(ctx context.Context, input SubmitInput) (*ApplicationProjection, error)
	Queue(ctx context.Context, viewer auth.Viewer) ([]*QueueEntry, error)
	// AuthorizeDecision checks the viewer may decide on the application and builds the command.
	AuthorizeDecision(ctx context.Context, input DecideInput) (*DecisionCommand, error)
	// ApplyDecision changes the pet status. It performs no authorization.
	ApplyDecision(ctx context.Context, cmd DecisionCommand) (*DecisionResult, error)
}
