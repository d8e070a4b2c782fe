package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	adoptionports "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	adoptionactivities "github.com/Apurer/go-gin-shelter-server/internal/platform/temporal/activities/adoptions"
)

// DecisionActivityOptions is the retry budget for applying a decision.
var DecisionActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: time.Minute,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    2 * time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    10 * time.Second,
		MaximumAttempts:    5,
	},
}

// RunDecisionSequence applies an authorized adoption decision.
func RunDecisionSequence(ctx workflow.Context, cmd adoptionports.DecisionCommand) (*adoptionports.DecisionResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("decision sequence started", "applicationId", cmd.ApplicationID, "petId", cmd.PetID)

	var result adoptionports.DecisionResult
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, DecisionActivityOptions), adoptionactivities.ApplyDecisionActivityName, cmd).Get(ctx, &result)
	if err != nil {
		logger.Error("decision sequence failed", "applicationId", cmd.ApplicationID, "error", err)
		return nil, err
	}
	logger.Info("decision sequence applied", "applicationId", cmd.ApplicationID, "status", string(result.Status))
	return &result, nil
}
