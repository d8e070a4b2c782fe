package adoptions

import (
	"go.temporal.io/sdk/workflow"

	adoptionports "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/platform/temporal/sequences"
)

const (
	// DecisionWorkflowName is the public identifier for registering the workflow.
	DecisionWorkflowName = "adoptions.workflows.Decision"
	// DecisionTaskQueue is the queue consumed by the worker processing decisions.
	DecisionTaskQueue = "ADOPTION_DECISIONS"
)

// DecisionWorkflowInput carries an authorized decision.
type DecisionWorkflowInput struct {
	Command adoptionports.DecisionCommand
	TraceID string
}

// DecisionWorkflow applies an approve or reject decision to the application's pet.
func DecisionWorkflow(ctx workflow.Context, input DecisionWorkflowInput) (*adoptionports.DecisionResult, error) {
	logger := workflow.GetLogger(ctx)
	appID := input.Command.ApplicationID
	logger.Info("DecisionWorkflow started", withTraceID(input.TraceID, "applicationId", appID, "decision", string(input.Command.Decision))...)
	result, err := sequences.RunDecisionSequence(ctx, input.Command)
	if err != nil {
		logger.Error("DecisionWorkflow failed", withTraceID(input.TraceID, "applicationId", appID, "error", err)...)
		return nil, err
	}
	logger.Info("DecisionWorkflow completed", withTraceID(input.TraceID, "applicationId", appID, "status", string(result.Status))...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
