package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petports "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
	adoptionactivities "github.com/Apurer/go-gin-shelter-server/internal/platform/temporal/activities/adoptions"
	adoptionworkflows "github.com/Apurer/go-gin-shelter-server/internal/platform/temporal/workflows/adoptions"
)

var (
	_ ports.DecisionOrchestrator = (*TemporalDecisions)(nil)
	_ ports.DecisionOrchestrator = (*InlineDecisions)(nil)
)

// TemporalDecisions runs adoption decisions as Temporal workflows and waits for the outcome.
type TemporalDecisions struct {
	client    client.Client
	taskQueue string
}

func NewTemporalDecisions(c client.Client) *TemporalDecisions {
	return &TemporalDecisions{client: c, taskQueue: adoptionworkflows.DecisionTaskQueue}
}

// Decide starts the decision workflow and maps its failures back to domain errors.
func (o *TemporalDecisions) Decide(ctx context.Context, cmd ports.DecisionCommand) (*ports.DecisionResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal decisions not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildDecisionWorkflowID(cmd, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		adoptionworkflows.DecisionWorkflowName,
		adoptionworkflows.DecisionWorkflowInput{Command: cmd, TraceID: traceComponent},
	)
	if err != nil {
		// A request replayed under the same trace joins the run it already started.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var result ports.DecisionResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, unwrapWorkflowError(err)
	}
	return &result, nil
}

// InlineDecisions applies decisions synchronously through the service.
type InlineDecisions struct {
	service ports.Service
}

func NewInlineDecisions(service ports.Service) *InlineDecisions {
	return &InlineDecisions{service: service}
}

func (o *InlineDecisions) Decide(ctx context.Context, cmd ports.DecisionCommand) (*ports.DecisionResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline decisions not configured")
	}
	return o.service.ApplyDecision(ctx, cmd)
}

func buildDecisionWorkflowID(cmd ports.DecisionCommand, traceComponent string) string {
	return fmt.Sprintf("adoption-decision-%d-%s", cmd.ApplicationID, traceComponent)
}

func unwrapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case adoptionactivities.ErrorTypeInvalidTransition:
		return fmt.Errorf("%w: %s", ports.ErrDecisionConflict, appErr.Error())
	case adoptionactivities.ErrorTypeNotFound:
		return fmt.Errorf("%w: %s", petports.ErrNotFound, appErr.Error())
	}
	return err
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
