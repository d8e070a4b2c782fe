package adoptions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	adoptionports "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	adoptionactivities "github.com/Apurer/go-gin-shelter-server/internal/platform/temporal/activities/adoptions"
)

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(
		func(context.Context, adoptionports.DecisionCommand) (*adoptionports.DecisionResult, error) { return nil, nil },
		activity.RegisterOptions{Name: adoptionactivities.ApplyDecisionActivityName},
	)
	return env
}

func TestDecisionWorkflow_Approves(t *testing.T) {
	env := newEnv(t)
	cmd := adoptionports.DecisionCommand{ApplicationID: 1, PetID: 2, Decision: domain.DecisionApprove}
	env.OnActivity(adoptionactivities.ApplyDecisionActivityName, mock.Anything, cmd).
		Return(&adoptionports.DecisionResult{ApplicationID: 1, PetID: 2, Status: petdomain.StatusAdopted}, nil).Once()

	env.ExecuteWorkflow(DecisionWorkflow, DecisionWorkflowInput{Command: cmd, TraceID: "abc"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result adoptionports.DecisionResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, petdomain.StatusAdopted, result.Status)
	env.AssertExpectations(t)
}

func TestDecisionWorkflow_RetriesTransientFailures(t *testing.T) {
	env := newEnv(t)
	cmd := adoptionports.DecisionCommand{ApplicationID: 1, PetID: 2, Decision: domain.DecisionReject}
	env.OnActivity(adoptionactivities.ApplyDecisionActivityName, mock.Anything, cmd).
		Return(nil, errors.New("connection reset")).Once()
	env.OnActivity(adoptionactivities.ApplyDecisionActivityName, mock.Anything, cmd).
		Return(&adoptionports.DecisionResult{ApplicationID: 1, PetID: 2, Status: petdomain.StatusAdoptable}, nil).Once()

	env.ExecuteWorkflow(DecisionWorkflow, DecisionWorkflowInput{Command: cmd})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	env.AssertExpectations(t)
}

func TestDecisionWorkflow_DoesNotRetryConflicts(t *testing.T) {
	env := newEnv(t)
	cmd := adoptionports.DecisionCommand{ApplicationID: 1, PetID: 2, Decision: domain.DecisionApprove}
	env.OnActivity(adoptionactivities.ApplyDecisionActivityName, mock.Anything, cmd).
		Return(nil, temporal.NewNonRetryableApplicationError("already adopted", adoptionactivities.ErrorTypeInvalidTransition, nil)).Once()

	env.ExecuteWorkflow(DecisionWorkflow, DecisionWorkflowInput{Command: cmd})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, adoptionactivities.ErrorTypeInvalidTransition, appErr.Type())
	env.AssertExpectations(t)
}
