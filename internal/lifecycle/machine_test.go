package lifecycle

import (
	"testing"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.PlanState
		action  PlanAction
		role    domain.Role
		want    domain.PlanState
		wantErr error
	}{
		{"entity submits draft", domain.PlanDraft, ActionSubmit, domain.RoleEntity, domain.PlanPending, nil},
		{"admin submits draft", domain.PlanDraft, ActionSubmit, domain.RoleAdministrator, domain.PlanPending, nil},
		{"evaluator cannot submit", domain.PlanDraft, ActionSubmit, domain.RoleEvaluator, domain.PlanDraft, ErrNotAuthorized},
		{"evaluator approves pending", domain.PlanPending, ActionApprove, domain.RoleEvaluator, domain.PlanEnabled, nil},
		{"evaluator rejects pending", domain.PlanPending, ActionReject, domain.RoleEvaluator, domain.PlanReturned, nil},
		{"entity cannot approve", domain.PlanPending, ActionApprove, domain.RoleEntity, domain.PlanPending, ErrNotAuthorized},
		{"cannot submit twice", domain.PlanPending, ActionSubmit, domain.RoleEntity, domain.PlanPending, ErrInvalidTransition},
		{"no exit from returned", domain.PlanReturned, ActionSubmit, domain.RoleEntity, domain.PlanReturned, ErrInvalidTransition},
		{"cannot evaluate a draft", domain.PlanDraft, ActionApprove, domain.RoleEvaluator, domain.PlanDraft, ErrInvalidTransition},
		{"unknown state is frozen", domain.PlanUnknown, ActionSubmit, domain.RoleAdministrator, domain.PlanUnknown, ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanTransition(tt.from, tt.action, tt.role)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecisionFor(t *testing.T) {
	assert.Equal(t, domain.DecisionApproved, DecisionFor(ActionApprove))
	assert.Equal(t, domain.DecisionRejected, DecisionFor(ActionReject))
	assert.Equal(t, domain.DecisionUnset, DecisionFor(ActionSubmit))
}

func TestFollowUpTransition(t *testing.T) {
	assert.NoError(t, FollowUpTransition(domain.FollowUpPending, domain.FollowUpInProgress))
	assert.NoError(t, FollowUpTransition(domain.FollowUpPending, domain.FollowUpFinalized))
	assert.NoError(t, FollowUpTransition(domain.FollowUpFinalized, domain.FollowUpFinalized))

	err := FollowUpTransition(domain.FollowUpFinalized, domain.FollowUpPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = FollowUpTransition(domain.FollowUpPending, domain.FollowUpStatus("weird"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFollowUpsVisible(t *testing.T) {
	assert.False(t, FollowUpsVisible(nil))
	assert.False(t, FollowUpsVisible(&domain.Plan{ID: 0}))
	assert.False(t, FollowUpsVisible(&domain.Plan{ID: 1, State: domain.PlanDraft}))
	assert.False(t, FollowUpsVisible(&domain.Plan{ID: 1, State: domain.PlanPending}))

	assert.True(t, FollowUpsVisible(&domain.Plan{ID: 1, State: domain.PlanEnabled}))
	assert.True(t, FollowUpsVisible(&domain.Plan{ID: 1, State: domain.PlanReturned, Decision: domain.DecisionApproved}))

	// A draft stays closed even if the backend eagerly created a child.
	draft := &domain.Plan{ID: 1, State: domain.PlanDraft, FollowUps: []*domain.FollowUp{{ID: 9}}}
	assert.False(t, FollowUpsVisible(draft))
}
