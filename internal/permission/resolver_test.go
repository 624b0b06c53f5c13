package permission

import (
	"testing"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanEdit_PlanContent(t *testing.T) {
	tests := []struct {
		name string
		ctx  EditContext
		want bool
	}{
		{"entity edits draft", EditContext{Role: domain.RoleEntity, PlanState: domain.PlanDraft}, true},
		{"entity blocked after submit", EditContext{Role: domain.RoleEntity, PlanState: domain.PlanPending}, false},
		{"entity blocked when returned", EditContext{Role: domain.RoleEntity, PlanState: domain.PlanReturned}, false},
		{"evaluator never edits content", EditContext{Role: domain.RoleEvaluator, PlanState: domain.PlanDraft}, false},
		{"admin edits draft", EditContext{Role: domain.RoleAdministrator, PlanState: domain.PlanDraft}, true},
		{"admin blocked on enabled", EditContext{Role: domain.RoleAdministrator, PlanState: domain.PlanEnabled}, false},
		{"unknown state is read-only", EditContext{Role: domain.RoleEntity, PlanState: domain.PlanUnknown}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEdit(domain.FieldProposedAction, tt.ctx))
		})
	}
}

func TestCanEdit_PlanObservation(t *testing.T) {
	// Evaluators annotate submitted plans, never drafts or unknown states.
	assert.False(t, CanEdit(domain.FieldPlanObservation, EditContext{Role: domain.RoleEvaluator, PlanState: domain.PlanDraft}))
	assert.True(t, CanEdit(domain.FieldPlanObservation, EditContext{Role: domain.RoleEvaluator, PlanState: domain.PlanPending}))
	assert.True(t, CanEdit(domain.FieldPlanObservation, EditContext{Role: domain.RoleEvaluator, PlanState: domain.PlanEnabled}))
	assert.False(t, CanEdit(domain.FieldPlanObservation, EditContext{Role: domain.RoleEvaluator, PlanState: domain.PlanUnknown}))

	assert.True(t, CanEdit(domain.FieldPlanObservation, EditContext{Role: domain.RoleAdministrator, PlanState: domain.PlanUnknown}))
	assert.False(t, CanEdit(domain.FieldPlanObservation, EditContext{Role: domain.RoleEntity, PlanState: domain.PlanPending}))
}

func TestCanEdit_FollowUpContent(t *testing.T) {
	base := EditContext{Role: domain.RoleEntity, PlanState: domain.PlanEnabled, FollowUpStatus: domain.FollowUpPending}
	assert.True(t, CanEdit(domain.FieldActivitiesPerformed, base))

	// Once reviewed, the entity raises a new report instead of amending.
	reviewed := base
	reviewed.HasQualityObservation = true
	assert.False(t, CanEdit(domain.FieldActivitiesPerformed, reviewed))

	// Admins may amend a reviewed record.
	adminReviewed := reviewed
	adminReviewed.Role = domain.RoleAdministrator
	assert.True(t, CanEdit(domain.FieldActivitiesPerformed, adminReviewed))

	// Advanced follow-ups are closed for content edits.
	inProgress := base
	inProgress.FollowUpStatus = domain.FollowUpInProgress
	assert.False(t, CanEdit(domain.FieldReportDate, inProgress))
}

func TestCanEdit_FollowUpStatusAndObservation(t *testing.T) {
	eval := EditContext{Role: domain.RoleEvaluator, PlanState: domain.PlanEnabled, FollowUpStatus: domain.FollowUpInProgress}
	assert.True(t, CanEdit(domain.FieldFollowUpStatus, eval))
	assert.True(t, CanEdit(domain.FieldFollowUpObservation, eval))

	// The first observation locks both for the evaluator.
	eval.HasQualityObservation = true
	assert.False(t, CanEdit(domain.FieldFollowUpStatus, eval))
	assert.False(t, CanEdit(domain.FieldFollowUpObservation, eval))

	// Finalized is terminal for evaluators.
	finalized := EditContext{Role: domain.RoleEvaluator, PlanState: domain.PlanEnabled, FollowUpStatus: domain.FollowUpFinalized}
	assert.False(t, CanEdit(domain.FieldFollowUpStatus, finalized))

	// Admins bypass both locks. FinalizeLocked must stay off here since it
	// is a plan-wide lock, not the per-record terminal state.
	admin := EditContext{Role: domain.RoleAdministrator, FollowUpStatus: domain.FollowUpFinalized, HasQualityObservation: true}
	assert.True(t, CanEdit(domain.FieldFollowUpStatus, admin))
	assert.True(t, CanEdit(domain.FieldFollowUpObservation, admin))

	assert.False(t, CanEdit(domain.FieldFollowUpStatus, EditContext{Role: domain.RoleEntity, PlanState: domain.PlanEnabled}))
}

func TestCanEdit_FinalizeLockOverridesEverything(t *testing.T) {
	locked := EditContext{
		Role:           domain.RoleEntity,
		PlanState:      domain.PlanDraft,
		FollowUpStatus: domain.FollowUpPending,
		FinalizeLocked: true,
	}
	for _, f := range domain.AllFields {
		assert.False(t, CanEdit(f, locked), "field %s should be locked", f)
	}

	locked.Role = domain.RoleAdministrator
	assert.True(t, CanEdit(domain.FieldProposedAction, locked))
}

func TestCanEdit_TotalOverAllFields(t *testing.T) {
	// Every field must resolve without panicking for every role and state.
	roles := []domain.Role{domain.RoleEntity, domain.RoleEvaluator, domain.RoleAdministrator}
	states := []domain.PlanState{domain.PlanDraft, domain.PlanPending, domain.PlanEnabled, domain.PlanReturned, domain.PlanUnknown}
	for _, r := range roles {
		for _, s := range states {
			ctx := EditContext{Role: r, PlanState: s}
			for _, f := range domain.AllFields {
				_ = CanEdit(f, ctx)
			}
		}
	}
}

func TestContextFor(t *testing.T) {
	ctx := ContextFor(domain.RoleEntity, nil, nil)
	assert.Equal(t, domain.PlanDraft, ctx.PlanState)
	assert.Equal(t, domain.FollowUpPending, ctx.FollowUpStatus)

	p := &domain.Plan{ID: 1, State: domain.PlanEnabled, FollowUps: []*domain.FollowUp{
		{ID: 2, Status: domain.FollowUpFinalized},
	}}
	ctx = ContextFor(domain.RoleEntity, p, p.FollowUps[0])
	assert.Equal(t, domain.PlanEnabled, ctx.PlanState)
	assert.Equal(t, domain.FollowUpFinalized, ctx.FollowUpStatus)
	assert.True(t, ctx.FinalizeLocked)
}
