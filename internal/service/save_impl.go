package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/api"
	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/permission"
)

// planPayload builds the outbound plan body from the working copy. Blank
// fields travel as nulls.
func planPayload(w domain.WorkingCopy) api.PlanPayload {
	return api.PlanPayload{
		EntityName:    w.EntityName,
		EntityContact: api.Nullable(w.EntityContact),
		Indicator:     api.Nullable(w.Indicator),
		Input:         api.Nullable(w.ImprovementInput),
		ActionType:    api.Nullable(w.ActionType),
		Recommended:   api.Nullable(w.RecommendedAction),
		Proposed:      api.Nullable(w.ProposedAction),
		Activities:    api.Nullable(w.ActivitiesDescription),
		Evidence:      api.Nullable(w.ComplianceEvidence),
		StartDate:     api.Nullable(w.StartDate),
		EndDate:       api.Nullable(w.EndDate),
	}
}

// followUpPayload builds the outbound follow-up body, stamped with the
// acting identity for the audit trail. Reviewers write one quality
// observation; whichever form slot it was typed into, it travels on the
// follow-up body.
func (o *orchestrator) followUpPayload(w domain.WorkingCopy) api.FollowUpPayload {
	observation := w.FollowUpObservation
	if domain.IsBlank(observation) && o.session.Role != domain.RoleEntity {
		observation = w.PlanObservation
	}
	return api.FollowUpPayload{
		ReportDate:  api.Nullable(w.ReportDate),
		Activities:  api.Nullable(w.ActivitiesPerformed),
		Evidence:    api.Nullable(w.EvidenceFile),
		Status:      w.Status.Wire(),
		Observation: api.Nullable(observation),
		Indicator:   api.Nullable(w.Indicator),
		UpdatedBy:   api.Nullable(o.session.ActorEmail),
	}
}

// EnsurePlanExists guarantees the working copy is backed by a persisted
// plan, creating one exactly once. Repeat calls while a creation is
// outstanding fail with ErrSaveInFlight instead of racing a duplicate.
func (o *orchestrator) EnsurePlanExists(ctx context.Context) (int64, error) {
	if o.activePlanID != 0 {
		return o.activePlanID, nil
	}
	if domain.IsBlank(o.form.EntityName) {
		return 0, ErrMissingEntityName
	}

	const key = "plan:new"
	if err := o.acquire(key); err != nil {
		return 0, err
	}
	defer o.release(key)

	created, err := o.gw.CreatePlan(ctx, planPayload(o.form))
	if err != nil {
		if api.IsConflict(err) {
			// Another session may have claimed the indicator.
			o.refreshUsedIndicators(ctx)
		}
		return 0, err
	}
	if !o.alive(ctx) {
		// The record exists server-side; the next Load picks it up.
		return created.ID, ctx.Err()
	}

	o.cache.Upsert(created)
	o.activePlanID = created.ID
	o.form.PlanID = created.ID
	o.form.State = created.State
	if !domain.IsBlank(created.Indicator) {
		o.tracker.MarkUsed(created.Indicator)
	}
	return created.ID, nil
}

// SaveCurrent persists the working copy: it validates, ensures the plan
// row exists, then decides between updating the selected follow-up,
// repairing a server-created empty one, or creating a fresh record.
// Overrides are applied through the same permission gate as interactive
// edits before anything is sent.
func (o *orchestrator) SaveCurrent(ctx context.Context, overrides map[domain.Field]string) (*domain.FollowUp, error) {
	for f, v := range overrides {
		if err := o.UpdateField(f, v); err != nil {
			return nil, err
		}
	}

	if domain.IsBlank(o.form.EntityName) {
		return nil, ErrMissingEntityName
	}
	if o.requiresFullValidation() {
		if missing := o.form.MissingPlanFields(); len(missing) > 0 {
			return nil, &ValidationError{Missing: missing}
		}
	}

	planID, err := o.EnsurePlanExists(ctx)
	if err != nil {
		return nil, err
	}

	targetID := o.form.FollowUpID
	if targetID == 0 {
		if repairable := o.autoCreatedFollowUp(planID); repairable != nil {
			targetID = repairable.ID
		}
	}

	key := fmt.Sprintf("followup:%d:%d", planID, targetID)
	if err := o.acquire(key); err != nil {
		return nil, err
	}
	defer o.release(key)

	payload := o.followUpPayload(o.form)

	var saved *domain.FollowUp
	if targetID != 0 {
		saved, err = o.gw.UpdateFollowUp(ctx, planID, targetID, payload)
	} else {
		saved, err = o.gw.CreateFollowUp(ctx, planID, payload)
	}
	if err != nil {
		if api.IsConflict(err) {
			o.refreshUsedIndicators(ctx)
		}
		return nil, err
	}
	if !o.alive(ctx) {
		return saved, ctx.Err()
	}

	saved.UpdatedByActor = o.session.ActorEmail
	o.cache.UpsertFollowUp(saved)
	o.activeFollowUpID = saved.ID
	o.form.FollowUpID = saved.ID
	o.form.Status = saved.Status
	if !domain.IsBlank(o.form.PlanObservation) && o.session.Role != domain.RoleEntity {
		if p := o.cache.Get(planID); p != nil {
			p.QualityObservation = o.form.PlanObservation
		}
	}
	if !domain.IsBlank(o.form.Indicator) {
		o.tracker.MarkUsed(o.form.Indicator)
	}
	return saved, nil
}

// AddFollowUp creates a fresh pending follow-up under the active plan and
// selects it. The record is persisted immediately so concurrent sessions
// see it; content arrives with later saves.
func (o *orchestrator) AddFollowUp(ctx context.Context) (*domain.FollowUp, error) {
	plan := o.cache.Get(o.activePlanID)
	if plan == nil {
		return nil, ErrNoActivePlan
	}
	if !o.FollowUpsVisible() {
		return nil, errors.New("plan is not enabled for follow-up")
	}
	if !permission.CanEdit(domain.FieldReportDate, o.editContext()) &&
		o.session.Role != domain.RoleAdministrator {
		return nil, fmt.Errorf("%w: follow-ups", ErrFieldReadOnly)
	}

	key := fmt.Sprintf("followup:%d:0", plan.ID)
	if err := o.acquire(key); err != nil {
		return nil, err
	}
	defer o.release(key)

	payload := api.FollowUpPayload{
		Status:    domain.FollowUpPending.Wire(),
		Indicator: api.Nullable(plan.Indicator),
		UpdatedBy: api.Nullable(o.session.ActorEmail),
	}
	created, err := o.gw.CreateFollowUp(ctx, plan.ID, payload)
	if err != nil {
		return nil, err
	}
	if !o.alive(ctx) {
		return created, ctx.Err()
	}

	created.UpdatedByActor = o.session.ActorEmail
	o.cache.UpsertFollowUp(created)
	o.rehydrate(plan, created)
	return created, nil
}

// requiresFullValidation reports whether the all-fields-required rule
// applies: it binds while the plan block is still being authored, never
// to evaluator reviews of an already submitted plan.
func (o *orchestrator) requiresFullValidation() bool {
	if o.session.Role == domain.RoleEvaluator {
		return false
	}
	plan := o.cache.Get(o.activePlanID)
	return plan == nil || plan.State == domain.PlanDraft
}

// autoCreatedFollowUp finds the empty record some backends create
// alongside a plan, so saves repair it instead of duplicating it.
func (o *orchestrator) autoCreatedFollowUp(planID int64) *domain.FollowUp {
	plan := o.cache.Get(planID)
	if plan == nil {
		return nil
	}
	for _, fu := range plan.FollowUps {
		if fu.LooksAutoCreated() {
			return fu
		}
	}
	return nil
}
