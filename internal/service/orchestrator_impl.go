package service

import (
	"context"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/api"
	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/indicator"
	"github.com/nedo8680/plan-accion-cli/internal/lifecycle"
	"github.com/nedo8680/plan-accion-cli/internal/permission"
	"github.com/nedo8680/plan-accion-cli/internal/store"
)

type orchestrator struct {
	gw      api.Gateway
	cache   *store.Store
	tracker *indicator.Tracker
	session Session

	// Active selection: which plan and which of its follow-ups the
	// unified form currently edits.
	activePlanID     int64
	activeFollowUpID int64
	form             domain.WorkingCopy

	// inFlight serializes writes per record identity so a second save on
	// the same plan/follow-up cannot interleave with an outstanding one.
	inFlight map[string]bool

	// closed guards against applying late responses after teardown.
	closed bool
}

// NewOrchestrator wires the lifecycle orchestrator.
func NewOrchestrator(gw api.Gateway, session Session) Orchestrator {
	return &orchestrator{
		gw:       gw,
		cache:    store.New(),
		tracker:  indicator.NewTracker(),
		session:  session,
		form:     domain.EmptyWorkingCopy(),
		inFlight: make(map[string]bool),
	}
}

func (o *orchestrator) Close() { o.closed = true }

// alive reports whether a completed call's result may still be applied.
func (o *orchestrator) alive(ctx context.Context) bool {
	return !o.closed && ctx.Err() == nil
}

func (o *orchestrator) Load(ctx context.Context) error {
	plans, err := o.gw.ListPlans(ctx)
	if err != nil {
		return err
	}
	if !o.alive(ctx) {
		return ctx.Err()
	}
	o.cache.ReplaceAll(plans)

	used, err := o.gw.UsedIndicators(ctx)
	if err != nil {
		// The listing is still usable without the dedup set; the
		// tracker just stays conservative until the next refresh.
		return nil
	}
	if o.alive(ctx) {
		o.tracker.Replace(used)
	}
	return nil
}

func (o *orchestrator) Store() *store.Store { return o.cache }

func (o *orchestrator) ActivePlanID() int64     { return o.activePlanID }
func (o *orchestrator) ActiveFollowUpID() int64 { return o.activeFollowUpID }

func (o *orchestrator) Current() domain.WorkingCopy { return o.form }

func (o *orchestrator) UsedIndicators() []string { return o.tracker.Used() }

// Candidates fetches the external indicator feed for an entity.
func (o *orchestrator) Candidates(ctx context.Context, entityName string) ([]api.CandidateRow, error) {
	return o.gw.CandidateIndicators(ctx, entityName)
}

// SetActive switches the selection to a cached plan and rehydrates the
// unified form from it and its first follow-up.
func (o *orchestrator) SetActive(ctx context.Context, planID int64) error {
	plan := o.cache.Get(planID)
	if plan == nil {
		return fmt.Errorf("plan %d is not in the local store", planID)
	}

	if len(plan.FollowUps) == 0 {
		fus, err := o.gw.ListFollowUps(ctx, planID)
		if err != nil {
			return err
		}
		if !o.alive(ctx) {
			return ctx.Err()
		}
		o.cache.SetFollowUps(planID, fus)
	}

	o.activePlanID = planID
	o.activeFollowUpID = 0
	o.rehydrate(plan, firstFollowUp(plan))
	return nil
}

// SetActiveFollowUp switches the follow-up block of the form to another
// child of the active plan.
func (o *orchestrator) SetActiveFollowUp(id int64) error {
	plan := o.cache.Get(o.activePlanID)
	if plan == nil {
		return ErrNoActivePlan
	}
	fu := plan.FollowUpByID(id)
	if fu == nil {
		return fmt.Errorf("follow-up %d does not belong to plan %d", id, plan.ID)
	}
	o.rehydrate(plan, fu)
	return nil
}

// StartNew clears the selection for a brand-new draft.
func (o *orchestrator) StartNew() {
	o.activePlanID = 0
	o.activeFollowUpID = 0
	o.form = domain.EmptyWorkingCopy()
}

// ResetCurrent clears the form but keeps the entity context when a plan
// is selected.
func (o *orchestrator) ResetCurrent() {
	prev := o.form
	o.form = domain.EmptyWorkingCopy()
	o.activeFollowUpID = 0
	if o.activePlanID != 0 {
		o.form.PlanID = o.activePlanID
		o.form.EntityName = prev.EntityName
		o.form.EntityContact = prev.EntityContact
		o.form.State = prev.State
	}
}

// rehydrate rebuilds the working copy from a plan and an optional
// follow-up. Follow-up fields missing server-side inherit plan context.
func (o *orchestrator) rehydrate(plan *domain.Plan, fu *domain.FollowUp) {
	form := domain.EmptyWorkingCopy()
	form.PlanID = plan.ID
	form.EntityName = plan.EntityName
	form.EntityContact = plan.EntityContact
	form.Indicator = plan.Indicator
	form.ImprovementInput = plan.ImprovementInput
	form.ActionType = plan.ActionType
	form.RecommendedAction = plan.RecommendedAction
	form.ProposedAction = plan.ProposedAction
	form.ActivitiesDescription = plan.ActivitiesDescription
	form.ComplianceEvidence = plan.ComplianceEvidence
	form.StartDate = plan.StartDate
	form.EndDate = plan.EndDate
	form.State = plan.State
	form.PlanObservation = plan.QualityObservation

	if fu != nil && lifecycle.FollowUpsVisible(plan) {
		form.FollowUpID = fu.ID
		form.ReportDate = fu.ReportDate
		form.ActivitiesPerformed = fu.ActivitiesPerformed
		form.EvidenceFile = fu.EvidenceFile
		form.Status = fu.Status
		form.FollowUpObservation = fu.QualityObservation
		o.activeFollowUpID = fu.ID
	} else {
		o.activeFollowUpID = 0
	}
	o.form = form
}

// editContext derives the permission context for the active selection.
func (o *orchestrator) editContext() permission.EditContext {
	plan := o.cache.Get(o.activePlanID)
	var fu *domain.FollowUp
	if plan != nil {
		fu = plan.FollowUpByID(o.activeFollowUpID)
	}
	ctx := permission.ContextFor(o.session.Role, plan, fu)
	if plan == nil {
		// Unsaved working copies are drafts by definition.
		ctx.PlanState = domain.PlanDraft
	}
	return ctx
}

// UpdateField applies a local edit to the working copy, gated by the
// permission resolver. Rejected edits fail before touching anything.
func (o *orchestrator) UpdateField(f domain.Field, value string) error {
	if !permission.CanEdit(f, o.editContext()) {
		return fmt.Errorf("%w: %s", ErrFieldReadOnly, f.Label())
	}
	if f == domain.FieldFollowUpStatus {
		if err := lifecycle.FollowUpTransition(o.form.Status, domain.FollowUpStatus(value)); err != nil {
			return err
		}
	}
	o.form.Set(f, value)
	return nil
}

// EditableFields reports which form fields the current role may edit in
// the current state.
func (o *orchestrator) EditableFields() map[domain.Field]bool {
	ctx := o.editContext()
	out := make(map[domain.Field]bool, len(domain.AllFields))
	for _, f := range domain.AllFields {
		out[f] = permission.CanEdit(f, ctx)
	}
	return out
}

// FollowUpsVisible reports whether the follow-up block applies to the
// active selection.
func (o *orchestrator) FollowUpsVisible() bool {
	return lifecycle.FollowUpsVisible(o.cache.Get(o.activePlanID))
}

// ApplyPrefill fills blank working-copy fields from an imported record.
// Non-blank fields are never overwritten.
func (o *orchestrator) ApplyPrefill(p Prefill) {
	if domain.IsBlank(o.form.EntityName) && !domain.IsBlank(p.Entity) {
		o.form.EntityName = p.Entity
	}
	if domain.IsBlank(o.form.Indicator) && !domain.IsBlank(p.Indicator) {
		o.form.Indicator = p.Indicator
	}
	if domain.IsBlank(o.form.RecommendedAction) && !domain.IsBlank(p.Action) {
		o.form.RecommendedAction = p.Action
	}
}

// AutoSelectIndicator picks a default indicator for an unsaved plan from
// the candidate feed, skipping ones already claimed. Persisted plans keep
// their indicator untouched.
func (o *orchestrator) AutoSelectIndicator(candidates []api.CandidateRow) {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Indicator)
	}
	o.form.Indicator = o.tracker.DefaultFor(o.form.Indicator, o.form.PlanID != 0, names)
}

// LoadForExport fetches fresh follow-ups for every cached plan, applying
// the same plan-context inheritance the timeline uses.
func (o *orchestrator) LoadForExport(ctx context.Context) ([]PlanExport, error) {
	var out []PlanExport
	for _, plan := range o.cache.Sorted() {
		if plan.ID == 0 {
			continue
		}
		fus, err := o.gw.ListFollowUps(ctx, plan.ID)
		if err != nil {
			return nil, fmt.Errorf("loading follow-ups for plan %d: %w", plan.ID, err)
		}
		out = append(out, PlanExport{Plan: plan, FollowUps: fus})
	}
	return out, nil
}

func firstFollowUp(p *domain.Plan) *domain.FollowUp {
	if p == nil || len(p.FollowUps) == 0 {
		return nil
	}
	return p.FollowUps[0]
}

func (o *orchestrator) acquire(key string) error {
	if o.inFlight[key] {
		return ErrSaveInFlight
	}
	o.inFlight[key] = true
	return nil
}

func (o *orchestrator) release(key string) {
	delete(o.inFlight, key)
}
