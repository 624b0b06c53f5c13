package service

import (
	"context"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/lifecycle"
)

// Submit moves the active plan from draft to pending review. The
// transition is checked client-side first so an unauthorized or
// incomplete submission never reaches the network.
func (o *orchestrator) Submit(ctx context.Context) error {
	plan := o.cache.Get(o.activePlanID)
	if plan == nil {
		return ErrNoActivePlan
	}
	if _, err := lifecycle.PlanTransition(plan.State, lifecycle.ActionSubmit, o.session.Role); err != nil {
		return err
	}
	if missing := o.form.MissingPlanFields(); len(missing) > 0 {
		return fmt.Errorf("%w: %v", lifecycle.ErrIncompletePlan, (&ValidationError{Missing: missing}).Error())
	}
	return o.applyState(ctx, plan, domain.PlanPending)
}

// Evaluate records the evaluator's verdict: approve enables follow-up,
// reject returns the plan for adjustment.
func (o *orchestrator) Evaluate(ctx context.Context, action lifecycle.PlanAction) error {
	plan := o.cache.Get(o.activePlanID)
	if plan == nil {
		return ErrNoActivePlan
	}
	next, err := lifecycle.PlanTransition(plan.State, action, o.session.Role)
	if err != nil {
		return err
	}
	if err := o.applyState(ctx, plan, next); err != nil {
		return err
	}
	if p := o.cache.Get(plan.ID); p != nil {
		if d := lifecycle.DecisionFor(action); d != domain.DecisionUnset {
			p.Decision = d
		}
	}
	return nil
}

// applyState pushes the new state token and reconciles the canonical
// record the backend returns.
func (o *orchestrator) applyState(ctx context.Context, plan *domain.Plan, next domain.PlanState) error {
	key := fmt.Sprintf("plan:%d", plan.ID)
	if err := o.acquire(key); err != nil {
		return err
	}
	defer o.release(key)

	updated, err := o.gw.SetPlanState(ctx, plan.ID, next.Wire())
	if err != nil {
		return err
	}
	if !o.alive(ctx) {
		return ctx.Err()
	}

	// Some backends answer state changes with a sparse record. Keep the
	// cached children rather than dropping them.
	if len(updated.FollowUps) == 0 {
		updated.FollowUps = plan.FollowUps
	}
	o.cache.Upsert(updated)
	if o.activePlanID == updated.ID {
		o.form.State = updated.State
	}
	return nil
}
