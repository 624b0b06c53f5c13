package service

import (
	"context"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

// RemoveFollowUp deletes a follow-up pessimistically: local state only
// changes after the backend confirms. If the removed record was the one
// on the form, the selection falls back to the last remaining sibling.
func (o *orchestrator) RemoveFollowUp(ctx context.Context, id int64) error {
	plan := o.cache.Get(o.activePlanID)
	if plan == nil {
		return ErrNoActivePlan
	}
	fu := plan.FollowUpByID(id)
	if fu == nil {
		return fmt.Errorf("follow-up %d does not belong to plan %d", id, plan.ID)
	}
	if fu.Status == domain.FollowUpFinalized && o.session.Role != domain.RoleAdministrator {
		return fmt.Errorf("%w: finalized follow-up", ErrFieldReadOnly)
	}

	key := fmt.Sprintf("followup:%d:%d", plan.ID, id)
	if err := o.acquire(key); err != nil {
		return err
	}
	defer o.release(key)

	if err := o.gw.DeleteFollowUp(ctx, plan.ID, id); err != nil {
		return err
	}
	if !o.alive(ctx) {
		return ctx.Err()
	}

	o.cache.RemoveFollowUp(plan.ID, id)
	if o.activeFollowUpID == id {
		o.rehydrate(plan, lastFollowUp(plan))
	}
	o.refreshUsedIndicators(ctx)
	return nil
}

// RemovePlan deletes a plan and, by cascade, its follow-ups. Deletion is
// pessimistic; on failure the cache and selection are untouched.
func (o *orchestrator) RemovePlan(ctx context.Context, id int64) error {
	plan := o.cache.Get(id)
	if plan == nil {
		return fmt.Errorf("plan %d is not in the local store", id)
	}
	if plan.FinalizeLocked() && o.session.Role != domain.RoleAdministrator {
		return fmt.Errorf("%w: plan has a finalized follow-up", ErrFieldReadOnly)
	}

	key := fmt.Sprintf("plan:%d", id)
	if err := o.acquire(key); err != nil {
		return err
	}
	defer o.release(key)

	if err := o.gw.DeletePlan(ctx, id); err != nil {
		return err
	}
	if !o.alive(ctx) {
		return ctx.Err()
	}

	o.cache.Remove(id)
	if o.activePlanID == id {
		o.StartNew()
	}
	o.refreshUsedIndicators(ctx)
	return nil
}

// refreshUsedIndicators re-fetches the dedup set after a delete or a
// duplicate-indicator rejection. The
// optimistic local set can only over-claim, so a failed refresh keeps the
// stale (safe) view until the next Load.
func (o *orchestrator) refreshUsedIndicators(ctx context.Context) {
	used, err := o.gw.UsedIndicators(ctx)
	if err != nil || !o.alive(ctx) {
		return
	}
	o.tracker.Replace(used)
}

func lastFollowUp(p *domain.Plan) *domain.FollowUp {
	if p == nil || len(p.FollowUps) == 0 {
		return nil
	}
	return p.FollowUps[len(p.FollowUps)-1]
}
