package service

import (
	"context"

	"github.com/nedo8680/plan-accion-cli/internal/api"
	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/splitter"
)

// SplitAdvice reports whether the proposed-action text looks like it
// holds several distinct actions, and what those segments are. Advisory
// only; nothing blocks a save that ignores it.
func (o *orchestrator) SplitAdvice() (bool, []string) {
	isDraft := o.form.State == domain.PlanDraft
	text := o.form.ProposedAction
	return splitter.ShouldAdvise(text, isDraft), splitter.Split(text)
}

// CreateSiblings splits the proposed action: the current working copy
// keeps the first segment and every remaining segment becomes its own
// plan sharing the entity and indicator context. Creation is per-item;
// earlier successes stand even when a later one fails, and each failure
// is reported so the operator can retry just those.
func (o *orchestrator) CreateSiblings(ctx context.Context) (*SplitResult, error) {
	keep, siblings := splitter.SiblingSeeds(o.form.ProposedAction)
	result := &SplitResult{Kept: keep}
	if len(siblings) == 0 {
		return result, nil
	}

	seed := o.form
	seed.ProposedAction = keep
	o.form.ProposedAction = keep
	// The cached projection of the current plan must show the truncated
	// text too, or the next rehydrate restores the combined action.
	if p := o.cache.Get(o.activePlanID); p != nil {
		p.ProposedAction = keep
	}

	for _, action := range siblings {
		payload := planPayload(seed)
		payload.Proposed = &action

		created, err := o.gw.CreatePlan(ctx, payload)
		if err != nil {
			if api.IsConflict(err) {
				o.refreshUsedIndicators(ctx)
			}
			result.Failures = append(result.Failures, SplitFailure{Action: action, Err: err})
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if !o.alive(ctx) {
			return result, ctx.Err()
		}
		o.cache.Upsert(created)
		result.Created = append(result.Created, created)
	}

	if !domain.IsBlank(seed.Indicator) && len(result.Created) > 0 {
		o.tracker.MarkUsed(seed.Indicator)
	}
	return result, nil
}
