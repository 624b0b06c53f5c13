// Package lifecycle governs the legal transitions of a plan's state and a
// follow-up's status, and which role may trigger each one. Checks run
// entirely client-side so an unauthorized attempt never costs a network
// round-trip.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

var (
	// ErrNotAuthorized indicates the acting role may not trigger the
	// transition.
	ErrNotAuthorized = errors.New("role not authorized for transition")

	// ErrInvalidTransition indicates the transition is not defined from
	// the current state.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrIncompletePlan indicates required plan fields are still blank.
	ErrIncompletePlan = errors.New("plan has missing required fields")
)

// PlanAction is a named transition on a plan.
type PlanAction string

const (
	ActionSubmit  PlanAction = "submit"
	ActionApprove PlanAction = "approve"
	ActionReject  PlanAction = "reject"
)

type planRule struct {
	from  domain.PlanState
	to    domain.PlanState
	roles map[domain.Role]bool
}

var planRules = map[PlanAction]planRule{
	ActionSubmit: {
		from: domain.PlanDraft,
		to:   domain.PlanPending,
		roles: map[domain.Role]bool{
			domain.RoleEntity:        true,
			domain.RoleAdministrator: true,
		},
	},
	ActionApprove: {
		from: domain.PlanPending,
		to:   domain.PlanEnabled,
		roles: map[domain.Role]bool{
			domain.RoleEvaluator:     true,
			domain.RoleAdministrator: true,
		},
	},
	ActionReject: {
		from: domain.PlanPending,
		to:   domain.PlanReturned,
		roles: map[domain.Role]bool{
			domain.RoleEvaluator:     true,
			domain.RoleAdministrator: true,
		},
	},
}

// PlanTransition returns the state a plan moves to when role performs
// action from the current state. There is deliberately no transition out
// of ReturnedForAdjustment: a rejected plan stays terminal for entity
// edits and the entity raises a new sibling plan instead.
func PlanTransition(current domain.PlanState, action PlanAction, role domain.Role) (domain.PlanState, error) {
	rule, ok := planRules[action]
	if !ok {
		return current, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
	if current != rule.from {
		return current, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, current)
	}
	if !rule.roles[role] {
		return current, fmt.Errorf("%w: %s may not %s", ErrNotAuthorized, role, action)
	}
	return rule.to, nil
}

// DecisionFor maps an evaluate action to the decision it records.
func DecisionFor(action PlanAction) domain.EvaluatorDecision {
	switch action {
	case ActionApprove:
		return domain.DecisionApproved
	case ActionReject:
		return domain.DecisionRejected
	}
	return domain.DecisionUnset
}

// FollowUpTransition validates moving a follow-up to next. Advancement is
// an edit of the status field, so authorization defers to the permission
// resolver; this only checks the shape of the move itself.
func FollowUpTransition(current, next domain.FollowUpStatus) error {
	if current == next {
		return nil
	}
	if current == domain.FollowUpFinalized {
		return fmt.Errorf("%w: finalized follow-up is terminal", ErrInvalidTransition)
	}
	switch next {
	case domain.FollowUpPending, domain.FollowUpInProgress, domain.FollowUpFinalized:
		return nil
	}
	return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
}

// FollowUpsVisible reports whether the follow-up section exists for the
// operator at all. Drafts never show follow-ups, even if the backend
// eagerly created one; the section opens once the plan is approved for
// follow-up.
func FollowUpsVisible(p *domain.Plan) bool {
	if p == nil || !p.Persisted() {
		return false
	}
	if p.State == domain.PlanDraft {
		return false
	}
	return p.Decision == domain.DecisionApproved || p.State == domain.PlanEnabled
}
