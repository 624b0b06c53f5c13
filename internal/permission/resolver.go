// Package permission holds the single source of truth for field
// editability. Every form, command, and orchestrator write path asks
// CanEdit; no role/state boolean is recomputed anywhere else.
package permission

import "github.com/nedo8680/plan-accion-cli/internal/domain"

// EditContext describes the state a field is being edited under. It is a
// plain value: CanEdit is pure and total over it.
type EditContext struct {
	Role      domain.Role
	PlanState domain.PlanState

	// FollowUpStatus applies to follow-up level fields. Plan-level
	// checks ignore it.
	FollowUpStatus domain.FollowUpStatus

	// HasQualityObservation is true once an evaluator attached a
	// non-empty observation to the selected follow-up.
	HasQualityObservation bool

	// FinalizeLocked is true once any follow-up of the plan reached
	// Finalized. It forces every answer to false for non-administrators.
	FinalizeLocked bool
}

// ContextFor derives the EditContext for a plan and the selected
// follow-up (nil when none is selected).
func ContextFor(role domain.Role, plan *domain.Plan, fu *domain.FollowUp) EditContext {
	ctx := EditContext{
		Role:           role,
		PlanState:      domain.PlanDraft,
		FollowUpStatus: domain.FollowUpPending,
	}
	if plan != nil {
		ctx.PlanState = plan.State
		ctx.FinalizeLocked = plan.FinalizeLocked()
	}
	if fu != nil {
		ctx.FollowUpStatus = fu.Status
		ctx.HasQualityObservation = fu.Reviewed()
	}
	return ctx
}

// CanEdit reports whether the given field may be edited under ctx.
func CanEdit(field domain.Field, ctx EditContext) bool {
	isAdmin := ctx.Role == domain.RoleAdministrator
	isEntity := ctx.Role == domain.RoleEntity
	isEvaluator := ctx.Role == domain.RoleEvaluator

	// The finalize lock overrides every other rule for non-admins.
	if ctx.FinalizeLocked && !isAdmin {
		return false
	}

	switch field {
	case domain.FieldEntityName, domain.FieldEntityContact,
		domain.FieldIndicator, domain.FieldImprovementInput,
		domain.FieldActionType, domain.FieldRecommendedAction,
		domain.FieldProposedAction, domain.FieldActivitiesDescription,
		domain.FieldComplianceEvidence, domain.FieldStartDate,
		domain.FieldEndDate:
		return (isEntity || isAdmin) && ctx.PlanState == domain.PlanDraft

	case domain.FieldPlanObservation:
		// Evaluators annotate only submitted plans. Unknown backend
		// states stay read-only for evaluators.
		if isAdmin {
			return ctx.PlanState != domain.PlanDraft
		}
		if isEvaluator {
			switch ctx.PlanState {
			case domain.PlanPending, domain.PlanEnabled, domain.PlanReturned:
				return true
			}
		}
		return false

	case domain.FieldReportDate, domain.FieldActivitiesPerformed,
		domain.FieldEvidenceFile:
		if !isEntity && !isAdmin {
			return false
		}
		if ctx.FollowUpStatus != domain.FollowUpPending {
			return false
		}
		// A reviewed follow-up is returned: the entity must raise a new
		// adjustment report instead of amending this one.
		if isEntity && ctx.HasQualityObservation {
			return false
		}
		return true

	case domain.FieldFollowUpStatus:
		if isAdmin {
			return true
		}
		if isEvaluator {
			return !ctx.HasQualityObservation &&
				ctx.FollowUpStatus != domain.FollowUpFinalized
		}
		return false

	case domain.FieldFollowUpObservation:
		if isAdmin {
			return true
		}
		// Evaluators write the observation once; the first non-empty
		// write locks it.
		return isEvaluator && !ctx.HasQualityObservation
	}

	return false
}
