package domain

import (
	"strings"
	"time"
)

// Plan is an improvement-action proposal tied to one quality indicator.
// Identity is assigned by the backend; ID is zero while unsaved.
type Plan struct {
	ID         int64
	PlanNumber string

	EntityName    string
	EntityContact string

	Indicator string

	ImprovementInput      string
	ActionType            string
	RecommendedAction     string
	ProposedAction        string
	ActivitiesDescription string
	ComplianceEvidence    string
	StartDate             string // YYYY-MM-DD
	EndDate               string // YYYY-MM-DD

	State    PlanState
	RawState string // backend token as received, kept for diagnostics
	Decision EvaluatorDecision

	// QualityObservation is written by evaluators/administrators and is
	// read-only for the owning entity.
	QualityObservation string

	CreatedBy int64
	CreatedAt *time.Time

	// FollowUps is a composition: they never outlive the plan.
	FollowUps []*FollowUp
}

// Persisted reports whether the backend has assigned an identity.
func (p *Plan) Persisted() bool {
	return p != nil && p.ID != 0
}

// FinalizeLocked reports whether any follow-up has been finalized, which
// makes the whole plan read-only for non-administrators.
func (p *Plan) FinalizeLocked() bool {
	if p == nil {
		return false
	}
	for _, f := range p.FollowUps {
		if f.Status == FollowUpFinalized {
			return true
		}
	}
	return false
}

// FollowUpByID returns the child with the given id, or nil.
func (p *Plan) FollowUpByID(id int64) *FollowUp {
	for _, f := range p.FollowUps {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// RequiredFields lists the plan-level fields that must be non-blank
// before the first submission. EntityName is checked separately because
// it is required before any persistence at all.
var RequiredFields = []Field{
	FieldEntityContact,
	FieldIndicator,
	FieldImprovementInput,
	FieldActionType,
	FieldRecommendedAction,
	FieldProposedAction,
	FieldActivitiesDescription,
	FieldComplianceEvidence,
	FieldStartDate,
	FieldEndDate,
}

// IsBlank reports whether a field value carries no information.
func IsBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
