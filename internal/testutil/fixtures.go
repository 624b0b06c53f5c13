package testutil

import (
	"sync/atomic"
	"time"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

var testIDCounter atomic.Int64

// NextID hands out unique positive identifiers within a test run.
func NextID() int64 {
	return testIDCounter.Add(1)
}

// Plan options
type PlanOption func(*domain.Plan)

func WithState(s domain.PlanState) PlanOption {
	return func(p *domain.Plan) {
		p.State = s
		p.RawState = s.Wire()
	}
}

func WithDecision(d domain.EvaluatorDecision) PlanOption {
	return func(p *domain.Plan) {
		p.Decision = d
	}
}

func WithIndicator(name string) PlanOption {
	return func(p *domain.Plan) {
		p.Indicator = name
	}
}

func WithCreatedAt(t time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.CreatedAt = &t
	}
}

func WithFollowUps(fus ...*domain.FollowUp) PlanOption {
	return func(p *domain.Plan) {
		for _, fu := range fus {
			fu.PlanID = p.ID
		}
		p.FollowUps = fus
	}
}

// NewTestPlan builds a persisted draft plan with every required field
// filled, so tests tweak only what they exercise.
func NewTestPlan(entity string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC()
	p := &domain.Plan{
		ID:                    NextID(),
		EntityName:            entity,
		EntityContact:         "enlace@" + entity + ".gov.co",
		Indicator:             "IND-1",
		ImprovementInput:      "Informe de auditoría",
		ActionType:            "Correctiva",
		RecommendedAction:     "Actualizar el procedimiento",
		ProposedAction:        "Revisar y publicar el procedimiento",
		ActivitiesDescription: "Mesa de trabajo mensual",
		ComplianceEvidence:    "Acta de reunión",
		StartDate:             "2026-01-15",
		EndDate:               "2026-06-30",
		State:                 domain.PlanDraft,
		RawState:              domain.PlanDraft.Wire(),
		CreatedAt:             &now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FollowUp options
type FollowUpOption func(*domain.FollowUp)

func WithStatus(s domain.FollowUpStatus) FollowUpOption {
	return func(f *domain.FollowUp) {
		f.Status = s
	}
}

func WithObservation(text string) FollowUpOption {
	return func(f *domain.FollowUp) {
		f.QualityObservation = text
	}
}

// Empty strips the content fields so the record matches the shape of a
// backend-created placeholder.
func Empty() FollowUpOption {
	return func(f *domain.FollowUp) {
		f.ReportDate = ""
		f.ActivitiesPerformed = ""
		f.EvidenceFile = ""
		f.QualityObservation = ""
		f.Status = domain.FollowUpPending
	}
}

// NewTestFollowUp builds a filled pending follow-up.
func NewTestFollowUp(planID int64, opts ...FollowUpOption) *domain.FollowUp {
	now := time.Now().UTC()
	f := &domain.FollowUp{
		ID:                  NextID(),
		PlanID:              planID,
		ReportDate:          "2026-02-15",
		ActivitiesPerformed: "Se realizó la mesa de trabajo",
		EvidenceFile:        "acta-febrero.pdf",
		Status:              domain.FollowUpPending,
		CreatedAt:           &now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}
