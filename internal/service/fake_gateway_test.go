package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/nedo8680/plan-accion-cli/internal/api"
	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

// fakeGateway is an in-memory Gateway with per-call error injection and
// call counting, standing in for the backend in orchestrator tests.
type fakeGateway struct {
	nextID    atomic.Int64
	plans     map[int64]*domain.Plan
	followUps map[int64][]*domain.FollowUp
	used      []string

	createPlanCalls     int
	createFollowUpCalls int
	updateFollowUpCalls int
	listFollowUpCalls   int

	failCreatePlanFor map[string]error // keyed by proposed action
	createPlanErr     error
	setStateErr       error
	deletePlanErr     error
	deleteFollowUpErr error
	usedErr           error
}

func newFakeGateway() *fakeGateway {
	g := &fakeGateway{
		plans:     make(map[int64]*domain.Plan),
		followUps: make(map[int64][]*domain.FollowUp),
	}
	g.nextID.Store(100)
	return g
}

func (g *fakeGateway) seedPlan(p *domain.Plan) {
	g.plans[p.ID] = p
	g.followUps[p.ID] = p.FollowUps
}

func (g *fakeGateway) ListPlans(ctx context.Context) ([]*domain.Plan, error) {
	out := make([]*domain.Plan, 0, len(g.plans))
	for _, p := range g.plans {
		cp := *p
		// Hand out a fresh slice per response, like the real backend does.
		cp.FollowUps = append([]*domain.FollowUp(nil), g.followUps[p.ID]...)
		out = append(out, &cp)
	}
	return out, nil
}

func (g *fakeGateway) CreatePlan(ctx context.Context, p api.PlanPayload) (*domain.Plan, error) {
	g.createPlanCalls++
	if g.createPlanErr != nil {
		return nil, g.createPlanErr
	}
	if g.failCreatePlanFor != nil && p.Proposed != nil {
		if err, ok := g.failCreatePlanFor[*p.Proposed]; ok {
			return nil, err
		}
	}
	id := g.nextID.Add(1)
	plan := &domain.Plan{
		ID:         id,
		EntityName: p.EntityName,
		State:      domain.PlanDraft,
		RawState:   domain.PlanDraft.Wire(),
	}
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&plan.EntityContact, p.EntityContact)
	assign(&plan.Indicator, p.Indicator)
	assign(&plan.ImprovementInput, p.Input)
	assign(&plan.ActionType, p.ActionType)
	assign(&plan.RecommendedAction, p.Recommended)
	assign(&plan.ProposedAction, p.Proposed)
	assign(&plan.ActivitiesDescription, p.Activities)
	assign(&plan.ComplianceEvidence, p.Evidence)
	assign(&plan.StartDate, p.StartDate)
	assign(&plan.EndDate, p.EndDate)
	g.plans[id] = plan
	return plan, nil
}

func (g *fakeGateway) SetPlanState(ctx context.Context, planID int64, stateToken string) (*domain.Plan, error) {
	if g.setStateErr != nil {
		return nil, g.setStateErr
	}
	p, ok := g.plans[planID]
	if !ok {
		return nil, &api.CallError{Status: 404, Message: "plan no existe"}
	}
	p.RawState = stateToken
	p.State = domain.ParsePlanState(stateToken)
	// State responses are sparse: no embedded follow-ups.
	cp := *p
	cp.FollowUps = nil
	return &cp, nil
}

func (g *fakeGateway) DeletePlan(ctx context.Context, planID int64) error {
	if g.deletePlanErr != nil {
		return g.deletePlanErr
	}
	delete(g.plans, planID)
	delete(g.followUps, planID)
	return nil
}

func (g *fakeGateway) ListFollowUps(ctx context.Context, planID int64) ([]*domain.FollowUp, error) {
	g.listFollowUpCalls++
	return append([]*domain.FollowUp(nil), g.followUps[planID]...), nil
}

func (g *fakeGateway) CreateFollowUp(ctx context.Context, planID int64, f api.FollowUpPayload) (*domain.FollowUp, error) {
	g.createFollowUpCalls++
	fu := g.materialize(planID, g.nextID.Add(1), f)
	g.followUps[planID] = append(g.followUps[planID], fu)
	return fu, nil
}

func (g *fakeGateway) UpdateFollowUp(ctx context.Context, planID, id int64, f api.FollowUpPayload) (*domain.FollowUp, error) {
	g.updateFollowUpCalls++
	for i, existing := range g.followUps[planID] {
		if existing.ID == id {
			fu := g.materialize(planID, id, f)
			g.followUps[planID][i] = fu
			return fu, nil
		}
	}
	return nil, fmt.Errorf("follow-up %d not found", id)
}

func (g *fakeGateway) materialize(planID, id int64, f api.FollowUpPayload) *domain.FollowUp {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return &domain.FollowUp{
		ID:                  id,
		PlanID:              planID,
		ReportDate:          deref(f.ReportDate),
		ActivitiesPerformed: deref(f.Activities),
		EvidenceFile:        deref(f.Evidence),
		Status:              domain.ParseFollowUpStatus(f.Status),
		QualityObservation:  deref(f.Observation),
	}
}

func (g *fakeGateway) DeleteFollowUp(ctx context.Context, planID, id int64) error {
	if g.deleteFollowUpErr != nil {
		return g.deleteFollowUpErr
	}
	out := make([]*domain.FollowUp, 0, len(g.followUps[planID]))
	for _, fu := range g.followUps[planID] {
		if fu.ID != id {
			out = append(out, fu)
		}
	}
	g.followUps[planID] = out
	return nil
}

func (g *fakeGateway) UsedIndicators(ctx context.Context) ([]string, error) {
	if g.usedErr != nil {
		return nil, g.usedErr
	}
	return g.used, nil
}

func (g *fakeGateway) CandidateIndicators(ctx context.Context, entityName string) ([]api.CandidateRow, error) {
	return []api.CandidateRow{
		{Entity: entityName, Indicator: "IND-7", Action: "Revisar proceso"},
		{Entity: entityName, Indicator: "IND-8", Action: "Actualizar manual"},
	}, nil
}
