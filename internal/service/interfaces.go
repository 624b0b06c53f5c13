package service

import (
	"context"

	"github.com/nedo8680/plan-accion-cli/internal/api"
	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/lifecycle"
	"github.com/nedo8680/plan-accion-cli/internal/store"
)

// Session identifies who is driving the orchestrator.
type Session struct {
	Role       domain.Role
	ActorEmail string
}

// Prefill carries the optional fields a bulk-import or indicator feed may
// contribute. They fill blank working-copy fields and never overwrite a
// non-blank one.
type Prefill struct {
	Entity    string
	Indicator string
	Action    string
}

// SplitResult reports the outcome of sibling creation. Failures are
// per-item: earlier successes are never rolled back and the operator can
// retry the remainder.
type SplitResult struct {
	Kept     string
	Created  []*domain.Plan
	Failures []SplitFailure
}

// SplitFailure names the sibling action that could not be created.
type SplitFailure struct {
	Action string
	Err    error
}

// PlanExport pairs a plan with its freshly fetched follow-ups for the
// export dataset.
type PlanExport struct {
	Plan      *domain.Plan
	FollowUps []*domain.FollowUp
}

// Orchestrator is the plan/follow-up lifecycle coordinator: it owns the
// entity store and the active selection, gates edits through the
// permission resolver, and reconciles every mutation with the backend.
type Orchestrator interface {
	// Load fetches the plan listing and the used-indicator set.
	Load(ctx context.Context) error

	// Selection and working copy.
	SetActive(ctx context.Context, planID int64) error
	SetActiveFollowUp(id int64) error
	StartNew()
	ResetCurrent()
	Current() domain.WorkingCopy
	ActivePlanID() int64
	ActiveFollowUpID() int64
	UpdateField(f domain.Field, value string) error
	EditableFields() map[domain.Field]bool
	FollowUpsVisible() bool

	// Persistence.
	EnsurePlanExists(ctx context.Context) (int64, error)
	SaveCurrent(ctx context.Context, overrides map[domain.Field]string) (*domain.FollowUp, error)
	AddFollowUp(ctx context.Context) (*domain.FollowUp, error)
	RemoveFollowUp(ctx context.Context, id int64) error
	RemovePlan(ctx context.Context, id int64) error

	// Lifecycle.
	Submit(ctx context.Context) error
	Evaluate(ctx context.Context, action lifecycle.PlanAction) error

	// Action splitting.
	SplitAdvice() (advise bool, segments []string)
	CreateSiblings(ctx context.Context) (*SplitResult, error)

	// Indicators and prefill.
	UsedIndicators() []string
	Candidates(ctx context.Context, entityName string) ([]api.CandidateRow, error)
	ApplyPrefill(p Prefill)
	AutoSelectIndicator(candidates []api.CandidateRow)

	// Projections.
	Store() *store.Store
	LoadForExport(ctx context.Context) ([]PlanExport, error)

	// Close discards any in-flight results; a torn-down orchestrator
	// never applies late responses to stale state.
	Close()
}
