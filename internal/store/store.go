// Package store is the in-memory cache of plans and their follow-ups as
// last reconciled with the backend. The orchestrator is its only writer;
// sidebar and timeline views are pure projections over it.
package store

import (
	"sort"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

// Order is the sidebar sort direction over creation time.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Store caches plans keyed by backend identity.
type Store struct {
	plans []*domain.Plan
	byID  map[int64]*domain.Plan
	order Order
}

// New returns an empty store with the default (newest first) ordering.
func New() *Store {
	return &Store{
		byID:  make(map[int64]*domain.Plan),
		order: OrderDesc,
	}
}

// ReplaceAll swaps the cache for a fresh backend listing.
func (s *Store) ReplaceAll(plans []*domain.Plan) {
	s.plans = s.plans[:0]
	s.byID = make(map[int64]*domain.Plan, len(plans))
	for _, p := range plans {
		s.plans = append(s.plans, p)
		s.byID[p.ID] = p
	}
}

// Upsert merges a canonical server record into the cache. New plans are
// prepended, matching the original's newest-first insertion.
func (s *Store) Upsert(p *domain.Plan) {
	if existing, ok := s.byID[p.ID]; ok {
		*existing = *p
		s.byID[p.ID] = existing
		return
	}
	s.plans = append([]*domain.Plan{p}, s.plans...)
	s.byID[p.ID] = p
}

// Get returns the cached plan, or nil.
func (s *Store) Get(id int64) *domain.Plan {
	return s.byID[id]
}

// Remove strikes a plan and, by composition, all its follow-ups. Callers
// invoke this only after the backend confirmed the delete.
func (s *Store) Remove(id int64) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	out := s.plans[:0]
	for _, p := range s.plans {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.plans = out
}

// SetFollowUps replaces the children of a cached plan.
func (s *Store) SetFollowUps(planID int64, fus []*domain.FollowUp) {
	if p := s.byID[planID]; p != nil {
		p.FollowUps = fus
	}
}

// UpsertFollowUp merges a canonical follow-up record into its plan.
func (s *Store) UpsertFollowUp(fu *domain.FollowUp) {
	p := s.byID[fu.PlanID]
	if p == nil {
		return
	}
	for i, existing := range p.FollowUps {
		if existing.ID == fu.ID {
			p.FollowUps[i] = fu
			return
		}
	}
	p.FollowUps = append(p.FollowUps, fu)
}

// RemoveFollowUp strikes one follow-up after a confirmed delete.
func (s *Store) RemoveFollowUp(planID, id int64) {
	p := s.byID[planID]
	if p == nil {
		return
	}
	out := p.FollowUps[:0]
	for _, fu := range p.FollowUps {
		if fu.ID != id {
			out = append(out, fu)
		}
	}
	p.FollowUps = out
}

// SetOrder sets the sidebar sort direction.
func (s *Store) SetOrder(o Order) { s.order = o }

// ToggleOrder flips the sidebar sort direction and returns the new one.
func (s *Store) ToggleOrder() Order {
	if s.order == OrderAsc {
		s.order = OrderDesc
	} else {
		s.order = OrderAsc
	}
	return s.order
}

// timestampOf orders plans by creation time, falling back to the first
// follow-up's timestamp and finally the backend identity.
func timestampOf(p *domain.Plan) int64 {
	if p.CreatedAt != nil {
		return p.CreatedAt.UnixNano()
	}
	if len(p.FollowUps) > 0 && p.FollowUps[0].CreatedAt != nil {
		return p.FollowUps[0].CreatedAt.UnixNano()
	}
	return p.ID
}

// Sorted returns the plans in the configured sidebar order.
func (s *Store) Sorted() []*domain.Plan {
	out := make([]*domain.Plan, len(s.plans))
	copy(out, s.plans)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := timestampOf(out[i]), timestampOf(out[j])
		if s.order == OrderAsc {
			return a < b
		}
		return a > b
	})
	return out
}

// Row is one sidebar line.
type Row struct {
	Index      int
	PlanID     int64
	PlanNumber string
	EntityName string
	Indicator  string
	StartDate  string
	State      domain.PlanState
	FollowUps  int
}

// Rows projects the sorted plans into sidebar rows.
func (s *Store) Rows() []Row {
	sorted := s.Sorted()
	rows := make([]Row, 0, len(sorted))
	for i, p := range sorted {
		rows = append(rows, Row{
			Index:      i + 1,
			PlanID:     p.ID,
			PlanNumber: p.PlanNumber,
			EntityName: p.EntityName,
			Indicator:  p.Indicator,
			StartDate:  p.StartDate,
			State:      p.State,
			FollowUps:  len(p.FollowUps),
		})
	}
	return rows
}

// Timeline returns the follow-ups of a plan in chronological order.
func (s *Store) Timeline(planID int64) []*domain.FollowUp {
	p := s.byID[planID]
	if p == nil {
		return nil
	}
	out := make([]*domain.FollowUp, len(p.FollowUps))
	copy(out, p.FollowUps)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.CreatedAt != nil && b.CreatedAt != nil:
			return a.CreatedAt.Before(*b.CreatedAt)
		case a.CreatedAt != nil:
			return true
		case b.CreatedAt != nil:
			return false
		}
		return a.ID < b.ID
	})
	return out
}

// PreviousActions lists the distinct non-blank proposed actions across
// all cached plans, for suggestion lists.
func (s *Store) PreviousActions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.plans {
		if domain.IsBlank(p.ProposedAction) || seen[p.ProposedAction] {
			continue
		}
		seen[p.ProposedAction] = true
		out = append(out, p.ProposedAction)
	}
	return out
}
