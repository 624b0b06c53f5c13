package store

import (
	"testing"
	"time"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UpsertPrependsNewPlans(t *testing.T) {
	s := New()
	first := testutil.NewTestPlan("Alcaldía A")
	second := testutil.NewTestPlan("Alcaldía B")

	s.Upsert(first)
	s.Upsert(second)

	require.Len(t, s.Rows(), 2)
	assert.Same(t, first, s.Get(first.ID))
	assert.Same(t, second, s.Get(second.ID))
}

func TestStore_UpsertMergesInPlace(t *testing.T) {
	s := New()
	p := testutil.NewTestPlan("Alcaldía")
	s.Upsert(p)

	updated := *p
	updated.State = domain.PlanPending
	s.Upsert(&updated)

	require.Len(t, s.Rows(), 1)
	assert.Equal(t, domain.PlanPending, s.Get(p.ID).State)
}

func TestStore_SortedByCreationTime(t *testing.T) {
	s := New()
	older := testutil.NewTestPlan("Vieja", testutil.WithCreatedAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	newer := testutil.NewTestPlan("Nueva", testutil.WithCreatedAt(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	s.ReplaceAll([]*domain.Plan{older, newer})

	// Default is newest first.
	sorted := s.Sorted()
	assert.Equal(t, "Nueva", sorted[0].EntityName)

	s.SetOrder(OrderAsc)
	sorted = s.Sorted()
	assert.Equal(t, "Vieja", sorted[0].EntityName)

	assert.Equal(t, OrderDesc, s.ToggleOrder())
}

func TestStore_SortFallsBackToFollowUpTimestamp(t *testing.T) {
	s := New()
	fuTime := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	noCreated := testutil.NewTestPlan("Sin fecha")
	noCreated.CreatedAt = nil
	noCreated.FollowUps = []*domain.FollowUp{{ID: testutil.NextID(), PlanID: noCreated.ID, CreatedAt: &fuTime}}
	withCreated := testutil.NewTestPlan("Con fecha", testutil.WithCreatedAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	s.ReplaceAll([]*domain.Plan{withCreated, noCreated})
	sorted := s.Sorted()
	assert.Equal(t, "Sin fecha", sorted[0].EntityName)
}

func TestStore_RemoveCascades(t *testing.T) {
	s := New()
	p := testutil.NewTestPlan("Alcaldía",
		testutil.WithFollowUps(testutil.NewTestFollowUp(0), testutil.NewTestFollowUp(0)))
	s.Upsert(p)

	s.Remove(p.ID)
	assert.Nil(t, s.Get(p.ID))
	assert.Empty(t, s.Rows())
	assert.Nil(t, s.Timeline(p.ID))
}

func TestStore_FollowUpLifecycle(t *testing.T) {
	s := New()
	p := testutil.NewTestPlan("Alcaldía")
	s.Upsert(p)

	fu := testutil.NewTestFollowUp(p.ID)
	s.UpsertFollowUp(fu)
	require.Len(t, s.Get(p.ID).FollowUps, 1)

	// Merging the same identity replaces, not appends.
	amended := *fu
	amended.Status = domain.FollowUpInProgress
	s.UpsertFollowUp(&amended)
	require.Len(t, s.Get(p.ID).FollowUps, 1)
	assert.Equal(t, domain.FollowUpInProgress, s.Get(p.ID).FollowUps[0].Status)

	s.RemoveFollowUp(p.ID, fu.ID)
	assert.Empty(t, s.Get(p.ID).FollowUps)
}

func TestStore_TimelineChronological(t *testing.T) {
	s := New()
	p := testutil.NewTestPlan("Alcaldía")
	s.Upsert(p)

	early := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	s.SetFollowUps(p.ID, []*domain.FollowUp{
		{ID: 2, PlanID: p.ID, CreatedAt: &late},
		{ID: 1, PlanID: p.ID, CreatedAt: &early},
		{ID: 3, PlanID: p.ID}, // no timestamp sorts last
	})

	timeline := s.Timeline(p.ID)
	require.Len(t, timeline, 3)
	assert.Equal(t, int64(1), timeline[0].ID)
	assert.Equal(t, int64(2), timeline[1].ID)
	assert.Equal(t, int64(3), timeline[2].ID)
}

func TestStore_PreviousActionsDeduplicated(t *testing.T) {
	s := New()
	a := testutil.NewTestPlan("A")
	a.ProposedAction = "Actualizar manual"
	b := testutil.NewTestPlan("B")
	b.ProposedAction = "Actualizar manual"
	c := testutil.NewTestPlan("C")
	c.ProposedAction = "Capacitar al personal"
	d := testutil.NewTestPlan("D")
	d.ProposedAction = "   "
	s.ReplaceAll([]*domain.Plan{a, b, c, d})

	assert.ElementsMatch(t, []string{"Actualizar manual", "Capacitar al personal"}, s.PreviousActions())
}
