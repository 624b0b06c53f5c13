package repository

import (
	"context"
	"testing"
	"time"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	older := testutil.NewTestPlan("Gobernación",
		testutil.WithCreatedAt(time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)))
	newer := testutil.NewTestPlan("Alcaldía",
		testutil.WithState(domain.PlanEnabled),
		testutil.WithDecision(domain.DecisionApproved),
		testutil.WithCreatedAt(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)),
		testutil.WithFollowUps(
			testutil.NewTestFollowUp(0, testutil.WithObservation("Falta evidencia")),
			testutil.NewTestFollowUp(0, testutil.WithStatus(domain.FollowUpFinalized)),
		))
	syncedAt := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Replace(ctx, []*domain.Plan{older, newer}, syncedAt))

	plans, err := repo.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	// Newest first, matching the live sidebar default.
	got := plans[0]
	assert.Equal(t, newer.ID, got.ID)
	assert.Equal(t, "Alcaldía", got.EntityName)
	assert.Equal(t, domain.PlanEnabled, got.State)
	assert.Equal(t, domain.PlanEnabled.Wire(), got.RawState)
	assert.Equal(t, domain.DecisionApproved, got.Decision)
	require.NotNil(t, got.CreatedAt)
	assert.True(t, got.CreatedAt.Equal(*newer.CreatedAt))

	require.Len(t, got.FollowUps, 2)
	assert.Equal(t, "Falta evidencia", got.FollowUps[0].QualityObservation)
	assert.Equal(t, domain.FollowUpFinalized, got.FollowUps[1].Status)
	assert.Equal(t, newer.ID, got.FollowUps[0].PlanID)

	assert.Equal(t, "Gobernación", plans[1].EntityName)
	assert.Empty(t, plans[1].FollowUps)
}

func TestSnapshotReplaceDropsPreviousRows(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := testutil.NewTestPlan("Primera",
		testutil.WithFollowUps(testutil.NewTestFollowUp(0)))
	require.NoError(t, repo.Replace(ctx, []*domain.Plan{first}, time.Now()))

	second := testutil.NewTestPlan("Segunda")
	require.NoError(t, repo.Replace(ctx, []*domain.Plan{second}, time.Now()))

	plans, err := repo.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Segunda", plans[0].EntityName)
	// The FK cascade removed the orphaned follow-up with its plan.
	assert.Empty(t, plans[0].FollowUps)
}

func TestSnapshotSyncedAt(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	// No sync yet.
	got, err := repo.SyncedAt(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	first := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Replace(ctx, nil, first))
	got, err = repo.SyncedAt(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(first))

	// A later sync overwrites the single meta row.
	second := first.Add(2 * time.Hour)
	require.NoError(t, repo.Replace(ctx, nil, second))
	got, err = repo.SyncedAt(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(second))
}
