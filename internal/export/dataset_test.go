package export

import (
	"testing"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_OneRowPerFollowUp(t *testing.T) {
	plan := testutil.NewTestPlan("Alcaldía", testutil.WithState(domain.PlanEnabled))
	first := testutil.NewTestFollowUp(plan.ID, testutil.WithObservation("Falta el acta"))
	second := testutil.NewTestFollowUp(plan.ID, testutil.WithStatus(domain.FollowUpFinalized))
	second.UpdatedByActor = "auditor@calidad.gov.co"

	d := Build("Planes de mejora", []Record{{Plan: plan, FollowUps: []*domain.FollowUp{first, second}}})

	assert.Equal(t, "Planes de mejora", d.Title)
	require.Len(t, d.Rows, 2)
	for _, r := range d.Rows {
		require.Len(t, r, len(Headers))
	}

	assert.Equal(t, "Alcaldía", d.Rows[0][1])
	assert.Equal(t, domain.PlanEnabled.Wire(), d.Rows[0][3])
	assert.Equal(t, first.ReportDate, d.Rows[0][11])
	assert.Equal(t, "Falta el acta", d.Rows[0][13])

	assert.Equal(t, domain.FollowUpFinalized.Wire(), d.Rows[1][12])
	assert.Equal(t, "auditor@calidad.gov.co", d.Rows[1][14])
}

func TestBuild_PlanWithoutFollowUpsStillExports(t *testing.T) {
	plan := testutil.NewTestPlan("Gobernación")
	plan.QualityObservation = "Revisar la redacción"

	d := Build("Planes", []Record{{Plan: plan}})

	require.Len(t, d.Rows, 1)
	r := d.Rows[0]
	require.Len(t, r, len(Headers))
	assert.Equal(t, "Gobernación", r[1])
	// Follow-up columns stay blank; the plan-level observation carries over.
	assert.Empty(t, r[11])
	assert.Empty(t, r[12])
	assert.Equal(t, "Revisar la redacción", r[13])
}

func TestBuild_FollowUpObservationFallsBackToPlan(t *testing.T) {
	plan := testutil.NewTestPlan("Alcaldía")
	plan.QualityObservation = "Observación del plan"
	fu := testutil.NewTestFollowUp(plan.ID)

	d := Build("Planes", []Record{{Plan: plan, FollowUps: []*domain.FollowUp{fu}}})
	require.Len(t, d.Rows, 1)
	assert.Equal(t, "Observación del plan", d.Rows[0][13])
}

func TestTitleFor(t *testing.T) {
	named := testutil.NewTestPlan("Alcaldía")
	assert.Contains(t, TitleFor(named), "Alcaldía")

	anon := testutil.NewTestPlan("")
	anon.ID = 12
	assert.Equal(t, "Plan 12", TitleFor(anon))
}
