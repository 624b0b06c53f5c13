package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalizeLocked(t *testing.T) {
	p := &Plan{ID: 1, FollowUps: []*FollowUp{
		{ID: 10, Status: FollowUpPending},
		{ID: 11, Status: FollowUpInProgress},
	}}
	assert.False(t, p.FinalizeLocked())

	p.FollowUps[1].Status = FollowUpFinalized
	assert.True(t, p.FinalizeLocked())

	var nilPlan *Plan
	assert.False(t, nilPlan.FinalizeLocked())
}

func TestLooksAutoCreated(t *testing.T) {
	empty := &FollowUp{ID: 5, Status: FollowUpPending}
	assert.True(t, empty.LooksAutoCreated())

	// Whitespace-only content still counts as empty.
	empty.ReportDate = "   "
	assert.True(t, empty.LooksAutoCreated())

	// Any real content disqualifies it.
	withContent := &FollowUp{ID: 6, Status: FollowUpPending, ActivitiesPerformed: "algo"}
	assert.False(t, withContent.LooksAutoCreated())

	// A reviewed record is never repaired in place.
	reviewed := &FollowUp{ID: 7, Status: FollowUpPending, QualityObservation: "revisar"}
	assert.False(t, reviewed.LooksAutoCreated())

	// Unsaved records are created, not repaired.
	unsaved := &FollowUp{ID: 0, Status: FollowUpPending}
	assert.False(t, unsaved.LooksAutoCreated())

	advanced := &FollowUp{ID: 8, Status: FollowUpInProgress}
	assert.False(t, advanced.LooksAutoCreated())
}

func TestMissingPlanFields(t *testing.T) {
	w := EmptyWorkingCopy()
	w.EntityName = "Alcaldía"
	missing := w.MissingPlanFields()
	assert.Len(t, missing, len(RequiredFields))

	for _, f := range RequiredFields {
		w.Set(f, "x")
	}
	assert.Empty(t, w.MissingPlanFields())

	// Whitespace does not satisfy a required field.
	w.Set(FieldIndicator, "   ")
	missing = w.MissingPlanFields()
	assert.Equal(t, []Field{FieldIndicator}, missing)
}
