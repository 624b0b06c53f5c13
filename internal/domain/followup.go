package domain

import "time"

// FollowUp is a periodic progress report against a plan.
type FollowUp struct {
	ID     int64
	PlanID int64

	ReportDate          string // YYYY-MM-DD
	ActivitiesPerformed string
	EvidenceFile        string // reference/URL to the uploaded evidence
	Status              FollowUpStatus

	// QualityObservation is the evaluator's review note. Once non-empty
	// the record counts as returned and the entity can no longer edit it.
	QualityObservation string

	// UpdatedByActor is stamped client-side from the session identity;
	// the backend does not return it. Display provenance only.
	UpdatedByActor string

	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// Reviewed reports whether an evaluator already attached an observation.
func (f *FollowUp) Reviewed() bool {
	return f != nil && !IsBlank(f.QualityObservation)
}

// LooksAutoCreated reports whether this record is indistinguishable from
// the empty follow-up some backends create eagerly alongside a plan: still
// Pending, never reviewed, and with every content field blank. SaveCurrent
// repairs such a record in place instead of creating a duplicate.
func (f *FollowUp) LooksAutoCreated() bool {
	if f == nil || f.ID == 0 {
		return false
	}
	return f.Status == FollowUpPending &&
		IsBlank(f.ReportDate) &&
		IsBlank(f.ActivitiesPerformed) &&
		IsBlank(f.EvidenceFile) &&
		IsBlank(f.QualityObservation)
}
