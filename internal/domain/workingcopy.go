package domain

// WorkingCopy is the unified edit form: the plan block and the currently
// selected follow-up flattened into one editable record. It is owned by
// the active selection controller; nothing else mutates it.
type WorkingCopy struct {
	PlanID     int64 // zero while the plan is unsaved
	FollowUpID int64 // zero while no follow-up is selected

	EntityName    string
	EntityContact string
	Indicator     string

	ImprovementInput      string
	ActionType            string
	RecommendedAction     string
	ProposedAction        string
	ActivitiesDescription string
	ComplianceEvidence    string
	StartDate             string
	EndDate               string

	State           PlanState
	PlanObservation string

	ReportDate          string
	ActivitiesPerformed string
	EvidenceFile        string
	Status              FollowUpStatus
	FollowUpObservation string
}

// EmptyWorkingCopy returns a fresh draft form.
func EmptyWorkingCopy() WorkingCopy {
	return WorkingCopy{
		State:  PlanDraft,
		Status: FollowUpPending,
	}
}

// Get returns the value of a form field.
func (w *WorkingCopy) Get(f Field) string {
	switch f {
	case FieldEntityName:
		return w.EntityName
	case FieldEntityContact:
		return w.EntityContact
	case FieldIndicator:
		return w.Indicator
	case FieldImprovementInput:
		return w.ImprovementInput
	case FieldActionType:
		return w.ActionType
	case FieldRecommendedAction:
		return w.RecommendedAction
	case FieldProposedAction:
		return w.ProposedAction
	case FieldActivitiesDescription:
		return w.ActivitiesDescription
	case FieldComplianceEvidence:
		return w.ComplianceEvidence
	case FieldStartDate:
		return w.StartDate
	case FieldEndDate:
		return w.EndDate
	case FieldPlanObservation:
		return w.PlanObservation
	case FieldReportDate:
		return w.ReportDate
	case FieldActivitiesPerformed:
		return w.ActivitiesPerformed
	case FieldEvidenceFile:
		return w.EvidenceFile
	case FieldFollowUpStatus:
		return string(w.Status)
	case FieldFollowUpObservation:
		return w.FollowUpObservation
	}
	return ""
}

// Set assigns the value of a form field. FieldFollowUpStatus expects one
// of the FollowUpStatus constants.
func (w *WorkingCopy) Set(f Field, v string) {
	switch f {
	case FieldEntityName:
		w.EntityName = v
	case FieldEntityContact:
		w.EntityContact = v
	case FieldIndicator:
		w.Indicator = v
	case FieldImprovementInput:
		w.ImprovementInput = v
	case FieldActionType:
		w.ActionType = v
	case FieldRecommendedAction:
		w.RecommendedAction = v
	case FieldProposedAction:
		w.ProposedAction = v
	case FieldActivitiesDescription:
		w.ActivitiesDescription = v
	case FieldComplianceEvidence:
		w.ComplianceEvidence = v
	case FieldStartDate:
		w.StartDate = v
	case FieldEndDate:
		w.EndDate = v
	case FieldPlanObservation:
		w.PlanObservation = v
	case FieldReportDate:
		w.ReportDate = v
	case FieldActivitiesPerformed:
		w.ActivitiesPerformed = v
	case FieldEvidenceFile:
		w.EvidenceFile = v
	case FieldFollowUpStatus:
		w.Status = FollowUpStatus(v)
	case FieldFollowUpObservation:
		w.FollowUpObservation = v
	}
}

// MissingPlanFields returns the required plan fields that are still blank.
// The caller decides whether validation applies (drafts and unsaved plans).
func (w *WorkingCopy) MissingPlanFields() []Field {
	var missing []Field
	for _, f := range RequiredFields {
		if IsBlank(w.Get(f)) {
			missing = append(missing, f)
		}
	}
	return missing
}

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
