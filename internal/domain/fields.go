package domain

// Field names every editable slot of the unified form. Permission checks
// and validation messages are keyed on these values so role/state logic
// is never duplicated per rendered field.
type Field string

const (
	// Plan level.
	FieldEntityName            Field = "entity_name"
	FieldEntityContact         Field = "entity_contact"
	FieldIndicator             Field = "indicator"
	FieldImprovementInput      Field = "improvement_input"
	FieldActionType            Field = "action_type"
	FieldRecommendedAction     Field = "recommended_action"
	FieldProposedAction        Field = "proposed_action"
	FieldActivitiesDescription Field = "activities_description"
	FieldComplianceEvidence    Field = "compliance_evidence"
	FieldStartDate             Field = "start_date"
	FieldEndDate               Field = "end_date"
	FieldPlanObservation       Field = "plan_quality_observation"

	// Follow-up level.
	FieldReportDate          Field = "report_date"
	FieldActivitiesPerformed Field = "activities_performed"
	FieldEvidenceFile        Field = "evidence_file"
	FieldFollowUpStatus      Field = "follow_up_status"
	FieldFollowUpObservation Field = "follow_up_quality_observation"
)

// PlanContentFields are the plan-level content fields editable only while
// the plan is a draft.
var PlanContentFields = []Field{
	FieldEntityName,
	FieldEntityContact,
	FieldIndicator,
	FieldImprovementInput,
	FieldActionType,
	FieldRecommendedAction,
	FieldProposedAction,
	FieldActivitiesDescription,
	FieldComplianceEvidence,
	FieldStartDate,
	FieldEndDate,
}

// FollowUpContentFields are the follow-up fields the reporting entity
// fills in each period.
var FollowUpContentFields = []Field{
	FieldReportDate,
	FieldActivitiesPerformed,
	FieldEvidenceFile,
}

// AllFields enumerates every field the resolver must be total over.
var AllFields = []Field{
	FieldEntityName,
	FieldEntityContact,
	FieldIndicator,
	FieldImprovementInput,
	FieldActionType,
	FieldRecommendedAction,
	FieldProposedAction,
	FieldActivitiesDescription,
	FieldComplianceEvidence,
	FieldStartDate,
	FieldEndDate,
	FieldPlanObservation,
	FieldReportDate,
	FieldActivitiesPerformed,
	FieldEvidenceFile,
	FieldFollowUpStatus,
	FieldFollowUpObservation,
}

// FieldLabels maps fields to the operator-facing labels used in
// validation messages and form titles.
var FieldLabels = map[Field]string{
	FieldEntityName:            "Nombre de la entidad",
	FieldEntityContact:         "Enlace de la entidad",
	FieldIndicator:             "Indicador",
	FieldImprovementInput:      "Insumo de mejora",
	FieldActionType:            "Tipo de acción de mejora",
	FieldRecommendedAction:     "Acción recomendada",
	FieldProposedAction:        "Acción de mejora planteada",
	FieldActivitiesDescription: "Descripción de las actividades",
	FieldComplianceEvidence:    "Evidencia de cumplimiento",
	FieldStartDate:             "Fecha inicio",
	FieldEndDate:               "Fecha final",
	FieldPlanObservation:       "Observación de calidad (plan)",
	FieldReportDate:            "Fecha de reporte",
	FieldActivitiesPerformed:   "Actividades realizadas",
	FieldEvidenceFile:          "Evidencia del seguimiento",
	FieldFollowUpStatus:        "Estado del seguimiento",
	FieldFollowUpObservation:   "Observación de calidad (seguimiento)",
}

// Label returns the operator-facing label, falling back to the raw name.
func (f Field) Label() string {
	if l, ok := FieldLabels[f]; ok {
		return l
	}
	return string(f)
}

// PlanLevel reports whether the field belongs to the plan block of the
// unified form.
func (f Field) PlanLevel() bool {
	switch f {
	case FieldReportDate, FieldActivitiesPerformed, FieldEvidenceFile,
		FieldFollowUpStatus, FieldFollowUpObservation:
		return false
	}
	return true
}
