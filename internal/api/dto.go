package api

import (
	"strings"
	"time"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

// The backend speaks the original Spanish field vocabulary. It is
// translated to the domain model exactly once, here.

type planDTO struct {
	ID            int64         `json:"id"`
	PlanNumber    *string       `json:"num_plan_mejora"`
	EntityName    string        `json:"nombre_entidad"`
	EntityContact *string       `json:"enlace_entidad"`
	State         *string       `json:"estado"`
	Indicator     *string       `json:"indicador"`
	Input         *string       `json:"insumo_mejora"`
	ActionType    *string       `json:"tipo_accion_mejora"`
	Recommended   *string       `json:"observacion_informe_calidad"`
	Proposed      *string       `json:"accion_mejora_planteada"`
	Activities    *string       `json:"descripcion_actividades"`
	Evidence      *string       `json:"evidencia_cumplimiento"`
	StartDate     *string       `json:"fecha_inicio"`
	EndDate       *string       `json:"fecha_final"`
	Observation   *string       `json:"observacion_calidad"`
	Decision      *string       `json:"decision_evaluador"`
	CreatedBy     int64         `json:"created_by"`
	CreatedAt     *string       `json:"created_at"`
	FollowUps     []followUpDTO `json:"seguimientos"`
}

type followUpDTO struct {
	ID          int64   `json:"id"`
	PlanID      int64   `json:"plan_id"`
	ReportDate  *string `json:"fecha_reporte"`
	Activities  *string `json:"descripcion_actividades"`
	Evidence    *string `json:"evidencia_cumplimiento"`
	Status      *string `json:"seguimiento"`
	Observation *string `json:"observacion_calidad"`
	CreatedAt   *string `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

// PlanPayload is the outbound body for plan creation. Blank fields are
// transmitted as explicit nulls, never as empty strings, so the server
// can tell "cleared" from "untouched".
type PlanPayload struct {
	EntityName    string  `json:"nombre_entidad"`
	EntityContact *string `json:"enlace_entidad"`
	Indicator     *string `json:"indicador"`
	Input         *string `json:"insumo_mejora"`
	ActionType    *string `json:"tipo_accion_mejora"`
	Recommended   *string `json:"observacion_informe_calidad"`
	Proposed      *string `json:"accion_mejora_planteada"`
	Activities    *string `json:"descripcion_actividades"`
	Evidence      *string `json:"evidencia_cumplimiento"`
	StartDate     *string `json:"fecha_inicio"`
	EndDate       *string `json:"fecha_final"`
}

// FollowUpPayload is the outbound body for follow-up create/update.
type FollowUpPayload struct {
	ReportDate  *string `json:"fecha_reporte"`
	Activities  *string `json:"descripcion_actividades"`
	Evidence    *string `json:"evidencia_cumplimiento"`
	Status      string  `json:"seguimiento"`
	Observation *string `json:"observacion_calidad,omitempty"`
	Indicator   *string `json:"indicador"`

	// UpdatedBy is stamped client-side from the session identity so the
	// audit trail survives backends that do not infer it from the token.
	UpdatedBy *string `json:"updated_by_email,omitempty"`
}

// CandidateRow is one row of the external indicator feed used to prefill
// blank working-copy fields and to pick default indicators.
type CandidateRow struct {
	Entity    string `json:"entidad"`
	Indicator string `json:"indicador"`
	Action    string `json:"accion"`
}

// Nullable normalizes a possibly-blank string for transmission: nil when
// it carries no information.
func Nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}

func (d planDTO) toDomain() *domain.Plan {
	p := &domain.Plan{
		ID:                    d.ID,
		PlanNumber:            deref(d.PlanNumber),
		EntityName:            d.EntityName,
		EntityContact:         deref(d.EntityContact),
		Indicator:             deref(d.Indicator),
		ImprovementInput:      deref(d.Input),
		ActionType:            deref(d.ActionType),
		RecommendedAction:     deref(d.Recommended),
		ProposedAction:        deref(d.Proposed),
		ActivitiesDescription: deref(d.Activities),
		ComplianceEvidence:    deref(d.Evidence),
		StartDate:             deref(d.StartDate),
		EndDate:               deref(d.EndDate),
		QualityObservation:    deref(d.Observation),
		RawState:              deref(d.State),
		State:                 domain.ParsePlanState(deref(d.State)),
		CreatedBy:             d.CreatedBy,
		CreatedAt:             parseTime(d.CreatedAt),
	}
	switch deref(d.Decision) {
	case "Aprobado":
		p.Decision = domain.DecisionApproved
	case "Rechazado":
		p.Decision = domain.DecisionRejected
	}
	// An enabled state token implies approval even when the decision
	// field is omitted by older backends.
	if p.State == domain.PlanEnabled {
		p.Decision = domain.DecisionApproved
	}
	for _, f := range d.FollowUps {
		fu := f.toDomain()
		fu.PlanID = d.ID
		p.FollowUps = append(p.FollowUps, fu)
	}
	return p
}

func (d followUpDTO) toDomain() *domain.FollowUp {
	return &domain.FollowUp{
		ID:                  d.ID,
		PlanID:              d.PlanID,
		ReportDate:          deref(d.ReportDate),
		ActivitiesPerformed: deref(d.Activities),
		EvidenceFile:        deref(d.Evidence),
		Status:              domain.ParseFollowUpStatus(deref(d.Status)),
		QualityObservation:  deref(d.Observation),
		CreatedAt:           parseTime(d.CreatedAt),
		UpdatedAt:           parseTime(d.UpdatedAt),
	}
}
