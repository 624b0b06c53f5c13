// Package export flattens plans and their follow-ups into a tabular
// dataset and renders it to XLSX or CSV.
package export

import (
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

// Headers is the column order of the exported dataset. The vocabulary
// matches the report the entities already know.
var Headers = []string{
	"ID",
	"Entidad",
	"Enlace",
	"Estado",
	"Insumo de mejora",
	"Tipo de acción",
	"Acción de mejora planteada",
	"Descripción de actividades",
	"Evidencia de cumplimiento",
	"Fecha inicio",
	"Fecha final",
	"Fecha reporte",
	"Seguimiento",
	"Observación de calidad",
	"Actualizado por",
}

// Dataset is one renderable export: a title plus rows under Headers.
type Dataset struct {
	Title string
	Rows  [][]string
}

// Record pairs a plan with the follow-ups to flatten under it.
type Record struct {
	Plan      *domain.Plan
	FollowUps []*domain.FollowUp
}

// Build flattens the records into rows: one row per follow-up, and a
// single plan-only row when a plan has none yet.
func Build(title string, records []Record) *Dataset {
	d := &Dataset{Title: title}
	for _, rec := range records {
		if len(rec.FollowUps) == 0 {
			d.Rows = append(d.Rows, row(rec.Plan, nil))
			continue
		}
		for _, fu := range rec.FollowUps {
			d.Rows = append(d.Rows, row(rec.Plan, fu))
		}
	}
	return d
}

// TitleFor names a single-plan export.
func TitleFor(p *domain.Plan) string {
	if domain.IsBlank(p.EntityName) {
		return fmt.Sprintf("Plan %d", p.ID)
	}
	return fmt.Sprintf("Plan %d - %s", p.ID, p.EntityName)
}

func row(p *domain.Plan, fu *domain.FollowUp) []string {
	r := []string{
		fmt.Sprintf("%d", p.ID),
		p.EntityName,
		p.EntityContact,
		domain.CoalesceStr(p.RawState, p.State.Wire()),
		p.ImprovementInput,
		p.ActionType,
		p.ProposedAction,
		p.ActivitiesDescription,
		p.ComplianceEvidence,
		p.StartDate,
		p.EndDate,
	}
	if fu == nil {
		return append(r, "", "", p.QualityObservation, "")
	}
	return append(r,
		fu.ReportDate,
		fu.Status.Wire(),
		domain.CoalesceStr(fu.QualityObservation, p.QualityObservation),
		fu.UpdatedByActor,
	)
}
