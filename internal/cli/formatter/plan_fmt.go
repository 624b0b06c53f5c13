package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/store"
)

// FormatPlanList renders the sidebar rows as a table.
func FormatPlanList(rows []store.Row) string {
	headers := []string{"#", "ID", "Entidad", "Indicador", "Inicio", "Estado", "Seg."}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			fmt.Sprintf("%d", r.Index),
			fmt.Sprintf("%d", r.PlanID),
			Truncate(r.EntityName, 28),
			Truncate(r.Indicator, 24),
			r.StartDate,
			StateBadge(r.State),
			fmt.Sprintf("%d", r.FollowUps),
		})
	}
	return RenderTable(headers, out)
}

// FormatPlanDetail renders one plan with all its fields labeled.
func FormatPlanDetail(p *domain.Plan) string {
	var b strings.Builder
	title := fmt.Sprintf("Plan %d", p.ID)
	if !domain.IsBlank(p.PlanNumber) {
		title = fmt.Sprintf("Plan %s (#%d)", p.PlanNumber, p.ID)
	}
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(p.EntityName), StateBadge(p.State)))

	pairs := []struct{ label, value string }{
		{"Enlace", p.EntityContact},
		{"Indicador", p.Indicator},
		{"Insumo de mejora", p.ImprovementInput},
		{"Tipo de acción", p.ActionType},
		{"Acción recomendada", p.RecommendedAction},
		{"Acción planteada", p.ProposedAction},
		{"Actividades", p.ActivitiesDescription},
		{"Evidencia", p.ComplianceEvidence},
		{"Fecha inicio", p.StartDate},
		{"Fecha final", p.EndDate},
		{"Observación de calidad", p.QualityObservation},
	}
	for _, kv := range pairs {
		value := kv.value
		if domain.IsBlank(value) {
			value = Dim("—")
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim(kv.label+":"), value))
	}

	switch p.Decision {
	case domain.DecisionApproved:
		b.WriteString("\n  " + StyleGreen.Render("Aprobado por el evaluador") + "\n")
	case domain.DecisionRejected:
		b.WriteString("\n  " + StyleRed.Render("Rechazado por el evaluador") + "\n")
	}
	return b.String()
}

// FormatTimeline renders a plan's follow-ups chronologically.
func FormatTimeline(fus []*domain.FollowUp) string {
	if len(fus) == 0 {
		return Dim("Sin seguimientos registrados.")
	}
	var b strings.Builder
	b.WriteString(Header("Seguimientos"))
	b.WriteString("\n")
	for i, fu := range fus {
		date := fu.ReportDate
		if domain.IsBlank(date) && fu.CreatedAt != nil {
			date = fu.CreatedAt.Format("2006-01-02")
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			Dim(fmt.Sprintf("%d.", i+1)), Bold(domain.CoalesceStr(date, "sin fecha")), StatusBadge(fu.Status)))
		if !domain.IsBlank(fu.ActivitiesPerformed) {
			b.WriteString("   " + fu.ActivitiesPerformed + "\n")
		}
		if !domain.IsBlank(fu.EvidenceFile) {
			b.WriteString("   " + Dim("Evidencia: ") + fu.EvidenceFile + "\n")
		}
		if fu.Reviewed() {
			b.WriteString("   " + StylePurple.Render("Observación: "+fu.QualityObservation) + "\n")
		}
		if !domain.IsBlank(fu.UpdatedByActor) {
			b.WriteString("   " + Dim("Actualizado por "+fu.UpdatedByActor) + "\n")
		}
	}
	return b.String()
}

// FormatIndicators renders the used-indicator set with availability marks
// against an optional candidate list.
func FormatIndicators(used []string, candidates []string) string {
	var b strings.Builder
	b.WriteString(Header("Indicadores"))
	b.WriteString("\n")
	if len(candidates) == 0 {
		if len(used) == 0 {
			return b.String() + Dim("Ninguno en uso.")
		}
		for _, u := range used {
			b.WriteString("  " + StyleYellow.Render("● ") + u + Dim("  (en uso)") + "\n")
		}
		return b.String()
	}

	inUse := make(map[string]bool, len(used))
	for _, u := range used {
		inUse[u] = true
	}
	for _, c := range candidates {
		if inUse[c] {
			b.WriteString("  " + StyleYellow.Render("● ") + c + Dim("  (en uso)") + "\n")
		} else {
			b.WriteString("  " + StyleGreen.Render("● ") + c + "\n")
		}
	}
	return b.String()
}

// FormatSyncInfo renders when the offline snapshot was last refreshed.
func FormatSyncInfo(syncedAt *time.Time) string {
	if syncedAt == nil {
		return Dim("Snapshot sin sincronizar.")
	}
	return Dim("Snapshot del " + syncedAt.Local().Format("2006-01-02 15:04"))
}

// Truncate shortens s to max runes, with an ellipsis when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
