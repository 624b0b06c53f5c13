package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StateBadge returns a colored badge for a plan state, in the backend's
// own vocabulary so operators recognize it from the web report.
func StateBadge(s domain.PlanState) string {
	switch s {
	case domain.PlanDraft:
		return StyleDim.Render("● Borrador")
	case domain.PlanPending:
		return StyleYellow.Render("● Pendiente")
	case domain.PlanEnabled:
		return StyleGreen.Render("● Habilitado seguimiento")
	case domain.PlanReturned:
		return StyleRed.Render("● Devuelto para ajuste")
	default:
		return StylePurple.Render("● Desconocido")
	}
}

// StatusBadge returns a colored badge for a follow-up status.
func StatusBadge(s domain.FollowUpStatus) string {
	switch s {
	case domain.FollowUpFinalized:
		return StyleGreen.Render("● Finalizado")
	case domain.FollowUpInProgress:
		return StyleBlue.Render("● En progreso")
	default:
		return StyleYellow.Render("● Pendiente")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
