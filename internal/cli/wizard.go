package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/nedo8680/plan-accion-cli/internal/cli/formatter"
	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/service"
)

func planHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// fieldInput builds one form input for a plan/follow-up field, with date
// validation on the date fields. The proposed action offers the actions
// already used on other plans as suggestions.
func fieldInput(f domain.Field, value *string, previousActions []string) huh.Field {
	switch f {
	case domain.FieldStartDate, domain.FieldEndDate, domain.FieldReportDate:
		return huh.NewInput().
			Title(f.Label()).
			Placeholder("2026-06-30").
			Value(value).
			Validate(validateOptionalDate)
	case domain.FieldFollowUpStatus:
		return huh.NewSelect[string]().
			Title(f.Label()).
			Options(
				huh.NewOption("Pendiente", string(domain.FollowUpPending)),
				huh.NewOption("En progreso", string(domain.FollowUpInProgress)),
				huh.NewOption("Finalizado", string(domain.FollowUpFinalized)),
			).
			Value(value)
	case domain.FieldProposedAction:
		return huh.NewInput().
			Title(f.Label()).
			Suggestions(previousActions).
			Value(value)
	case domain.FieldActivitiesDescription,
		domain.FieldRecommendedAction, domain.FieldActivitiesPerformed,
		domain.FieldPlanObservation, domain.FieldFollowUpObservation:
		return huh.NewText().
			Title(f.Label()).
			Value(value)
	}
	return huh.NewInput().
		Title(f.Label()).
		Value(value)
}

// confirm shows a themed yes/no prompt.
func confirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(planHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// runEditForm shows the unified plan/follow-up form for every field the
// session may edit, then applies the changes to the working copy.
func runEditForm(orc service.Orchestrator, includeFollowUp bool) error {
	editable := orc.EditableFields()
	current := orc.Current()

	fields := append([]domain.Field{}, domain.PlanContentFields...)
	fields = append(fields, domain.FieldPlanObservation)
	if includeFollowUp {
		fields = append(fields, domain.FollowUpContentFields...)
		fields = append(fields, domain.FieldFollowUpStatus, domain.FieldFollowUpObservation)
	}

	previousActions := orc.Store().PreviousActions()

	values := make(map[domain.Field]*string)
	var inputs []huh.Field
	for _, f := range fields {
		if !editable[f] {
			continue
		}
		v := current.Get(f)
		values[f] = &v
		inputs = append(inputs, fieldInput(f, values[f], previousActions))
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no editable fields in the current state")
	}

	form := huh.NewForm(huh.NewGroup(inputs...)).
		WithTheme(planHuhTheme()).
		WithShowHelp(false)
	if err := form.Run(); err != nil {
		return err
	}

	for f, v := range values {
		if *v == current.Get(f) {
			continue
		}
		if err := orc.UpdateField(f, *v); err != nil {
			return err
		}
	}
	return nil
}
