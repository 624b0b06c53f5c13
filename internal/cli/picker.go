package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nedo8680/plan-accion-cli/internal/cli/formatter"
	"github.com/nedo8680/plan-accion-cli/internal/store"
)

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Order  key.Binding
	Quit   key.Binding
}

var pickerKeys = pickerKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Order:  key.NewBinding(key.WithKeys("o")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// pickerModel is a minimal list over sidebar rows: arrows move, enter
// selects, o flips the sort order, q cancels.
type pickerModel struct {
	store    *store.Store
	rows     []store.Row
	cursor   int
	selected int64
	aborted  bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, pickerKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, pickerKeys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, pickerKeys.Select):
		m.selected = m.rows[m.cursor].PlanID
		return m, tea.Quit
	case key.Matches(keyMsg, pickerKeys.Order):
		m.store.ToggleOrder()
		m.rows = m.store.Rows()
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
	case key.Matches(keyMsg, pickerKeys.Quit):
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := formatter.Header("Seleccione un plan") + "\n"
	for i, r := range m.rows {
		line := fmt.Sprintf("%4d  %-30s %s",
			r.PlanID, formatter.Truncate(r.EntityName, 30), formatter.StateBadge(r.State))
		if i == m.cursor {
			s += formatter.StyleHeader.Render("> ") + line + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}
	s += formatter.Dim("\n↑/↓ mover · enter seleccionar · o ordenar · q salir\n")
	return s
}

// pickPlan runs the interactive picker and returns the chosen plan ID.
func pickPlan(s *store.Store) (int64, error) {
	rows := s.Rows()
	if len(rows) == 0 {
		return 0, fmt.Errorf("no plans to choose from")
	}
	final, err := tea.NewProgram(pickerModel{store: s, rows: rows}).Run()
	if err != nil {
		return 0, fmt.Errorf("running plan picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok || m.aborted || m.selected == 0 {
		return 0, fmt.Errorf("no plan selected")
	}
	return m.selected, nil
}
