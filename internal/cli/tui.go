package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/trussmesh/pkg/units"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// UnitListModel - Interactive export unit selection
// =============================================================================

// UnitListModel is the bubbletea model for picking the export unit.
type UnitListModel struct {
	Units    []units.Unit
	Cursor   int
	Selected *units.Unit
}

// NewUnitListModel creates a unit list with the cursor on inch.
func NewUnitListModel() UnitListModel {
	return UnitListModel{Units: units.All}
}

func (m UnitListModel) Init() tea.Cmd {
	return nil
}

func (m UnitListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Units)-1 {
				m.Cursor++
			}
		case "enter":
			u := m.Units[m.Cursor]
			m.Selected = &u
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m UnitListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Export Unit"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, u := range m.Units {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-6s %s", cursor, u.String(),
			listDimStyle.Render(fmt.Sprintf("x%g from inch", units.Factor(units.Inch, u))))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pickUnit runs the unit picker on the terminal.
func pickUnit() (units.Unit, error) {
	final, err := tea.NewProgram(NewUnitListModel()).Run()
	if err != nil {
		return 0, fmt.Errorf("unit picker: %w", err)
	}
	m, ok := final.(UnitListModel)
	if !ok || m.Selected == nil {
		return 0, fmt.Errorf("no unit selected")
	}
	return *m.Selected, nil
}
