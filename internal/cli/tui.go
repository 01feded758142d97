package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/slotforge/slotforge/pkg/track"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LayoutListModel - Interactive layout selection
// =============================================================================

// LayoutListModel is the bubbletea model for picking one layout out of a
// result set before rendering.
type LayoutListModel struct {
	Layouts  []track.Sequence
	Cursor   int
	Selected *track.Sequence
	Height   int
	Offset   int
}

// NewLayoutListModel creates a new layout list model.
func NewLayoutListModel(layouts []track.Sequence) LayoutListModel {
	return LayoutListModel{
		Layouts: layouts,
		Height:  15,
	}
}

func (m LayoutListModel) Init() tea.Cmd {
	return nil
}

func (m LayoutListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layouts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			seq := m.Layouts[m.Cursor]
			m.Selected = &seq
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m LayoutListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Layouts) {
		end = len(m.Layouts)
	}

	for i := m.Offset; i < end; i++ {
		seq := m.Layouts[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		counts := fmt.Sprintf("R%d L%d S%d",
			seq.Count(track.Right), seq.Count(track.Left), seq.Count(track.Straight))
		line := fmt.Sprintf("%s%-24s  %s", cursor, seq, listDimStyle.Render(counts))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layouts))))

	return b.String()
}

// pickLayout runs the interactive picker and returns the chosen layout.
// The second return value reports whether anything was selected.
func pickLayout(layouts []track.Sequence) (track.Sequence, bool, error) {
	if len(layouts) == 1 {
		return layouts[0], true, nil
	}

	p := tea.NewProgram(NewLayoutListModel(layouts))
	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("interactive selection: %w", err)
	}

	m, ok := final.(LayoutListModel)
	if !ok || m.Selected == nil {
		return "", false, nil
	}
	return *m.Selected, true, nil
}
