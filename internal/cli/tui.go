package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/rootfront/pkg/pareto"
	"github.com/matzehuels/rootfront/pkg/report"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FrontBrowser - Interactive Pareto front table
// =============================================================================

// FrontBrowser is the bubbletea model behind "front --browse". It scrolls
// through the front and marks the point nearest the observed tree.
type FrontBrowser struct {
	Title  string
	Front  pareto.Front2D
	Mark   int
	Factor float64
	Unit   string

	Cursor int
	Height int
	Offset int
}

// NewFrontBrowser creates a browser positioned on the marked point.
func NewFrontBrowser(title string, front pareto.Front2D, mark int, factor float64, unit string) FrontBrowser {
	m := FrontBrowser{
		Title:  title,
		Front:  front,
		Mark:   mark,
		Factor: factor,
		Unit:   unit,
		Height: 15,
	}
	if mark >= 0 && mark < len(front) {
		m.Cursor = mark
		m.Offset = max(0, mark-m.Height/2)
	}
	return m
}

func (m FrontBrowser) Init() tea.Cmd {
	return nil
}

func (m FrontBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Front))
		case "end", "G":
			m.move(len(m.Front))
		case "m":
			if m.Mark >= 0 {
				m.move(m.Mark - m.Cursor)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-10)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the front, and scrolls to keep
// it visible.
func (m *FrontBrowser) move(delta int) {
	if len(m.Front) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Front)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// markLabel tags the row nearest the observed tree.
const markLabel = "◂ observed"

// visibleRows returns the table cells of the scrolled-in part of the front.
// The last column carries [markLabel] on the marked row and is empty
// elsewhere.
func (m FrontBrowser) visibleRows() [][]string {
	end := min(m.Offset+m.Height, len(m.Front))
	rows := make([][]string, 0, max(0, end-m.Offset))
	for i := m.Offset; i < end; i++ {
		p := m.Front[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := ""
		if i == m.Mark {
			marker = markLabel
		}
		rows = append(rows, []string{
			cursor,
			strconv.FormatFloat(p.Alpha, 'f', 3, 64),
			strconv.FormatFloat(p.Cost.Length*m.Factor, 'f', 2, 64),
			strconv.FormatFloat(p.Cost.Distance*m.Factor, 'f', 2, 64),
			marker,
		})
	}
	return rows
}

func (m FrontBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pareto front · " + m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  m jump to mark  q quit"))
	b.WriteString("\n\n")

	rows := m.visibleRows()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "alpha", report.Header("length", m.Unit), report.Header("distance", m.Unit), "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case idx == m.Mark:
				return StyleSuccess
			default:
				return StyleValue
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Front))))
	return b.String()
}
