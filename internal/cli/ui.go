package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/rootfront/pkg/pareto"
	"github.com/matzehuels/rootfront/pkg/report"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder   = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

// uiOut receives status output. Results go to stdout, so status lines go to
// stderr to keep pipes clean.
var uiOut io.Writer = os.Stderr

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(uiOut, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(uiOut, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(uiOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(uiOut, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(uiOut, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints graph statistics on a single line, e.g.
// "412 nodes · 411 edges · cached".
func printStats(nodeCount, edgeCount int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodeCount),
		fmt.Sprintf("%d edges", edgeCount),
	}
	status := styleComputed.Render(iconFresh)
	if cached {
		status = styleCached.Render(iconCached)
	}

	var b strings.Builder
	b.WriteString("  ")
	for _, p := range parts {
		b.WriteString(StyleDim.Render(p))
		b.WriteString(StyleDim.Render(" · "))
	}
	b.WriteString(status)
	fmt.Fprintln(uiOut, b.String())
}

// =============================================================================
// Tables
// =============================================================================

// summaryFields are the record fields shown after each analysis.
var summaryFields = []string{
	"Total root length",
	"Travel distance",
	"alpha",
	"scaling distance to front",
	"alpha (random)",
	"scaling (random)",
	"Tradeoff",
	"alpha_3d",
	"beta_3d",
	"epsilon_3d",
}

// printSummary renders the headline numbers of rec as a two-column table.
func printSummary(rec report.Record, unit string) {
	var rows [][]string
	for _, name := range summaryFields {
		v, ok := rec.Get(name)
		if !ok {
			continue
		}
		rows = append(rows, []string{report.Header(name, unit), formatFloat(v)})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return styleHeader.Padding(0, 1)
			case col == 1:
				return StyleValue.Padding(0, 1)
			default:
				return StyleDim.Padding(0, 1)
			}
		})
	fmt.Fprintln(uiOut, t.Render())
}

// frontTable renders a 2D front with lengths multiplied by factor and the row
// at mark highlighted. A negative mark highlights nothing.
func frontTable(front pareto.Front2D, mark int, factor float64, unit string) *table.Table {
	rows := make([][]string, len(front))
	for i, p := range front {
		rows[i] = []string{
			strconv.FormatFloat(p.Alpha, 'f', 3, 64),
			strconv.FormatFloat(p.Cost.Length*factor, 'f', 2, 64),
			strconv.FormatFloat(p.Cost.Distance*factor, 'f', 2, 64),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("alpha", report.Header("length", unit), report.Header("distance", unit)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return styleHeader.Padding(0, 1)
			case row == mark:
				return StyleSuccess.Bold(true).Padding(0, 1)
			default:
				return StyleValue.Padding(0, 1)
			}
		})
}

func formatFloat(v *float64) string {
	if v == nil {
		return StyleDim.Render("n/a")
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}

// formatCost formats a length and distance pair with their unit.
func formatCost(length, distance float64, unit string) string {
	return fmt.Sprintf("length %.2f %s · distance %.2f %s", length, unit, distance, unit)
}
