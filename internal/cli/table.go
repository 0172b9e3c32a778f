package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/hueshift/pkg/inspect"
)

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// renderShiftTable lists per-variant rotation statistics in degrees.
func renderShiftTable(paths []string, stats []inspect.ShiftStats) string {
	rows := make([][]string, len(stats))
	for i, st := range stats {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			paths[i],
			fmt.Sprintf("%.1f°", st.Mean),
			fmt.Sprintf("%.1f°", st.StdDev),
			fmt.Sprintf("%.1f°", st.Min),
			fmt.Sprintf("%.1f°", st.Max),
		}
	}

	return newTable("#", "File", "Mean", "StdDev", "Min", "Max").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorWhite)
			case col >= 2:
				return lipgloss.NewStyle().Foreground(colorCyan)
			default:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
		}).
		Render()
}

// renderSwatchTable lists dominant colors with a colored sample cell.
func renderSwatchTable(swatches []inspect.Swatch) string {
	rows := make([][]string, len(swatches))
	for i, s := range swatches {
		rows[i] = []string{
			"    ",
			s.Hex,
			fmt.Sprintf("%d, %d, %d", s.R, s.G, s.B),
			fmt.Sprintf("%5.1f%%", s.Weight*100),
		}
	}

	return newTable("", "Hex", "RGB", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 0 && row < len(swatches) {
				return lipgloss.NewStyle().Background(lipgloss.Color(swatches[row].Hex))
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
