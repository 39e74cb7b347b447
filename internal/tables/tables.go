// Package tables renders a composed figure as a table of daily values.
package tables

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/GrzesiuKo/covidsimulation/internal/charts"
	"github.com/GrzesiuKo/covidsimulation/internal/dates"
)

const (
	dateColumn = "date"
	// minColumnWidth keeps narrow numeric columns readable.
	minColumnWidth = 8
	maxColumnWidth = 40
)

type Model struct {
	table table.Model
}

type column struct {
	key    string
	title  string
	values map[int64]float64
}

// FigureTable lays out one row per day and one column per line, with two
// columns (low, high) per band.
func FigureTable(fig *charts.Figure) (Model, error) {
	var cols []column
	days := make(map[int64]time.Time)

	for i, tr := range fig.Traces {
		if len(tr.X) != len(tr.Y) {
			return Model{}, fmt.Errorf("trace %d (%s) has %d x values and %d y values", i, tr.Group, len(tr.X), len(tr.Y))
		}
		for _, x := range tr.X {
			days[x.Unix()] = x
		}

		switch tr.Kind {
		case charts.KindLine:
			cols = append(cols, newColumn(fmt.Sprintf("c%d", i), tr.Group, tr.X, tr.Y))
		case charts.KindFill:
			n := len(tr.X) / 2
			cols = append(cols,
				newColumn(fmt.Sprintf("c%d-low", i), tr.Group+" (low)", tr.X[n:], tr.Y[n:]),
				newColumn(fmt.Sprintf("c%d-high", i), tr.Group+" (high)", tr.X[:n], tr.Y[:n]),
			)
		}
	}

	sortedDays := make([]time.Time, 0, len(days))
	for _, d := range days {
		sortedDays = append(sortedDays, d)
	}
	slices.SortFunc(sortedDays, func(a, b time.Time) int { return a.Compare(b) })

	rows := make([]table.Row, 0, len(sortedDays))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = max(len(c.title), minColumnWidth)
	}
	for _, d := range sortedDays {
		rowData := table.RowData{dateColumn: dates.Format(d)}
		for i, c := range cols {
			v, ok := c.values[d.Unix()]
			if !ok {
				continue
			}
			text := strconv.FormatFloat(v, 'g', 6, 64)
			rowData[c.key] = text
			widths[i] = max(widths[i], len(text))
		}
		rows = append(rows, table.NewRow(rowData))
	}

	columns := make([]table.Column, 0, len(cols)+1)
	columns = append(columns, table.NewColumn(dateColumn, "Date", len(dates.Layout)+1))
	for i, c := range cols {
		columns = append(columns, table.NewColumn(c.key, c.title, min(widths[i]+1, maxColumnWidth)))
	}

	return Model{
		table: table.
			New(columns).
			WithRows(rows).
			WithFooterVisibility(false).
			WithBaseStyle(lipgloss.NewStyle()),
	}, nil
}

func newColumn(key, title string, x []time.Time, y []float64) column {
	values := make(map[int64]float64, len(x))
	for i := range x {
		values[x[i].Unix()] = y[i]
	}
	return column{key: key, title: title, values: values}
}

func (m Model) View() string {
	return m.table.View()
}

// Render writes the table view of fig, preceded by its title.
func Render(w io.Writer, fig *charts.Figure) error {
	m, err := FigureTable(fig)
	if err != nil {
		return err
	}

	body := strings.Builder{}
	if fig.Layout.Title != "" {
		body.WriteString(fig.Layout.Title)
		body.WriteString("\n")
	}
	body.WriteString(m.View())
	body.WriteString("\n")

	_, err = io.WriteString(w, body.String())
	return err
}
