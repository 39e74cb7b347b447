package charts

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/GrzesiuKo/covidsimulation/internal/dates"
)

var axisStyle = lipgloss.NewStyle().
	Foreground(AxisColor)

var labelStyle = lipgloss.NewStyle().
	Foreground(LabelColor)

var titleStyle = lipgloss.NewStyle().Bold(true)

// bandRune marks confidence bands in the legend.
const bandRune = '▒'

// LegendEntry describes one legend row of a terminal chart.
type LegendEntry struct {
	Name       string
	ColorIndex int
	Band       bool
}

// TimeseriesSplit draws the figure as a braille line chart and returns the
// legend separately. Terminals cannot fill polygons, so each band is drawn as
// its two boundaries in the flattened band colour. A log-scaled figure is
// plotted in log10 space with labels converted back.
func TimeseriesSplit(fig *Figure, width int) (chart string, legend []LegendEntry) {
	height := max(width/ChartHeightRatio, MinChartHeight)

	lc := timeserieslinechart.New(width, height)
	lc.AxisStyle = axisStyle
	lc.LabelStyle = labelStyle
	lc.XLabelFormatter = func(_ int, v float64) string {
		return time.Unix(int64(v), 0).UTC().Format("01/02")
	}

	minY, maxY, floor := yBounds(fig)
	scale := func(v float64) float64 { return v }
	if fig.Layout.LogY {
		scale = func(v float64) float64 { return math.Log10(max(v, floor)) }
		lc.YLabelFormatter = func(_ int, v float64) string {
			return strconv.FormatFloat(math.Pow(10, v), 'g', 3, 64)
		}
	}
	lc.SetYRange(scale(minY), scale(maxY))     // set expected Y values (values can be less or greater than what is displayed)
	lc.SetViewYRange(scale(minY), scale(maxY)) // setting display Y values will fail unless set expected Y values first

	if first, last, ok := fig.span(); ok {
		if !last.After(first) {
			last = dates.Add(first, 1)
		}
		lc.SetTimeRange(first, last)
		lc.SetViewTimeRange(first, last)
	}
	lc.SetLineStyle(runes.ThinLineStyle) // ThinLineStyle replaces default linechart arcline rune style

	push := func(name string, x []time.Time, y []float64) {
		for i := range x {
			lc.PushDataSet(name, timeserieslinechart.TimePoint{Time: x[i], Value: scale(y[i])})
		}
	}

	// Data set names sort in draw order so fills stay beneath lines.
	for i, tr := range fig.Traces {
		switch tr.Kind {
		case KindFill:
			style := lipgloss.NewStyle().Foreground(terminalColor(*tr.FillColor))
			n := len(tr.X) / 2
			upper := fmt.Sprintf("%03d-upper", i)
			lower := fmt.Sprintf("%03d-lower", i)
			lc.SetDataSetStyle(upper, style)
			lc.SetDataSetStyle(lower, style)
			push(upper, tr.X[:n], tr.Y[:n])
			push(lower, tr.X[n:], tr.Y[n:])
		case KindLine:
			name := fmt.Sprintf("%03d-line", i)
			lc.SetDataSetStyle(name, SeriesStyle(tr.ColorIndex))
			push(name, tr.X, tr.Y)
		}
		if fig.Layout.ShowLegend && tr.ShowLegend {
			legend = append(legend, LegendEntry{Name: tr.Name, ColorIndex: tr.ColorIndex, Band: tr.Kind == KindFill})
		}
	}

	lc.DrawBrailleAll()

	return lc.View(), legend
}

// yBounds picks the displayed value range. floor is the smallest value a log
// axis can show.
func yBounds(fig *Figure) (lo, hi, floor float64) {
	floor = 1
	if fig.Layout.YRange != nil {
		lo, hi = fig.Layout.YRange[0], fig.Layout.YRange[1]
	} else {
		lo, hi, _ = fig.valueRange(false)
		if fig.Layout.LogY {
			if pos, _, ok := fig.valueRange(true); ok {
				floor = pos
			}
		}
	}
	if fig.Layout.LogY {
		lo = max(lo, floor)
		hi = max(hi, lo)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi, floor
}

// RenderLegend renders legend entries one per line.
func RenderLegend(legend []LegendEntry) string {
	var b strings.Builder
	for _, entry := range legend {
		mark := runes.FullBlock
		style := SeriesStyle(entry.ColorIndex)
		if entry.Band {
			mark = bandRune
			style = lipgloss.NewStyle().Foreground(terminalColor(ColorFor(entry.ColorIndex).Translucent))
		}
		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("%c %s", mark, entry.Name)))
	}
	return b.String()
}

// TerminalRenderer draws figures as text. The figure's layout width, in
// columns, wins over Width, which wins over the terminal's own width. Summary
// adds a bar chart of each line's final value.
type TerminalRenderer struct {
	Width   int
	Summary bool
}

func (r TerminalRenderer) Render(w io.Writer, fig *Figure) error {
	width := fig.Layout.Width
	if width <= 0 {
		width = r.Width
	}
	if width <= 0 {
		width = TerminalWidth()
	}

	chart, legend := TimeseriesSplit(fig, width)

	var b strings.Builder
	if fig.Layout.Title != "" {
		b.WriteString(titleStyle.Render(fig.Layout.Title))
		b.WriteString("\n")
	}
	b.WriteString(chart)
	b.WriteString(RenderLegend(legend))
	if r.Summary {
		b.WriteString("\n\n")
		b.WriteString(Barchart(fig, width))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
