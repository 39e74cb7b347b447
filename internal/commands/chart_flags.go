package commands

import (
	"fmt"
	"os"

	"github.com/GrzesiuKo/covidsimulation/internal/charts"
	"github.com/GrzesiuKo/covidsimulation/internal/series"
	"github.com/GrzesiuKo/covidsimulation/internal/tables"
)

// ChartFlags are the chart options shared by plotting commands. Flags left at
// their defaults keep whatever the data source configured.
type ChartFlags struct {
	Title      string  `help:"Chart title."`
	LogScale   bool    `help:"Use a logarithmic y axis." name:"log-scale"`
	Width      int     `help:"Figure width in pixels for image output, columns for graphs."`
	YMax       float64 `help:"Upper bound of the y axis." name:"y-max"`
	Start      string  `help:"First day (YYYY-MM-DD) or offset to plot."`
	Stop       string  `help:"Last day (YYYY-MM-DD) or offset to plot."`
	ColorIndex int     `help:"Draw every item with this palette entry; negative cycles colours." name:"color-index" default:"-1"`
	NoCI       bool    `help:"Hide confidence bands drawn around central estimates." name:"no-ci"`
	Summary    bool    `help:"Add a bar chart of final values to graph output."`
	Output     string  `name:"output" short:"o" help:"Output format." default:"graph" enum:"graph,table,json,yaml,svg,png,pdf"`
	Out        string  `help:"Write output to this file instead of stdout." type:"path"`
}

// apply layers explicitly set flags over opts and title.
func (f *ChartFlags) apply(opts charts.Options, title string) (charts.Options, string, error) {
	if f.Title != "" {
		title = f.Title
	}
	if f.LogScale {
		opts.LogScale = true
	}
	if f.Width > 0 {
		opts.Width = f.Width
	}
	if f.YMax != 0 {
		opts.YMax = f.YMax
	}
	if f.Start != "" {
		b, err := series.ParseBound(f.Start)
		if err != nil {
			return opts, title, fmt.Errorf("--start: %w", err)
		}
		opts.Start = b
	}
	if f.Stop != "" {
		b, err := series.ParseBound(f.Stop)
		if err != nil {
			return opts, title, fmt.Errorf("--stop: %w", err)
		}
		opts.Stop = b
	}
	if f.ColorIndex >= 0 {
		index := f.ColorIndex
		opts.ColorOverride = &index
	}
	if f.NoCI {
		opts.HideConfidenceInterval = true
	}
	return opts, title, nil
}

func (f *ChartFlags) renderer() (charts.Renderer, error) {
	switch f.Output {
	case OutputTable:
		return charts.RendererFunc(tables.Render), nil
	case charts.FormatGraph:
		return charts.TerminalRenderer{Summary: f.Summary}, nil
	default:
		return charts.ForFormat(f.Output, 0)
	}
}

// render writes fig in the selected output format.
func (f *ChartFlags) render(ctx *Context, fig *charts.Figure) error {
	r, err := f.renderer()
	if err != nil {
		return err
	}

	if f.Out == "" {
		if charts.IsBinary(f.Output) {
			return fmt.Errorf("%s output needs a file, use --out", f.Output)
		}
		return r.Render(ctx.Stdout, fig)
	}

	out, err := os.Create(f.Out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := r.Render(out, fig); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	ctx.Logger.Info("chart written", "path", f.Out, "format", f.Output, "traces", len(fig.Traces))
	return nil
}
