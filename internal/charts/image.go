package charts

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/GrzesiuKo/covidsimulation/internal/dates"
)

// ImageRenderer draws figures with gonum/plot. Format is any format
// plot.WriterTo accepts, such as svg, png or pdf. A figure's layout width is
// taken as pixels at ImageDPI and overrides Width.
type ImageRenderer struct {
	Format string
	Width  vg.Length
	Height vg.Length
}

func (r ImageRenderer) Render(w io.Writer, fig *Figure) error {
	p, err := imagePlot(fig)
	if err != nil {
		return err
	}

	width, height := r.Width, r.Height
	if width <= 0 {
		width = DefaultImageWidth
	}
	if height <= 0 {
		height = DefaultImageHeight
	}
	if fig.Layout.Width > 0 {
		width = vg.Length(fig.Layout.Width) * vg.Inch / ImageDPI
	}

	wt, err := p.WriterTo(width, height, r.Format)
	if err != nil {
		return fmt.Errorf("creating %s writer: %w", r.Format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing %s: %w", r.Format, err)
	}
	return nil
}

func imagePlot(fig *Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Layout.Title
	p.BackgroundColor = color.White
	p.X.Tick.Marker = plot.TimeTicks{Format: dates.Layout}
	p.Legend.Top = true

	_, _, floor := yBounds(fig)
	if fig.Layout.YRange != nil {
		floor = max(fig.Layout.YRange[0], floor)
	}
	y := func(v float64) float64 {
		if fig.Layout.LogY {
			return max(v, floor)
		}
		return v
	}

	for _, tr := range fig.Traces {
		if len(tr.X) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(tr.X))
		for i := range tr.X {
			xys[i].X = float64(tr.X[i].Unix())
			xys[i].Y = y(tr.Y[i])
		}

		var thumb plot.Thumbnailer
		switch tr.Kind {
		case KindFill:
			poly, err := plotter.NewPolygon(xys)
			if err != nil {
				return nil, fmt.Errorf("building band %q: %w", tr.Name, err)
			}
			poly.Color = tr.FillColor.NRGBA()
			poly.LineStyle.Color = tr.LineColor.NRGBA()
			poly.LineStyle.Width = vg.Points(0.5)
			p.Add(poly)
			thumb = poly
		case KindLine:
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("building line %q: %w", tr.Name, err)
			}
			line.LineStyle.Color = tr.Color.NRGBA()
			line.LineStyle.Width = vg.Points(1.5)
			p.Add(line)
			thumb = line
		}
		if fig.Layout.ShowLegend && tr.ShowLegend && thumb != nil {
			p.Legend.Add(tr.Name, thumb)
		}
	}

	if fig.Layout.YRange != nil {
		p.Y.Min, p.Y.Max = fig.Layout.YRange[0], fig.Layout.YRange[1]
	}
	if math.IsInf(p.Y.Min, 0) || math.IsInf(p.Y.Max, 0) || p.Y.Min > p.Y.Max {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
	}
	if fig.Layout.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
		p.Y.Min = max(p.Y.Min, floor)
		p.Y.Max = max(p.Y.Max, p.Y.Min*10)
	}
	return p, nil
}
