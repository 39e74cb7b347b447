package charts

import (
	"fmt"
	"slices"

	"github.com/GrzesiuKo/covidsimulation/internal/dates"
	"github.com/GrzesiuKo/covidsimulation/internal/series"
)

// ItemKind is the shape of a chart item.
type ItemKind int

const (
	ItemInvalid ItemKind = iota
	ItemSingle
	ItemBand
	ItemCentralWithBand
)

func (k ItemKind) String() string {
	switch k {
	case ItemSingle:
		return "single"
	case ItemBand:
		return "band"
	case ItemCentralWithBand:
		return "central+band"
	default:
		return "invalid"
	}
}

// Item is one labelled population on a chart: a single series, a lower/upper
// band, or a central estimate with its band.
type Item struct {
	Label   string
	kind    ItemKind
	central *series.Series
	lower   *series.Series
	upper   *series.Series
}

// Single returns an item drawn as one line.
func Single(label string, s *series.Series) Item {
	return Item{Label: label, kind: ItemSingle, central: s}
}

// Band returns an item drawn as a filled region between lower and upper.
func Band(label string, lower, upper *series.Series) Item {
	return Item{Label: label, kind: ItemBand, lower: lower, upper: upper}
}

// CentralWithBand returns an item drawn as a line over its confidence band.
func CentralWithBand(label string, central, lower, upper *series.Series) Item {
	return Item{Label: label, kind: ItemCentralWithBand, central: central, lower: lower, upper: upper}
}

// NewItem picks the item shape from the number of series: one is a line, two
// are (lower, upper) and three are (central, lower, upper).
func NewItem(label string, ss ...*series.Series) (Item, error) {
	switch len(ss) {
	case 1:
		return Single(label, ss[0]), nil
	case 2:
		return Band(label, ss[0], ss[1]), nil
	case 3:
		return CentralWithBand(label, ss[0], ss[1], ss[2]), nil
	default:
		return Item{}, fmt.Errorf("%w: invalid number of elements to plot for %q: %d", ErrConfiguration, label, len(ss))
	}
}

// Kind returns the item's shape.
func (it Item) Kind() ItemKind {
	return it.kind
}

func (it Item) validate() error {
	var need []*series.Series
	switch it.kind {
	case ItemSingle:
		need = []*series.Series{it.central}
	case ItemBand:
		need = []*series.Series{it.lower, it.upper}
	case ItemCentralWithBand:
		need = []*series.Series{it.central, it.lower, it.upper}
	default:
		return fmt.Errorf("%w: invalid number of elements to plot for %q", ErrConfiguration, it.Label)
	}
	if slices.Contains(need, nil) {
		return fmt.Errorf("%w: %s item %q has a missing series", ErrConfiguration, it.kind, it.Label)
	}
	return nil
}

// Options tune a composed chart. The zero value draws every item in full with
// cycled colours, confidence bands and a linear axis.
type Options struct {
	LogScale bool
	Width    int
	YMax     float64
	Start    series.Bound
	Stop     series.Bound
	// ColorOverride, when set, gives every item the same palette entry.
	ColorOverride          *int
	HideConfidenceInterval bool
}

// Compose turns items into an ordered figure. All fills come before all lines
// so no band covers a line; within each group input order is kept.
func Compose(items []Item, title string, opts Options) (*Figure, error) {
	var fills, lines []Trace

	for i, it := range items {
		if err := it.validate(); err != nil {
			return nil, err
		}

		colorIndex := ColorIndex(i)
		if opts.ColorOverride != nil {
			colorIndex = ColorIndex(*opts.ColorOverride)
		}

		switch it.kind {
		case ItemSingle:
			lines = append(lines, lineTrace(it.central.Trim(opts.Start, opts.Stop), it.Label, it.Label, colorIndex))
		case ItemBand:
			fill, err := bandTrace(it.lower.Trim(opts.Start, opts.Stop), it.upper.Trim(opts.Start, opts.Stop), it.Label, it.Label, true, colorIndex)
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", it.Label, err)
			}
			fills = append(fills, fill)
		case ItemCentralWithBand:
			if !opts.HideConfidenceInterval {
				fill, err := bandTrace(it.lower.Trim(opts.Start, opts.Stop), it.upper.Trim(opts.Start, opts.Stop), "", it.Label, false, colorIndex)
				if err != nil {
					return nil, fmt.Errorf("item %q: %w", it.Label, err)
				}
				fills = append(fills, fill)
			}
			lines = append(lines, lineTrace(it.central.Trim(opts.Start, opts.Stop), it.Label, it.Label, colorIndex))
		}
	}

	traces := make([]Trace, 0, len(fills)+len(lines))
	traces = append(traces, fills...)
	return &Figure{
		Traces: append(traces, lines...),
		Layout: layout(title, len(items), opts),
	}, nil
}

func lineTrace(s *series.Series, name, group string, colorIndex int) Trace {
	c := ColorFor(colorIndex).Solid
	return Trace{
		Kind:       KindLine,
		Name:       name,
		Group:      group,
		X:          s.Dates(),
		Y:          s.Values(),
		Color:      &c,
		ShowLegend: true,
		ColorIndex: colorIndex,
	}
}

// bandTrace traces the upper boundary forward and the lower boundary backward,
// closing the polygon.
func bandTrace(lower, upper *series.Series, name, group string, showLegend bool, colorIndex int) (Trace, error) {
	if lower.Len() != upper.Len() {
		return Trace{}, fmt.Errorf("%w: band bounds differ in length: lower %d, upper %d", ErrInvariant, lower.Len(), upper.Len())
	}
	if !lower.FirstDate().Equal(upper.FirstDate()) {
		return Trace{}, fmt.Errorf("%w: band bounds start on different days: lower %s, upper %s",
			ErrInvariant, dates.Format(lower.FirstDate()), dates.Format(upper.FirstDate()))
	}

	lowerX, lowerY := lower.Dates(), lower.Values()
	slices.Reverse(lowerX)
	slices.Reverse(lowerY)

	c := ColorFor(colorIndex).Translucent
	return Trace{
		Kind:       KindFill,
		Name:       name,
		Group:      group,
		X:          append(upper.Dates(), lowerX...),
		Y:          append(upper.Values(), lowerY...),
		FillColor:  &c,
		LineColor:  &c,
		ShowLegend: showLegend,
		ColorIndex: colorIndex,
	}, nil
}

func layout(title string, itemCount int, opts Options) Layout {
	l := Layout{
		Title:      title,
		LogY:       opts.LogScale,
		ShowLegend: itemCount != 1,
	}
	if opts.YMax != 0 {
		lo := 0.0
		if opts.LogScale {
			lo = 1
		}
		l.YRange = &[2]float64{lo, opts.YMax}
	}
	if opts.Width > 0 {
		l.Width = opts.Width
	}
	return l
}
