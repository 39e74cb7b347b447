package charts

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v2"
)

// TraceKind distinguishes drawable traces.
type TraceKind string

const (
	KindLine TraceKind = "line"
	KindFill TraceKind = "fill"
)

// Trace is a single draw directive for a renderer. Lines use Color; fills use
// FillColor and LineColor and describe a closed polygon. Group is the label of
// the item the trace was drawn for, even when Name is suppressed.
type Trace struct {
	Kind       TraceKind   `json:"kind" yaml:"kind"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Group      string      `json:"group" yaml:"group"`
	X          []time.Time `json:"x" yaml:"x"`
	Y          []float64   `json:"y" yaml:"y"`
	Color      *Color      `json:"color,omitempty" yaml:"color,omitempty"`
	FillColor  *Color      `json:"fillColor,omitempty" yaml:"fillColor,omitempty"`
	LineColor  *Color      `json:"lineColor,omitempty" yaml:"lineColor,omitempty"`
	ShowLegend bool        `json:"showLegend" yaml:"showLegend"`
	ColorIndex int         `json:"colorIndex" yaml:"colorIndex"`
}

// Layout holds figure-wide directives. A nil YRange leaves the axis to the
// renderer and a zero Width keeps the renderer's default.
type Layout struct {
	Title      string      `json:"title" yaml:"title"`
	YRange     *[2]float64 `json:"yAxisRange,omitempty" yaml:"yAxisRange,omitempty"`
	LogY       bool        `json:"yAxisLogScale" yaml:"yAxisLogScale"`
	Width      int         `json:"width,omitempty" yaml:"width,omitempty"`
	ShowLegend bool        `json:"showLegend" yaml:"showLegend"`
}

// Figure is the complete, ordered set of directives for one chart.
type Figure struct {
	Traces []Trace `json:"traces" yaml:"traces"`
	Layout Layout  `json:"layout" yaml:"layout"`
}

// Lines returns the line traces in draw order.
func (f *Figure) Lines() []Trace {
	return f.byKind(KindLine)
}

// Fills returns the fill traces in draw order.
func (f *Figure) Fills() []Trace {
	return f.byKind(KindFill)
}

func (f *Figure) byKind(kind TraceKind) []Trace {
	out := make([]Trace, 0, len(f.Traces))
	for _, tr := range f.Traces {
		if tr.Kind == kind {
			out = append(out, tr)
		}
	}
	return out
}

// span returns the earliest and latest day across all traces.
func (f *Figure) span() (first, last time.Time, ok bool) {
	for _, tr := range f.Traces {
		for _, x := range tr.X {
			if !ok || x.Before(first) {
				first = x
			}
			if !ok || x.After(last) {
				last = x
			}
			ok = true
		}
	}
	return first, last, ok
}

// valueRange returns the smallest and largest y value across all traces.
// With positiveOnly set, non-positive values are ignored.
func (f *Figure) valueRange(positiveOnly bool) (lo, hi float64, ok bool) {
	for _, tr := range f.Traces {
		for _, y := range tr.Y {
			if positiveOnly && y <= 0 {
				continue
			}
			if !ok || y < lo {
				lo = y
			}
			if !ok || y > hi {
				hi = y
			}
			ok = true
		}
	}
	return lo, hi, ok
}

// Renderer draws a figure.
type Renderer interface {
	Render(w io.Writer, fig *Figure) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w io.Writer, fig *Figure) error

func (f RendererFunc) Render(w io.Writer, fig *Figure) error {
	return f(w, fig)
}

// EncodeJSON writes fig as indented JSON.
func EncodeJSON(w io.Writer, fig *Figure) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fig); err != nil {
		return fmt.Errorf("marshalling figure to JSON: %w", err)
	}
	return nil
}

// EncodeYAML writes fig as YAML.
func EncodeYAML(w io.Writer, fig *Figure) error {
	yamlBytes, err := yaml.Marshal(fig)
	if err != nil {
		return fmt.Errorf("marshalling figure to YAML: %w", err)
	}
	_, err = w.Write(yamlBytes)
	return err
}
