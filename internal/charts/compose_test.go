package charts

import (
	"errors"
	"testing"
	"time"

	"github.com/GrzesiuKo/covidsimulation/internal/dates"
	"github.com/GrzesiuKo/covidsimulation/internal/series"
)

var d0 = dates.MustParse("2020-03-01")

func dense(values ...float64) *series.Series {
	return series.FromStart(d0, values)
}

func sameDays(t *testing.T, got []time.Time, want ...time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(x) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("x[%d] = %s, want %s", i, dates.Format(got[i]), dates.Format(want[i]))
		}
	}
}

func sameValues(t *testing.T, got []float64, want ...float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(y) = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("y[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestComposeBandGeometry(t *testing.T) {
	fig, err := Compose([]Item{Band("ci", dense(1, 2, 3), dense(4, 5, 6))}, "band", Options{})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if len(fig.Traces) != 1 {
		t.Fatalf("len(Traces) = %d, want 1", len(fig.Traces))
	}

	fill := fig.Traces[0]
	if fill.Kind != KindFill {
		t.Fatalf("Kind = %s, want fill", fill.Kind)
	}
	d1, d2 := dates.Add(d0, 1), dates.Add(d0, 2)
	sameDays(t, fill.X, d0, d1, d2, d2, d1, d0)
	sameValues(t, fill.Y, 4, 5, 6, 3, 2, 1)
	if fill.Name != "ci" || !fill.ShowLegend {
		t.Errorf("band legend = (%q, %v), want (\"ci\", true)", fill.Name, fill.ShowLegend)
	}
	if *fill.FillColor != palette[0].Translucent || *fill.LineColor != palette[0].Translucent {
		t.Errorf("band colours = %s/%s, want %s", fill.FillColor, fill.LineColor, palette[0].Translucent)
	}
}

func TestComposeFillsBeforeLines(t *testing.T) {
	items := []Item{
		Single("line only", dense(1, 2, 3)),
		CentralWithBand("with band", dense(2, 3, 4), dense(1, 2, 3), dense(3, 4, 5)),
	}

	fig, err := Compose(items, "order", Options{})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := []struct {
		kind       TraceKind
		name       string
		colorIndex int
		showLegend bool
	}{
		{KindFill, "", 1, false},
		{KindLine, "line only", 0, true},
		{KindLine, "with band", 1, true},
	}
	if len(fig.Traces) != len(want) {
		t.Fatalf("len(Traces) = %d, want %d", len(fig.Traces), len(want))
	}
	for i, w := range want {
		tr := fig.Traces[i]
		if tr.Kind != w.kind || tr.Name != w.name || tr.ColorIndex != w.colorIndex || tr.ShowLegend != w.showLegend {
			t.Errorf("Traces[%d] = {%s %q %d %v}, want {%s %q %d %v}",
				i, tr.Kind, tr.Name, tr.ColorIndex, tr.ShowLegend, w.kind, w.name, w.colorIndex, w.showLegend)
		}
	}
	if !fig.Layout.ShowLegend {
		t.Error("Layout.ShowLegend = false, want true for two items")
	}
}

func TestComposeHideConfidenceInterval(t *testing.T) {
	items := []Item{
		CentralWithBand("a", dense(2, 3), dense(1, 2), dense(3, 4)),
		Band("b", dense(0, 0), dense(1, 1)),
	}

	fig, err := Compose(items, "", Options{HideConfidenceInterval: true})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if got := len(fig.Fills()); got != 1 {
		t.Errorf("len(Fills()) = %d, want 1 (plain bands are always drawn)", got)
	}
	if got := len(fig.Lines()); got != 1 {
		t.Errorf("len(Lines()) = %d, want 1", got)
	}
}

func TestComposeSingleItemHidesLegend(t *testing.T) {
	fig, err := Compose([]Item{Single("A", dense(1))}, "one", Options{})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if fig.Layout.ShowLegend {
		t.Error("Layout.ShowLegend = true, want false for a single item")
	}
	if fig.Layout.Title != "one" {
		t.Errorf("Layout.Title = %q, want %q", fig.Layout.Title, "one")
	}
}

func TestComposeColors(t *testing.T) {
	items := make([]Item, PaletteSize+2)
	for i := range items {
		items[i] = Single("s", dense(float64(i)))
	}

	t.Run("cycled", func(t *testing.T) {
		fig, err := Compose(items, "", Options{})
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		for i, tr := range fig.Traces {
			if tr.ColorIndex != i%PaletteSize {
				t.Errorf("Traces[%d].ColorIndex = %d, want %d", i, tr.ColorIndex, i%PaletteSize)
			}
			if *tr.Color != palette[i%PaletteSize].Solid {
				t.Errorf("Traces[%d].Color = %s, want %s", i, tr.Color, palette[i%PaletteSize].Solid)
			}
		}
	})

	t.Run("override", func(t *testing.T) {
		override := 3
		fig, err := Compose(items, "", Options{ColorOverride: &override})
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		for i, tr := range fig.Traces {
			if tr.ColorIndex != 3 {
				t.Errorf("Traces[%d].ColorIndex = %d, want 3", i, tr.ColorIndex)
			}
		}
	})
}

func TestComposeLayout(t *testing.T) {
	items := []Item{Single("a", dense(1)), Single("b", dense(2))}

	tests := []struct {
		name      string
		opts      Options
		wantRange *[2]float64
		wantLog   bool
		wantWidth int
	}{
		{name: "defaults"},
		{name: "linear y max", opts: Options{YMax: 50}, wantRange: &[2]float64{0, 50}},
		{name: "log y max", opts: Options{YMax: 50, LogScale: true}, wantRange: &[2]float64{1, 50}, wantLog: true},
		{name: "log without y max", opts: Options{LogScale: true}, wantLog: true},
		{name: "width", opts: Options{Width: 900}, wantWidth: 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := Compose(items, "t", tt.opts)
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			l := fig.Layout
			if (l.YRange == nil) != (tt.wantRange == nil) || (l.YRange != nil && *l.YRange != *tt.wantRange) {
				t.Errorf("YRange = %v, want %v", l.YRange, tt.wantRange)
			}
			if l.LogY != tt.wantLog {
				t.Errorf("LogY = %v, want %v", l.LogY, tt.wantLog)
			}
			if l.Width != tt.wantWidth {
				t.Errorf("Width = %d, want %d", l.Width, tt.wantWidth)
			}
		})
	}
}

func TestComposeTrims(t *testing.T) {
	items := []Item{
		CentralWithBand("a", dense(2, 3, 4, 5), dense(1, 2, 3, 4), dense(3, 4, 5, 6)),
	}
	opts := Options{Start: series.On(dates.Add(d0, 1)), Stop: series.Index(2)}

	fig, err := Compose(items, "", opts)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	sameValues(t, fig.Lines()[0].Y, 3, 4)
	sameValues(t, fig.Fills()[0].Y, 4, 5, 3, 2)
	sameDays(t, fig.Lines()[0].X, dates.Add(d0, 1), dates.Add(d0, 2))
}

func TestComposeErrors(t *testing.T) {
	shifted := series.FromStart(dates.Add(d0, 1), []float64{1, 2, 3})

	tests := []struct {
		name    string
		items   []Item
		wantErr error
	}{
		{name: "zero item", items: []Item{{Label: "X"}}, wantErr: ErrConfiguration},
		{name: "nil series", items: []Item{Single("X", nil)}, wantErr: ErrConfiguration},
		{name: "band length mismatch", items: []Item{Band("X", dense(1, 2), dense(1, 2, 3))}, wantErr: ErrInvariant},
		{name: "band day mismatch", items: []Item{Band("X", dense(1, 2, 3), shifted)}, wantErr: ErrInvariant},
		{
			name:    "error after valid items",
			items:   []Item{Single("ok", dense(1)), CentralWithBand("X", dense(1), dense(1), dense(1, 2))},
			wantErr: ErrInvariant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := Compose(tt.items, "", Options{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Compose() error = %v, want %v", err, tt.wantErr)
			}
			if fig != nil {
				t.Error("Compose() returned a partial figure alongside an error")
			}
		})
	}
}

func TestNewItem(t *testing.T) {
	s := dense(1, 2)
	tests := []struct {
		name    string
		count   int
		want    ItemKind
		wantErr bool
	}{
		{name: "none", count: 0, wantErr: true},
		{name: "one", count: 1, want: ItemSingle},
		{name: "two", count: 2, want: ItemBand},
		{name: "three", count: 3, want: ItemCentralWithBand},
		{name: "four", count: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss := make([]*series.Series, tt.count)
			for i := range ss {
				ss[i] = s
			}
			item, err := NewItem("X", ss...)
			if tt.wantErr {
				if !errors.Is(err, ErrConfiguration) {
					t.Errorf("NewItem() error = %v, want ErrConfiguration", err)
				}
				if _, err := Compose([]Item{item}, "", Options{}); !errors.Is(err, ErrConfiguration) {
					t.Errorf("Compose() of rejected item error = %v, want ErrConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewItem() error = %v", err)
			}
			if item.Kind() != tt.want {
				t.Errorf("Kind() = %s, want %s", item.Kind(), tt.want)
			}
		})
	}
}

func TestComposeDoesNotAliasSeries(t *testing.T) {
	s := dense(1, 2, 3)
	fig, err := Compose([]Item{Single("a", s)}, "", Options{})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	fig.Traces[0].Y[0] = 100
	if got := s.ValueAt(series.Index(0)); got != 1 {
		t.Errorf("series value changed through figure: %v", got)
	}
}
