// Package sources turns external data into chart items: request files written
// by the simulation tooling and Prometheus range query results.
package sources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/GrzesiuKo/covidsimulation/internal/charts"
	"github.com/GrzesiuKo/covidsimulation/internal/dates"
	"github.com/GrzesiuKo/covidsimulation/internal/series"
)

// Request is a chart request file. Start and Stop accept an ISO date or a day
// offset; in JSON offsets must be quoted.
type Request struct {
	Title                  string     `yaml:"title" json:"title"`
	LogScale               bool       `yaml:"log_scale" json:"log_scale"`
	Width                  int        `yaml:"width" json:"width"`
	YMax                   float64    `yaml:"y_max" json:"y_max"`
	Start                  string     `yaml:"start" json:"start"`
	Stop                   string     `yaml:"stop" json:"stop"`
	ColorIndex             *int       `yaml:"color_index" json:"color_index"`
	ShowConfidenceInterval *bool      `yaml:"show_confidence_interval" json:"show_confidence_interval"`
	Items                  []ItemSpec `yaml:"items" json:"items"`
}

// ItemSpec is one labelled population: one series for a line, two for a
// (lower, upper) band, three for (central, lower, upper).
type ItemSpec struct {
	Label  string       `yaml:"label" json:"label"`
	Series []SeriesSpec `yaml:"series" json:"series"`
}

// SeriesSpec holds values with either their dates or a start date.
type SeriesSpec struct {
	Values    []float64 `yaml:"values" json:"values"`
	Dates     []string  `yaml:"dates" json:"dates"`
	StartDate string    `yaml:"start_date" json:"start_date"`
}

// Request file formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// LoadFile reads a request, choosing the format from the file extension.
func LoadFile(path string) (*Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening request: %w", err)
	}
	defer f.Close()

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	req, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// Decode reads a request in the given format.
func Decode(r io.Reader, format string) (*Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}

	var req Request
	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalStrict(data, &req); err != nil {
			return nil, fmt.Errorf("unmarshalling request from YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("unmarshalling request from JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown request format %q", series.ErrConfiguration, format)
	}
	return &req, nil
}

// Series builds the calendar series described by s.
func (s SeriesSpec) Series() (*series.Series, error) {
	var opts []series.Option
	if s.StartDate != "" {
		opts = append(opts, series.WithStartDateString(s.StartDate))
	}
	if s.Dates != nil {
		days, err := parseDates(s.Dates)
		if err != nil {
			return nil, err
		}
		opts = append(opts, series.WithDates(days))
	}
	return series.New(s.Values, opts...)
}

func parseDates(values []string) ([]time.Time, error) {
	days := make([]time.Time, len(values))
	for i, v := range values {
		d, err := dates.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("date %d: %w", i, err)
		}
		days[i] = d
	}
	return days, nil
}

// ChartItems builds every item in file order.
func (r *Request) ChartItems() ([]charts.Item, error) {
	items := make([]charts.Item, 0, len(r.Items))
	for i, spec := range r.Items {
		ss := make([]*series.Series, len(spec.Series))
		for j, s := range spec.Series {
			built, err := s.Series()
			if err != nil {
				return nil, fmt.Errorf("item %d (%s) series %d: %w", i, spec.Label, j, err)
			}
			ss[j] = built
		}
		item, err := charts.NewItem(spec.Label, ss...)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Options converts the request's chart settings.
func (r *Request) Options() (charts.Options, error) {
	start, err := series.ParseBound(r.Start)
	if err != nil {
		return charts.Options{}, fmt.Errorf("start: %w", err)
	}
	stop, err := series.ParseBound(r.Stop)
	if err != nil {
		return charts.Options{}, fmt.Errorf("stop: %w", err)
	}
	return charts.Options{
		LogScale:               r.LogScale,
		Width:                  r.Width,
		YMax:                   r.YMax,
		Start:                  start,
		Stop:                   stop,
		ColorOverride:          r.ColorIndex,
		HideConfidenceInterval: r.ShowConfidenceInterval != nil && !*r.ShowConfidenceInterval,
	}, nil
}
