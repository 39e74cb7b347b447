package sources

import (
	"fmt"
	"time"

	"github.com/prometheus/common/model"

	"github.com/GrzesiuKo/covidsimulation/internal/charts"
	"github.com/GrzesiuKo/covidsimulation/internal/series"
)

// StreamSeries densifies a Prometheus sample stream into daily values. Samples
// are keyed by their UTC day; days without samples carry the previous value.
func StreamSeries(stream *model.SampleStream) (*series.Series, error) {
	days := make([]time.Time, len(stream.Values))
	values := make([]float64, len(stream.Values))
	for i, sample := range stream.Values {
		days[i] = sample.Timestamp.Time()
		values[i] = float64(sample.Value)
	}
	s, err := series.FromDates(days, values)
	if err != nil {
		return nil, fmt.Errorf("stream %s: %w", stream.Metric, err)
	}
	return s, nil
}

// FromMatrices builds one item per central stream. Lower and upper streams are
// matched to it by label set, ignoring the metric name; a central stream with both bounds becomes a
// central-with-band item, otherwise a single line. With no central matrix,
// matching lower and upper streams become bands. Empty streams are skipped.
func FromMatrices(central, lower, upper model.Matrix) ([]charts.Item, error) {
	lowerBy := byFingerprint(lower)
	upperBy := byFingerprint(upper)

	var items []charts.Item
	if len(central) == 0 {
		for _, lo := range lower {
			hi, ok := upperBy[matchKey(lo.Metric)]
			if !ok || len(lo.Values) == 0 || len(hi.Values) == 0 {
				continue
			}
			item, err := streamItem(lo.Metric.String(), lo, hi)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}

	for _, c := range central {
		if len(c.Values) == 0 {
			continue
		}
		streams := []*model.SampleStream{c}
		lo, okLo := lowerBy[matchKey(c.Metric)]
		hi, okHi := upperBy[matchKey(c.Metric)]
		if okLo && okHi && len(lo.Values) > 0 && len(hi.Values) > 0 {
			streams = append(streams, lo, hi)
		}
		item, err := streamItem(c.Metric.String(), streams...)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func streamItem(label string, streams ...*model.SampleStream) (charts.Item, error) {
	ss := make([]*series.Series, len(streams))
	for i, stream := range streams {
		s, err := StreamSeries(stream)
		if err != nil {
			return charts.Item{}, err
		}
		ss[i] = s
	}
	return charts.NewItem(label, ss...)
}

func byFingerprint(matrix model.Matrix) map[model.Fingerprint]*model.SampleStream {
	out := make(map[model.Fingerprint]*model.SampleStream, len(matrix))
	for _, stream := range matrix {
		out[matchKey(stream.Metric)] = stream
	}
	return out
}

func matchKey(metric model.Metric) model.Fingerprint {
	labels := metric.Clone()
	delete(labels, model.MetricNameLabel)
	return labels.Fingerprint()
}
