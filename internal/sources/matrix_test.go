package sources

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/common/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrzesiuKo/covidsimulation/internal/charts"
	"github.com/GrzesiuKo/covidsimulation/internal/dates"
)

func stream(metric model.Metric, start time.Time, dayOffsets []int, values ...float64) *model.SampleStream {
	s := &model.SampleStream{Metric: metric}
	for i, off := range dayOffsets {
		s.Values = append(s.Values, model.SamplePair{
			Timestamp: model.TimeFromUnixNano(start.AddDate(0, 0, off).UnixNano()),
			Value:     model.SampleValue(values[i]),
		})
	}
	return s
}

func TestStreamSeriesDensifies(t *testing.T) {
	start := dates.MustParse("2020-03-01").Add(6 * time.Hour)
	s, err := StreamSeries(stream(model.Metric{"population": "sp"}, start, []int{0, 2, 3}, 1, 3, 4))
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1, 3, 4}, s.Values())
	assert.True(t, s.FirstDate().Equal(dates.MustParse("2020-03-01")))
}

func TestStreamSeriesEmpty(t *testing.T) {
	_, err := StreamSeries(&model.SampleStream{Metric: model.Metric{"population": "sp"}})
	assert.True(t, errors.Is(err, charts.ErrConfiguration))
}

func TestFromMatrices(t *testing.T) {
	start := dates.MustParse("2020-03-01")
	days := []int{0, 1, 2}
	sp := model.Metric{"population": "sp"}
	rj := model.Metric{"population": "rj"}
	named := func(name string, m model.Metric) model.Metric {
		out := m.Clone()
		out[model.MetricNameLabel] = model.LabelValue(name)
		return out
	}

	central := model.Matrix{
		stream(named("deaths_p50", sp), start, days, 2, 3, 4),
		stream(named("deaths_p50", rj), start, days, 5, 6, 7),
		{Metric: model.Metric{"population": "empty"}},
	}
	lower := model.Matrix{stream(named("deaths_p05", sp), start, days, 1, 2, 3)}
	upper := model.Matrix{
		stream(named("deaths_p95", sp), start, days, 3, 4, 5),
		stream(named("deaths_p95", rj), start, days, 6, 7, 8),
	}

	t.Run("central with bounds", func(t *testing.T) {
		items, err := FromMatrices(central, lower, upper)
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, charts.ItemCentralWithBand, items[0].Kind())
		assert.Equal(t, charts.ItemSingle, items[1].Kind(), "rj has no lower bound")

		fig, err := charts.Compose(items, "", charts.Options{})
		require.NoError(t, err)
		require.Len(t, fig.Fills(), 1)
		assert.Equal(t, []float64{3, 4, 5, 3, 2, 1}, fig.Fills()[0].Y)
	})

	t.Run("bands only", func(t *testing.T) {
		items, err := FromMatrices(nil, lower, upper)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, charts.ItemBand, items[0].Kind())
	})

	t.Run("nothing", func(t *testing.T) {
		items, err := FromMatrices(nil, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
