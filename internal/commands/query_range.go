package commands

import (
	"fmt"
	"time"

	"github.com/prometheus/common/model"

	"github.com/GrzesiuKo/covidsimulation/internal/charts"
	"github.com/GrzesiuKo/covidsimulation/internal/dates"
	"github.com/GrzesiuKo/covidsimulation/internal/prometheus"
	"github.com/GrzesiuKo/covidsimulation/internal/sources"
)

type QueryRangeCmd struct {
	PrometheusURL string        `help:"URL of the Prometheus endpoint." env:"COVIDPLOT_PROMETHEUS_URL" name:"prometheus-url"`
	Query         string        `arg:"" name:"query" help:"Query for the central estimate." required:"true"`
	Lower         string        `name:"lower" help:"Query for the lower confidence bound."`
	Upper         string        `name:"upper" help:"Query for the upper confidence bound."`
	Range         time.Duration `name:"range" short:"r" help:"Range to query." default:"2160h"`

	ChartFlags `embed:""`

	client prometheus.Client
}

func (q *QueryRangeCmd) Run(ctx *Context) error {
	if (q.Lower == "") != (q.Upper == "") {
		return fmt.Errorf("%w: --lower and --upper must be given together", charts.ErrConfiguration)
	}
	for _, query := range []string{q.Query, q.Lower, q.Upper} {
		if query == "" {
			continue
		}
		if err := prometheus.ValidateQuery(query); err != nil {
			return err
		}
	}

	client := q.client
	if client == nil {
		var err error
		client, err = prometheus.NewClient(q.PrometheusURL)
		if err != nil {
			return err
		}
	}

	end := dates.Day(time.Now())
	rng := q.Range
	if rng <= 0 {
		rng = DefaultQueryRange
	}
	start := end.Add(-rng)

	fetch := func(query string) (model.Matrix, error) {
		if query == "" {
			return nil, nil
		}
		matrix, warnings, err := client.QueryRange(query, start, end, prometheus.DailyStep, ctx.Timeout)
		if err != nil {
			return nil, fmt.Errorf("querying %q: %w", query, err)
		}
		for _, w := range warnings {
			ctx.Logger.Warn("prometheus warning", "query", query, "warning", w)
		}
		ctx.Logger.Debug("range query done", "query", query, "streams", len(matrix))
		return matrix, nil
	}

	central, err := fetch(q.Query)
	if err != nil {
		return err
	}
	lower, err := fetch(q.Lower)
	if err != nil {
		return err
	}
	upper, err := fetch(q.Upper)
	if err != nil {
		return err
	}

	items, err := sources.FromMatrices(central, lower, upper)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(ctx.Stdout, "No Data")
		return err
	}

	opts, title, err := q.apply(charts.Options{}, prometheus.FormatQuery(q.Query))
	if err != nil {
		return err
	}
	fig, err := charts.Compose(items, title, opts)
	if err != nil {
		return err
	}
	return q.render(ctx, fig)
}
