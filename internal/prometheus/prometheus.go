// Package prometheus fetches daily statistic series from a Prometheus server.
package prometheus

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/prometheus/prometheus/promql/parser"
)

// DailyStep is the resolution at which range queries are evaluated so that each
// sample lands on its own calendar day.
const DailyStep = 24 * time.Hour

type prometheusClient struct {
	v1api v1.API
}

type Client interface {
	QueryRange(query string, start, end time.Time, step time.Duration, timeout time.Duration) (model.Matrix, v1.Warnings, error)
}

func NewClient(url string) (Client, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("creating prometheus client: %w", err)
	}
	v1api := v1.NewAPI(client)
	return &prometheusClient{v1api: v1api}, nil
}

func (c *prometheusClient) QueryRange(query string, start, end time.Time, step time.Duration, timeout time.Duration) (model.Matrix, v1.Warnings, error) {
	var matrix model.Matrix
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	result, warnings, err := c.v1api.QueryRange(ctx, query, v1.Range{
		Start: start,
		End:   end,
		Step:  step,
	}, v1.WithTimeout(timeout))
	if err != nil {
		return matrix, warnings, err
	}

	switch result.Type() {
	case model.ValMatrix:
		m := result.(model.Matrix)
		return m, warnings, nil
	case model.ValNone, model.ValScalar, model.ValVector, model.ValString:
		return matrix, warnings, fmt.Errorf("unexpected result type: %s", result.Type())
	default:
		return matrix, warnings, fmt.Errorf("unknown result type: %s", result.Type())
	}
}

// FormatQuery pretty-prints query, returning it unchanged when it does not parse.
func FormatQuery(query string) string {
	ast, err := parser.ParseExpr(query)
	if err != nil {
		return query
	}
	return ast.Pretty(0)
}

// ValidateQuery reports whether query is valid PromQL before it is sent.
func ValidateQuery(query string) error {
	if _, err := parser.ParseExpr(query); err != nil {
		return fmt.Errorf("invalid query %q: %w", query, err)
	}
	return nil
}
