package prometheus

import (
	"time"

	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	QueryRangeFunc func(query string, start, end time.Time, step time.Duration, timeout time.Duration) (model.Matrix, v1.Warnings, error)
}

func (m *MockClient) QueryRange(query string, start, end time.Time, step time.Duration, timeout time.Duration) (model.Matrix, v1.Warnings, error) {
	if m.QueryRangeFunc != nil {
		return m.QueryRangeFunc(query, start, end, step, timeout)
	}
	return nil, nil, nil
}
