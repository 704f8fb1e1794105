package middleware

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
)

var buckets = metrics.ExponentialBuckets(1e-3, 5, 6)

// Metrics records request counts and latencies per operation.
type Metrics struct {
	set *metrics.Set
}

// NewMetrics creates a new Metrics middleware writing into set.
func NewMetrics(set *metrics.Set) *Metrics {
	return &Metrics{set: set}
}

// Handle updates http_requests_total and http_request_duration_seconds.
func (m *Metrics) Handle(ctx huma.Context, next func(huma.Context)) {
	op, start := ctx.Operation(), time.Now()
	next(ctx)

	labels := fmt.Sprintf(`{method=%q,path=%q,status="%d"}`, op.Method, op.Path, ctx.Status())
	m.set.GetOrCreatePrometheusHistogramExt(`http_request_duration_seconds`+labels, buckets).UpdateDuration(start)
	m.set.GetOrCreateCounter(`http_requests_total` + labels).Inc()
}
