// Package observability owns the Prometheus collectors of the practice
// server.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sadopc/swimlog/internal/practice"
)

var (
	// rpcRequests counts boundary calls.
	// Labels: procedure, status (HTTP status code)
	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swimlog",
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "Total RPC requests by procedure and status",
	}, []string{"procedure", "status"})

	// rpcDuration measures handler latency.
	// Labels: procedure
	rpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "swimlog",
		Subsystem: "rpc",
		Name:      "duration_seconds",
		Help:      "RPC handler latency in seconds",
		Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"procedure"})

	// practicesCreated counts stored practices.
	// Labels: stroke
	practicesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swimlog",
		Subsystem: "practices",
		Name:      "created_total",
		Help:      "Total practices created by main stroke",
	}, []string{"stroke"})

	lastPracticeCreated = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "swimlog",
		Subsystem: "practices",
		Name:      "last_created_timestamp_seconds",
		Help:      "Unix timestamp of the most recently created practice.",
	})
)

// RecordRequest observes one finished RPC call.
func RecordRequest(procedure string, status int, elapsed time.Duration) {
	rpcRequests.WithLabelValues(procedure, strconv.Itoa(status)).Inc()
	rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// RecordPracticeCreated counts a stored practice and moves the creation
// watermark.
func RecordPracticeCreated(rec *practice.Record) {
	if rec == nil {
		return
	}
	practicesCreated.WithLabelValues(rec.MainStroke.String()).Inc()
	if !rec.CreatedAt.IsZero() {
		lastPracticeCreated.Set(float64(rec.CreatedAt.Unix()))
	}
}
