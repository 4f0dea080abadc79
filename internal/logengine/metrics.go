package logengine

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nockpoint/nockit/internal/utils/logger"
)

var (
	followLinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nockit_follow_lines_total",
			Help: "Total lines emitted by follow mode, by parsed level",
		},
		[]string{"level"},
	)
	followBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nockit_follow_bytes_total",
			Help: "Total bytes emitted by follow mode",
		},
	)
)

// FollowMetrics serves Prometheus counters for a long-running follow session.
type FollowMetrics struct {
	server *http.Server
}

// NewFollowMetrics creates the exporter for the given listen address.
func NewFollowMetrics(addr string) *FollowMetrics {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &FollowMetrics{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Observe records one emitted line. The level label comes from the entry
// parser, so unparseable lines are visibly counted as UNKNOWN.
func (m *FollowMetrics) Observe(line string) {
	entry := ParseLine(line)
	followLinesTotal.WithLabelValues(entry.Level).Inc()
	followBytesTotal.Add(float64(len(line) + 1))
}

// Start serves /metrics until Stop or listener failure.
func (m *FollowMetrics) Start(ctx context.Context) {
	go func() {
		logger.Get(ctx).Infof("Metrics server listening on %s", m.server.Addr)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Get(ctx).Warnf("Metrics server stopped: %v", err)
		}
	}()
}

// Stop shuts the listener down, waiting briefly for in-flight scrapes.
func (m *FollowMetrics) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.server.Shutdown(ctx)
}
