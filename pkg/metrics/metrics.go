// Package metrics exposes Prometheus instruments for the generation chain.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

const namespace = "logo_image_ai"

// Stage labels
const (
	StageRelay    = "relay"
	StageGateway  = "gateway"
	StageProvider = "provider"
	StageComposer = "composer"
)

const outcomeSuccess = "success"

var (
	stageRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_requests_total",
			Help:      "Total number of requests handled by each chain stage",
		},
		[]string{"stage", "outcome"},
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each chain stage",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"stage"},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveStage records the outcome and latency of one stage invocation
func ObserveStage(stage string, start time.Time, err error) {
	stageRequests.WithLabelValues(stage, Outcome(err)).Inc()
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// ObserveHTTP records a served HTTP request
func ObserveHTTP(method, route string, status int) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Outcome maps an error to its outcome label
func Outcome(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	if genErr, ok := types.AsGenerationError(err); ok {
		return string(genErr.Kind)
	}
	return string(types.KindUpstreamFailure)
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
