package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Backend labels for the two backing services.
const (
	BackendSearchIndex = "search_index"
	BackendDataService = "data_service"
)

var backendRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "polisearch",
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backing-service calls in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"backend", "operation"},
)

func init() {
	prometheus.MustRegister(backendRequestDuration)
}

// ObserveBackend records the duration of one backing-service call.
func ObserveBackend(backend, operation string, d time.Duration) {
	backendRequestDuration.WithLabelValues(backend, operation).Observe(d.Seconds())
}
