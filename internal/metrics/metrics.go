// Package metrics - prometheus коллекторы приложения на отдельном реестре.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hostmarket"

var (
	// Registry - реестр приложения, отдается на /metrics
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	trackingEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracking",
			Name:      "events_total",
			Help:      "View/click events by outcome (accepted, dropped, stored, failed).",
		},
		[]string{"kind", "metric", "outcome"},
	)

	sweepRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "rows_total",
			Help:      "Rows processed by the expiry sweep.",
		},
		[]string{"entity", "result"},
	)

	sweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "run_duration_seconds",
			Help:      "Duration of expiry sweep runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		trackingEvents,
		sweepRows,
		sweepDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler отдает метрики реестра
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveHTTP - path должен быть шаблоном маршрута, а не сырым URL
func ObserveHTTP(method, path string, status int, duration time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordTracking(kind, metric, outcome string) {
	trackingEvents.WithLabelValues(kind, metric, outcome).Inc()
}

func RecordSweep(entity, result string, n int) {
	if n <= 0 {
		return
	}
	sweepRows.WithLabelValues(entity, result).Add(float64(n))
}

func ObserveSweep(duration time.Duration) {
	sweepDuration.Observe(duration.Seconds())
}
