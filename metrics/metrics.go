// Package metrics declares the Prometheus collectors shared by all services.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "route"},
	)

	DBOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sensor_db_errors_total",
			Help: "Total number of failed sensor store operations",
		},
		[]string{"operation"},
	)

	SensorReadingsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sensor_readings_saved_total",
			Help: "Total number of sensor readings written",
		},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_predictions_total",
			Help: "Total number of sentiment predictions by label",
		},
		[]string{"label"},
	)

	PredictionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_prediction_errors_total",
			Help: "Total number of failed sentiment predictions",
		},
	)
)

// RecordHTTPRequest records one finished request.
func RecordHTTPRequest(service, method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(service, method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(service, method, route).Observe(elapsed.Seconds())
}
