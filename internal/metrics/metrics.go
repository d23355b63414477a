// Package metrics exposes Prometheus instruments for the advisor and its HTTP surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AdvicePasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roast_advice_passes_total",
			Help: "Total number of advisor passes by resulting action",
		},
		[]string{"action", "severity"},
	)
	AdviceBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roast_advice_blocked_total",
			Help: "Total number of advisor passes blocked, by blocker type",
		},
		[]string{"blocker"},
	)
	AdviceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roast_advice_duration_seconds",
			Help:    "Time spent loading and evaluating one advisor pass",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)
	ReadingsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roast_readings_total",
			Help: "Total number of meat temperature reading mutations",
		},
		[]string{"op"},
	)
	OvenChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roast_oven_changes_total",
			Help: "Total number of recorded oven events by kind",
		},
		[]string{"kind"},
	)
	CurrentMeatTemp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roast_meat_temp_fahrenheit",
			Help: "Latest meat temperature reading in Fahrenheit",
		},
	)
	HeatingRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roast_heating_rate_fahrenheit_per_hour",
			Help: "Latest smoothed heating rate",
		},
	)
	ScheduleVariance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roast_schedule_variance_minutes",
			Help: "Predicted minus desired finish time; positive is late",
		},
	)
	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roast_websocket_clients",
			Help: "Number of connected advice stream clients",
		},
	)
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roast_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roast_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// RecordAdvice counts one advisor pass. blocker is empty when a recommendation was produced.
func RecordAdvice(action, severity, blocker string, duration time.Duration) {
	AdvicePasses.WithLabelValues(action, severity).Inc()
	if blocker != "" {
		AdviceBlocked.WithLabelValues(blocker).Inc()
	}
	AdviceDuration.Observe(duration.Seconds())
}

// UpdateCookState publishes the latest derived values; nil leaves a gauge untouched.
func UpdateCookState(currentTemp, rate *float64, varianceMinutes *int) {
	if currentTemp != nil {
		CurrentMeatTemp.Set(*currentTemp)
	}
	if rate != nil {
		HeatingRate.Set(*rate)
	}
	if varianceMinutes != nil {
		ScheduleVariance.Set(float64(*varianceMinutes))
	}
}

func RecordReading(op string) {
	ReadingsRecorded.WithLabelValues(op).Inc()
}

func RecordOvenChange(kind string) {
	OvenChanges.WithLabelValues(kind).Inc()
}

func UpdateWebsocketClients(delta int) {
	WebsocketClients.Add(float64(delta))
}

func RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
