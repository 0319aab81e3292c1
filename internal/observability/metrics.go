package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "patrolsdk",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Requests issued, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "patrolsdk",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Request round-trip duration in seconds; asynchronous navigation submissions record zero.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	frames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "patrolsdk",
			Subsystem: "transport",
			Name:      "frames_total",
			Help:      "Frames carried, by direction.",
		},
		[]string{"direction"},
	)
	decodeErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "patrolsdk",
			Subsystem: "transport",
			Name:      "decode_errors_total",
			Help:      "Inbound frames that failed to decode.",
		},
	)
	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "patrolsdk",
			Subsystem: "client",
			Name:      "rate_limited_total",
			Help:      "Speed commands rejected by the 200ms rate gate.",
		},
	)
	callbackPanics = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "patrolsdk",
			Subsystem: "client",
			Name:      "callback_panics_total",
			Help:      "User callbacks that panicked and were recovered.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requests, requestDuration, frames, decodeErrors, rateLimited, callbackPanics)
	})
}

func RecordRequest(kind, outcome string, duration time.Duration) {
	RegisterMetrics()
	requests.WithLabelValues(kind, outcome).Inc()
	requestDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func RecordFrame(direction string) {
	RegisterMetrics()
	frames.WithLabelValues(direction).Inc()
}

func RecordDecodeError() {
	RegisterMetrics()
	decodeErrors.Inc()
}

func RecordRateLimited() {
	RegisterMetrics()
	rateLimited.Inc()
}

func RecordCallbackPanic() {
	RegisterMetrics()
	callbackPanics.Inc()
}
