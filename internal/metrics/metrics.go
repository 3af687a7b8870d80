// Package metrics owns the service's Prometheus collectors. Each Metrics value
// carries its own registry so tests and parallel servers never collide on the
// global default registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the set of collectors exported on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests *prometheus.CounterVec
	// HTTPDuration records request durations in seconds.
	HTTPDuration *prometheus.HistogramVec

	// RateQuotes counts rate quotes by outcome: available, unavailable, unserviceable.
	RateQuotes *prometheus.CounterVec
	// Bookings counts booking attempts by outcome.
	Bookings *prometheus.CounterVec
	// TrackingPushes counts tracking updates sent to the commerce platform by outcome.
	TrackingPushes *prometheus.CounterVec
	// ReservationsExpired counts stale pending reservations removed by the sweeper.
	ReservationsExpired prometheus.Counter
}

// New creates the collectors and registers them, plus the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RateQuotes: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "courier_rate_quotes_total", Help: "Rate quotes answered, by outcome."},
			[]string{"outcome"},
		),
		Bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "courier_bookings_total", Help: "Courier booking attempts, by outcome."},
			[]string{"outcome"},
		),
		TrackingPushes: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "tracking_pushes_total", Help: "Tracking updates pushed to the commerce platform, by outcome."},
			[]string{"outcome"},
		),
		ReservationsExpired: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "reservations_expired_total", Help: "Stale pending reservations removed."},
		),
	}

	m.Registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.RateQuotes,
		m.Bookings,
		m.TrackingPushes,
		m.ReservationsExpired,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Middleware records HTTPRequests and HTTPDuration for every echo request,
// labelled by route pattern rather than raw path.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			m.HTTPRequests.WithLabelValues(c.Request().Method, path, status).Inc()
			m.HTTPDuration.WithLabelValues(c.Request().Method, path, status).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// Outcome labels shared by the domain counters.
const (
	OutcomeAvailable     = "available"
	OutcomeUnavailable   = "unavailable"
	OutcomeUnserviceable = "unserviceable"
	OutcomeBooked        = "booked"
	OutcomeNotSelected   = "not_selected"
	OutcomeDuplicate     = "duplicate"
	OutcomeFailed        = "failed"
	OutcomeSucceeded     = "succeeded"
)

// ObserveRateQuote is safe to call on a nil *Metrics.
func (m *Metrics) ObserveRateQuote(outcome string) {
	if m != nil {
		m.RateQuotes.WithLabelValues(outcome).Inc()
	}
}

// ObserveBooking is safe to call on a nil *Metrics.
func (m *Metrics) ObserveBooking(outcome string) {
	if m != nil {
		m.Bookings.WithLabelValues(outcome).Inc()
	}
}

// ObserveTrackingPush is safe to call on a nil *Metrics.
func (m *Metrics) ObserveTrackingPush(outcome string) {
	if m != nil {
		m.TrackingPushes.WithLabelValues(outcome).Inc()
	}
}

// ObserveExpired is safe to call on a nil *Metrics.
func (m *Metrics) ObserveExpired(n int) {
	if m != nil && n > 0 {
		m.ReservationsExpired.Add(float64(n))
	}
}
