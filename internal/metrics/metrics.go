package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cradle_http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cradle_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	GiftsReservedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cradle_gifts_reserved_total",
		Help: "Total successful gift reservations",
	})

	ReservationConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cradle_reservation_conflicts_total",
		Help: "Reservations rejected because the gift was no longer available",
	})

	ConfirmationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cradle_confirmations_total",
		Help: "Total attendance confirmation submissions",
	})
)

// Handler exposes the prometheus scrape endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
