package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request handling time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	httpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP errors",
		},
		[]string{"method", "endpoint", "status"},
	)

	catalogSongs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_songs",
			Help: "Number of songs in the current catalog",
		},
	)

	gameRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "game_rooms",
			Help: "Number of rooms currently held in memory",
		},
	)

	libraryScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_scans_total",
			Help: "Total number of library scan passes",
		},
		[]string{"result"},
	)
)

// RecordHTTPMetrics records one handled HTTP request.
func RecordHTTPMetrics(method, endpoint string, status int, duration time.Duration) {
	strStatus := strconv.Itoa(status)

	httpRequestsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, strStatus).Observe(duration.Seconds())

	if status >= 400 {
		httpErrorsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	}
}

func SetCatalogSongs(count int) {
	catalogSongs.Set(float64(count))
}

func SetGameRooms(count int) {
	gameRooms.Set(float64(count))
}

func RecordLibraryScan(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	libraryScansTotal.WithLabelValues(result).Inc()
}
