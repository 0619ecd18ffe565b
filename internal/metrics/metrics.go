package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private prometheus registry for the service.
// All methods are safe on a nil receiver so callers can skip metrics in tests.
type Recorder struct {
	registry *prometheus.Registry

	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	gamesCreated     prometheus.Counter
	ratingsSubmitted prometheus.Counter
}

// NewRecorder registers the service collectors plus the Go and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "games_created_total",
			Help: "Games added to the catalog.",
		}),
		ratingsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ratings_submitted_total",
			Help: "Ratings accepted.",
		}),
	}

	r.registry.MustRegister(
		r.requests,
		r.requestDuration,
		r.gamesCreated,
		r.ratingsSubmitted,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveRequest records one finished HTTP request.
func (r *Recorder) ObserveRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// GameCreated counts a new catalog entry.
func (r *Recorder) GameCreated() {
	if r == nil {
		return
	}
	r.gamesCreated.Inc()
}

// RatingSubmitted counts an accepted rating.
func (r *Recorder) RatingSubmitted() {
	if r == nil {
		return
	}
	r.ratingsSubmitted.Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}
