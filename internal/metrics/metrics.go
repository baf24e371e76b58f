package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes Prometheus metrics for inbound HTTP requests and the
// simulation loops.
type Collector struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	postsGenerated   prometheus.Counter
	engagementsTotal *prometheus.CounterVec
	tickErrors       *prometheus.CounterVec
	tickDuration     *prometheus.HistogramVec
}

// NewCollector constructs a collector with default histograms/counters.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "feedsim",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feedsim",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	postsGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "feedsim",
		Subsystem: "simulation",
		Name:      "posts_generated_total",
		Help:      "Total number of bot posts generated.",
	})

	engagementsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feedsim",
		Subsystem: "simulation",
		Name:      "engagements_total",
		Help:      "Total number of simulated engagements by type.",
	}, []string{"type"})

	tickErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feedsim",
		Subsystem: "simulation",
		Name:      "tick_errors_total",
		Help:      "Total number of failed simulation ticks by loop.",
	}, []string{"loop"})

	tickDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "feedsim",
		Subsystem: "simulation",
		Name:      "tick_duration_seconds",
		Help:      "Duration distribution of simulation ticks by loop.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"loop"})

	collectors := []prometheus.Collector{
		requestDuration, requestTotal,
		postsGenerated, engagementsTotal, tickErrors, tickDuration,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:         registry,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		postsGenerated:   postsGenerated,
		engagementsTotal: engagementsTotal,
		tickErrors:       tickErrors,
		tickDuration:     tickDuration,
	}, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler to record HTTP metrics.
func (c *Collector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)
		path := r.URL.Path

		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// PostGenerated records one generated bot post. Safe to call on a nil
// collector so engine components can run without metrics in tests.
func (c *Collector) PostGenerated() {
	if c == nil {
		return
	}
	c.postsGenerated.Inc()
}

// EngagementSimulated records one simulated engagement of the given type.
func (c *Collector) EngagementSimulated(engagementType string) {
	if c == nil {
		return
	}
	c.engagementsTotal.WithLabelValues(engagementType).Inc()
}

// TickError records a failed tick for the named loop.
func (c *Collector) TickError(loop string) {
	if c == nil {
		return
	}
	c.tickErrors.WithLabelValues(loop).Inc()
}

// ObserveTick records the duration of one tick for the named loop.
func (c *Collector) ObserveTick(loop string, duration time.Duration) {
	if c == nil {
		return
	}
	c.tickDuration.WithLabelValues(loop).Observe(duration.Seconds())
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack passes through to the underlying writer so WebSocket upgrades work
// behind the instrumentation middleware.
func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return hijacker.Hijack()
}
