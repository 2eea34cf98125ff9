package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iolink_requests_total",
			Help: "Total HTTP requests",
		}, []string{"code"},
	)
	Latency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "iolink_request_duration_seconds",
		Help:    "Request latency seconds",
		Buckets: prometheus.DefBuckets,
	})
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "iolink_in_flight",
		Help: "In-flight HTTP requests",
	})
	RequestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iolink_request_errors_total",
			Help: "Requests answered 404 by failure type",
		}, []string{"type"},
	)
	Redirects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iolink_redirects_total",
			Help: "Fallback redirects by detected platform",
		}, []string{"platform"},
	)
	LinksBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iolink_links_built_total",
			Help: "Universal links built by feature",
		}, []string{"feature"},
	)
)

// Error types for RequestErrors.
const (
	ErrValidation = "validation"
	ErrLinkBuild  = "link_build"
	ErrQRCode     = "qrcode"
)

func init() {
	prometheus.MustRegister(RequestsTotal, Latency, InFlight, RequestErrors, Redirects, LinksBuilt)
}

func MetricsHandler() http.Handler { return promhttp.Handler() }

type rec struct {
	http.ResponseWriter
	code int
}

func (r *rec) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func Measure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		InFlight.Inc()
		defer InFlight.Dec()

		rr := &rec{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rr, r)

		Latency.Observe(time.Since(start).Seconds())
		RequestsTotal.WithLabelValues(strconv.Itoa(rr.code)).Inc()
	})
}
