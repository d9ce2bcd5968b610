package middleware

import (
	"net/http"
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
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	webhookResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_results_total",
			Help: "Total number of processed webhook events by outcome",
		},
		[]string{"status"},
	)

	leadsStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_stored_total",
			Help: "Total number of lead rows written to the sheet",
		},
		[]string{"op"},
	)

	leadEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_emails_total",
			Help: "Total number of lead notification emails by outcome",
		},
		[]string{"status"},
	)

	sheetErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheets_errors_total",
			Help: "Total number of Google Sheets errors",
		},
		[]string{"operation"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordWebhookResult(status string) {
	webhookResults.WithLabelValues(status).Inc()
}

func RecordLeadStored(op string) {
	leadsStored.WithLabelValues(op).Inc()
}

func RecordLeadEmail(status string) {
	leadEmails.WithLabelValues(status).Inc()
}

func RecordSheetError(operation string) {
	sheetErrors.WithLabelValues(operation).Inc()
}
