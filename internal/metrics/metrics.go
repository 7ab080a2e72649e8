package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal - счётчик HTTP-запросов по методу и статусу ответа.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontend_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "status"},
	)

	// RequestDuration - длительность обработки запроса в секундах.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "frontend_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method"},
	)
)

// Handler отдаёт /metrics в текстовом формате Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware записывает счётчик и длительность каждого запроса.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(recorder.status)).Inc()
		RequestDuration.WithLabelValues(r.Method).Observe(time.Since(started).Seconds())
	})
}
