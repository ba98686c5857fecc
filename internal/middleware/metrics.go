package middleware

import (
	"net/http"
	"strconv"

	"github.com/ansg191/devassist/internal/metrics"
)

// Metrics records request count by method, route pattern, and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RequestsTotal.WithLabelValues(r.Method, routeLabel(r.URL.Path), strconv.Itoa(sw.status)).Inc()
	})
}

// routeLabel keeps label cardinality bounded for unknown paths.
func routeLabel(path string) string {
	switch path {
	case "/", "/health", "/chat", "/analyze", "/metrics":
		return path
	default:
		return "other"
	}
}
