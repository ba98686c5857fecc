package middleware

import (
	"net/http"
	"time"
)

const (
	maxBodyBytes   = 256 * 1024
	requestTimeout = 90 * time.Second
)

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → MaxBytes → Timeout → mux
func Chain(handler http.Handler, corsOrigin string) http.Handler {
	h := handler
	h = http.TimeoutHandler(h, requestTimeout, `{"error":"request timeout"}`)
	h = MaxBytes(maxBodyBytes)(h)
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	h = CORS(corsOrigin)(h)
	return h
}

// MaxBytes limits the request body to the specified number of bytes.
func MaxBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
