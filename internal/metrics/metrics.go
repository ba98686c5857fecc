package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devassist_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// GenerationDuration tracks gateway generation latency per kind and model.
	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devassist_generation_duration_seconds",
		Help:    "Time spent waiting on the generative model.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"kind", "model"})

	// GenerationErrors counts gateway results that carried an error.
	GenerationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devassist_generation_errors_total",
		Help: "Gateway calls that returned an error payload.",
	}, []string{"kind", "class"})

	// GatewayAvailable is 1 when the gateway generator was configured at startup.
	GatewayAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "devassist_gateway_available",
		Help: "Whether the gateway generator is configured (1) or not (0).",
	}, []string{"model"})
)
