package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ansg191/devassist/internal/config"
	"github.com/ansg191/devassist/internal/handler"
	"github.com/ansg191/devassist/internal/middleware"
)

// SetupMux wires handlers with the full middleware chain.
func SetupMux(relay handler.Relay, cfg config.ServerConfig) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handler.Root())
	mux.HandleFunc("GET /health", handler.Health())
	mux.HandleFunc("POST /chat", handler.Chat(relay, cfg.ErrorStatusMode))
	mux.HandleFunc("POST /analyze", handler.Analyze(relay, cfg.ErrorStatusMode))
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.Chain(mux, cfg.CORSOrigin)
}
