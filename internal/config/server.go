package config

import (
	"fmt"
	"os"
	"strconv"
)

// ErrorStatusMode selects how handler failures map onto HTTP status codes.
type ErrorStatusMode string

const (
	// ErrorStatusCompat answers 200 for every handler result; failure is
	// visible only in the payload's "error" key.
	ErrorStatusCompat ErrorStatusMode = "compat"
	// ErrorStatusHTTP answers 503 for configuration errors and 502 for
	// provider errors.
	ErrorStatusHTTP ErrorStatusMode = "http"
)

const (
	DefaultPort         = 8000
	DefaultCORSOrigin   = "http://localhost:5173"
	DefaultGatewayModel = "gemini/gemini-2.5-flash"
	DefaultTaskQueue    = "devassist"
)

// ServerConfig is read once from the environment at process start.
type ServerConfig struct {
	Port            int
	CORSOrigin      string
	GatewayModel    string
	ErrorStatusMode ErrorStatusMode
	TemporalAddress string
	TaskQueue       string
}

func LoadServerConfig() (ServerConfig, error) {
	cfg := ServerConfig{
		Port:            DefaultPort,
		CORSOrigin:      envOr("CORS_ORIGIN", DefaultCORSOrigin),
		GatewayModel:    envOr("GATEWAY_MODEL", DefaultGatewayModel),
		ErrorStatusMode: ErrorStatusMode(envOr("ERROR_STATUS_MODE", string(ErrorStatusCompat))),
		TemporalAddress: os.Getenv("TEMPORAL_ADDRESS"),
		TaskQueue:       envOr("TASK_QUEUE", DefaultTaskQueue),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return ServerConfig{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	switch cfg.ErrorStatusMode {
	case ErrorStatusCompat, ErrorStatusHTTP:
	default:
		return ServerConfig{}, fmt.Errorf("invalid ERROR_STATUS_MODE %q: expected %q or %q", cfg.ErrorStatusMode, ErrorStatusCompat, ErrorStatusHTTP)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
