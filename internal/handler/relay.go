package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ansg191/devassist/internal/config"
	"github.com/ansg191/devassist/internal/gateway"
	"github.com/ansg191/devassist/internal/llm"
)

// Relay is the subset of the gateway the HTTP boundary needs.
type Relay interface {
	Chat(ctx context.Context, message string) gateway.Result
	Analyze(ctx context.Context, message string) gateway.Result
}

type messageRequest struct {
	Message *string `json:"message"`
}

func Chat(relay Relay, mode config.ErrorStatusMode) http.HandlerFunc {
	return relayHandler(relay.Chat, mode)
}

func Analyze(relay Relay, mode config.ErrorStatusMode) http.HandlerFunc {
	return relayHandler(relay.Analyze, mode)
}

func relayHandler(call func(context.Context, string) gateway.Result, mode config.ErrorStatusMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusUnprocessableEntity, "invalid JSON body")
			return
		}
		if req.Message == nil {
			writeError(w, http.StatusUnprocessableEntity, "message is required")
			return
		}

		res := call(r.Context(), *req.Message)
		writeJSON(w, statusFor(mode, res.Err), res.Payload())
	}
}

// statusFor maps a handler result onto an HTTP status. In compat mode every
// result is 200 and failure is carried only by the payload shape.
func statusFor(mode config.ErrorStatusMode, err error) int {
	if err == nil || mode != config.ErrorStatusHTTP {
		return http.StatusOK
	}
	switch {
	case llm.IsConfigError(err):
		return http.StatusServiceUnavailable
	case llm.IsProviderError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
