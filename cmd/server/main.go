package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ansg191/devassist/internal/config"
	"github.com/ansg191/devassist/internal/gateway"
	"github.com/ansg191/devassist/internal/llm"
	"github.com/ansg191/devassist/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	model, err := llm.ParseModelRef(cfg.GatewayModel)
	if err != nil {
		log.Fatalf("invalid GATEWAY_MODEL: %v", err)
	}

	ctx := context.Background()
	gw := gateway.New(ctx, gateway.Config{Model: model})
	logAvailableModels(ctx, gw)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.SetupMux(gw, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr, "model", model.Raw, "cors_origin", cfg.CORSOrigin, "error_status_mode", cfg.ErrorStatusMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-done
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	slog.Info("server stopped")
}

// logAvailableModels prints the models the configured key can use for
// generation. Failure is only logged.
func logAvailableModels(ctx context.Context, gw *gateway.Gateway) {
	lister, ok := gw.Generator().(llm.ModelLister)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	names, err := lister.ListGenerateContentModels(ctx)
	if err != nil {
		slog.Warn("unable to list models", "error", err)
		return
	}
	slog.Info("available models", "count", len(names), "models", names)
}
