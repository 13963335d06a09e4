package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voiceforge/clone-client/internal/capture"
	"github.com/voiceforge/clone-client/internal/client"
	"github.com/voiceforge/clone-client/internal/config"
	"github.com/voiceforge/clone-client/internal/httpapi"
	"github.com/voiceforge/clone-client/internal/observability"
	"github.com/voiceforge/clone-client/internal/store"
	"github.com/voiceforge/clone-client/internal/voiceapi"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("port", cfg.Port).
		Str("voice_api_base_url", cfg.VoiceAPIBaseURL).
		Str("state_dir", cfg.StateDir).
		Str("log_level", cfg.LogLevel).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("Voice Clone Client starting")

	// Open the persisted state store (API key, cloned voice handle)
	st, err := store.Open(cfg.StateDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open state store")
	}

	// Wire the workflow controller
	recorder := capture.NewRecorder(cfg.CaptureSampleRate, cfg.CaptureMaxBytes, logger)
	apiClient := voiceapi.NewClient(cfg)
	controller := client.New(cfg, st, recorder, apiClient, logger)

	// Create HTTP server
	mux := http.NewServeMux()

	// Register workflow API routes (credential, capture, clone, speak)
	httpapi.NewHandler(controller, logger).Register(mux)

	// Health check endpoint
	mux.HandleFunc("/health", observability.HealthCheckHandler())

	// Readiness: the store must accept writes and the remote API base URL
	// must be configured. No remote call is made here; a bad credential only
	// surfaces when an operation uses it.
	storeCheck := func(ctx context.Context) (bool, error) {
		if err := st.Set("readinessProbe", time.Now().UTC().Format(time.RFC3339)); err != nil {
			return false, err
		}
		return true, nil
	}
	voiceAPICheck := func(ctx context.Context) (bool, error) {
		if cfg.VoiceAPIBaseURL == "" {
			return false, fmt.Errorf("voice API base URL not configured")
		}
		return true, nil
	}
	mux.HandleFunc("/ready", observability.ReadinessHandler(map[string]observability.HealthCheckFunc{
		"store":     storeCheck,
		"voice_api": voiceAPICheck,
	}))

	// Metrics endpoint (Prometheus)
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Msg("Prometheus metrics enabled at /metrics")
	}

	// Create HTTP server with timeouts. Write timeout stays generous because
	// /api/speak holds the response open for the full upstream synthesis.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("endpoint", fmt.Sprintf("ws://localhost:%s/api/capture/stream", cfg.Port)).
			Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
