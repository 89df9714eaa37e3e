package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/strelka-labs/meeting-assistant/internal/api"
	"github.com/strelka-labs/meeting-assistant/internal/assistant"
	"github.com/strelka-labs/meeting-assistant/internal/config"
	"github.com/strelka-labs/meeting-assistant/internal/platform/factory"
	"github.com/strelka-labs/meeting-assistant/internal/platform/logger"
)

func main() {
	log := logger.New("assistant-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("llm_model", cfg.LLMModel).
		Msg("Assistant service starting…")

	st, err := factory.NewStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Store unavailable")
	}

	classifier, err := factory.NewClassifier(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Classifier unavailable")
	}
	geocoder := factory.NewGeocoder(cfg, log)

	svc := assistant.NewService(st, classifier, geocoder, log)

	router := api.NewRouter(svc, st)
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server…")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
