// Package factory builds platform components from configuration.
package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/strelka-labs/meeting-assistant/internal/config"
	"github.com/strelka-labs/meeting-assistant/internal/geocode"
	"github.com/strelka-labs/meeting-assistant/internal/intent"
	storepkg "github.com/strelka-labs/meeting-assistant/internal/store"
	storepg "github.com/strelka-labs/meeting-assistant/internal/store/postgres"
	storesqlite "github.com/strelka-labs/meeting-assistant/internal/store/sqlite"
)

// NewStore returns the store selected by cfg.DBDriver.
func NewStore(cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		log.Info().Str("path", cfg.SQLitePath).Msg("opening sqlite store")
		return storesqlite.New(cfg.SQLitePath)
	case "postgres":
		log.Info().Msg("opening postgres store")
		return storepg.New(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

// NewClassifier builds the intent classifier from configuration.
func NewClassifier(cfg *config.Config) (intent.Classifier, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("ASSISTANT_LLM_API_KEY is required")
	}
	return intent.NewOpenAIClassifier(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel), nil
}

// NewGeocoder builds the geocoder client, or nil when no API key is
// configured; replies then fall back to plain address links.
func NewGeocoder(cfg *config.Config, log zerolog.Logger) geocode.Geocoder {
	if cfg.GeocoderAPIKey == "" {
		log.Warn().Msg("no geocoder API key configured; route links will be address-only")
		return nil
	}
	return geocode.NewYandexClient(cfg.GeocoderURL, cfg.GeocoderAPIKey)
}
