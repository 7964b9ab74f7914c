// Package config reads runtime settings from the environment, after loading
// a .env file when one exists.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables.
const (
	EnvAPIURL            = "FORKIFY_API_URL"
	EnvAPIKey            = "FORKIFY_API_KEY"
	EnvRateLimit         = "FORKIFY_RATE_LIMIT"
	EnvFavorites         = "FORKIFY_FAVORITES"
	EnvFavoritesPath     = "FORKIFY_FAVORITES_PATH"
	EnvAzureSpeechKey    = "AZURE_SPEECH_KEY"
	EnvAzureSpeechRegion = "AZURE_SPEECH_REGION"
)

const (
	DefaultAPIURL    = "https://forkify-api.herokuapp.com/api"
	DefaultRateLimit = 2.0

	defaultFilePath   = ".forkify/favorites.yaml"
	defaultSQLitePath = ".forkify/favorites.db"
)

// Backend names a favorites persistence implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendFile, BackendSQLite, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("unknown favorites backend %q (want file, sqlite or memory)", s)
	}
}

// DefaultPath returns where the backend keeps its data when no path is set.
func (b Backend) DefaultPath() string {
	switch b {
	case BackendSQLite:
		return defaultSQLitePath
	case BackendFile:
		return defaultFilePath
	default:
		return ""
	}
}

// Config holds everything main needs to wire the application. Flags
// override these values.
type Config struct {
	API       APIConfig
	Favorites FavoritesConfig
	Speech    SpeechConfig
}

type APIConfig struct {
	BaseURL   string
	Key       string
	RateLimit float64 // requests per second, <= 0 means unlimited
}

type FavoritesConfig struct {
	Backend Backend
	Path    string
}

type SpeechConfig struct {
	AzureKey    string
	AzureRegion string
}

// Enabled reports whether TTS credentials are present.
func (s SpeechConfig) Enabled() bool {
	return s.AzureKey != "" && s.AzureRegion != ""
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	// A missing .env is normal; plain environment variables still apply.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() (*Config, error) {
	backend, err := ParseBackend(getEnv(EnvFavorites, string(BackendFile)))
	if err != nil {
		return nil, err
	}

	rate := DefaultRateLimit
	if v := os.Getenv(EnvRateLimit); v != "" {
		rate, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
	}

	return &Config{
		API: APIConfig{
			BaseURL:   getEnv(EnvAPIURL, DefaultAPIURL),
			Key:       getEnv(EnvAPIKey, ""),
			RateLimit: rate,
		},
		Favorites: FavoritesConfig{
			Backend: backend,
			Path:    getEnv(EnvFavoritesPath, backend.DefaultPath()),
		},
		Speech: SpeechConfig{
			AzureKey:    getEnv(EnvAzureSpeechKey, ""),
			AzureRegion: getEnv(EnvAzureSpeechRegion, ""),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
