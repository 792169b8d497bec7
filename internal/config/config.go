package config

import (
	"fmt"
	"strings"

	"github.com/skillquest/learning-service/internal/auth"
	"github.com/skillquest/learning-service/internal/envconfig"
)

// Config encapsulates the runtime configuration for the learning service.
type Config struct {
	Port         string
	GCPProjectID string
	DataStore    DataStore
	Auth         AuthConfig
	Firestore    FirestoreConfig
	YouTube      YouTubeConfig
	Tutor        TutorConfig
}

// DataStore enumerates supported persistence backends.
type DataStore string

const (
	// DataStoreMemory stores accounts and progress in-memory (useful for local development/testing).
	DataStoreMemory DataStore = "memory"
	// DataStoreFirestore stores accounts and progress in Google Cloud Firestore.
	DataStoreFirestore DataStore = "firestore"
)

// AuthConfig stores authentication middleware setup.
type AuthConfig struct {
	Mode   auth.Mode
	Secret string
	Issuer string
}

// FirestoreConfig tailors Firestore client behavior.
type FirestoreConfig struct {
	EmulatorHost string
}

// YouTubeConfig holds the Data API credentials for video recommendations.
type YouTubeConfig struct {
	APIKey string
}

// TutorConfig holds the Gemini settings for the AI tutor.
type TutorConfig struct {
	APIKey string
	Model  string
}

// Load reads environment variables into Config with validation.
func Load() (Config, error) {
	cfg := Config{
		Port:         envconfig.Get("PORT", "8080"),
		GCPProjectID: envconfig.Get("GCP_PROJECT_ID", ""),
		DataStore:    DataStore(strings.ToLower(envconfig.Get("DATASTORE", string(DataStoreMemory)))),
		Auth: AuthConfig{
			Mode:   auth.Mode(strings.ToLower(envconfig.Get("AUTH_MODE", string(auth.ModeNoop)))),
			Secret: envconfig.Get("AUTH_SECRET", ""),
			Issuer: envconfig.Get("AUTH_ISSUER", "skillquest"),
		},
		Firestore: FirestoreConfig{
			EmulatorHost: envconfig.Get("FIRESTORE_EMULATOR_HOST", ""),
		},
		YouTube: YouTubeConfig{
			APIKey: envconfig.Get("YOUTUBE_API_KEY", ""),
		},
		Tutor: TutorConfig{
			APIKey: envconfig.Get("GEMINI_API_KEY", ""),
			Model:  envconfig.Get("GEMINI_MODEL", "gemini-2.0-flash"),
		},
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return fmt.Errorf("port must be specified")
	}

	switch cfg.DataStore {
	case DataStoreMemory:
		// no-op
	case DataStoreFirestore:
		if cfg.GCPProjectID == "" {
			return fmt.Errorf("gcp project id required when datastore=firestore")
		}
	default:
		return fmt.Errorf("unsupported datastore: %s", cfg.DataStore)
	}

	switch cfg.Auth.Mode {
	case auth.ModeToken:
		if cfg.Auth.Secret == "" {
			return fmt.Errorf("AUTH_SECRET is required when AUTH_MODE=token")
		}
	case auth.ModeNoop:
		// no-op
	default:
		return fmt.Errorf("unsupported auth mode: %s", cfg.Auth.Mode)
	}

	return nil
}
