package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"

	"github.com/skillquest/learning-service/internal/account"
	"github.com/skillquest/learning-service/internal/auth"
	"github.com/skillquest/learning-service/internal/config"
	"github.com/skillquest/learning-service/internal/httpapi"
	"github.com/skillquest/learning-service/internal/logging"
	"github.com/skillquest/learning-service/internal/progress"
	"github.com/skillquest/learning-service/internal/server"
	"github.com/skillquest/learning-service/internal/tutor"
	"github.com/skillquest/learning-service/internal/youtube"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger("learning-service")

	accountRepo, progressRepo, cleanup, err := newRepositories(ctx, cfg)
	if err != nil {
		panic(fmt.Errorf("repository init error: %w", err))
	}
	defer cleanup()

	accounts, err := account.NewService(accountRepo, account.NewSystemClock(), account.NewUUIDGenerator())
	if err != nil {
		panic(fmt.Errorf("account service init error: %w", err))
	}

	progressService, err := progress.NewService(progressRepo, progress.NewSystemClock())
	if err != nil {
		panic(fmt.Errorf("progress service init error: %w", err))
	}

	videos, err := youtube.NewService(ctx, cfg.YouTube.APIKey, logger)
	if err != nil {
		panic(fmt.Errorf("youtube service init error: %w", err))
	}

	tutorService := tutor.NewService(newAssistant(ctx, cfg, logger), logger)
	defer tutorService.Close()

	verifier, err := auth.NewVerifier(auth.Config{
		Mode:   cfg.Auth.Mode,
		Secret: cfg.Auth.Secret,
		Issuer: cfg.Auth.Issuer,
	})
	if err != nil {
		panic(fmt.Errorf("auth verifier error: %w", err))
	}

	handler := &httpapi.Handler{
		Accounts: accounts,
		Progress: progressService,
		Tutor:    tutorService,
		Videos:   videos,
		Logger:   logger,
	}
	if cfg.Auth.Mode == auth.ModeToken {
		issuer, err := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer)
		if err != nil {
			panic(fmt.Errorf("token issuer error: %w", err))
		}
		handler.Issuer = issuer
	}

	router := server.NewRouter("learning-service", func(r chi.Router) {
		handler.RegisterAuthRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(verifier))
			handler.RegisterRoutes(r)
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := server.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

func newRepositories(ctx context.Context, cfg config.Config) (account.Repository, progress.Repository, func(), error) {
	switch cfg.DataStore {
	case config.DataStoreFirestore:
		if cfg.Firestore.EmulatorHost != "" {
			if err := os.Setenv("FIRESTORE_EMULATOR_HOST", cfg.Firestore.EmulatorHost); err != nil {
				return nil, nil, nil, fmt.Errorf("set FIRESTORE_EMULATOR_HOST: %w", err)
			}
		}

		client, err := firestore.NewClient(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("firestore client: %w", err)
		}

		cleanup := func() {
			_ = client.Close()
		}
		return account.NewFirestoreRepository(client), progress.NewFirestoreRepository(client), cleanup, nil
	default:
		return account.NewMemoryRepository(), progress.NewMemoryRepository(), func() {}, nil
	}
}

func newAssistant(ctx context.Context, cfg config.Config, logger *slog.Logger) tutor.Assistant {
	if cfg.Tutor.APIKey == "" {
		return nil
	}
	assistant, err := tutor.NewGeminiAssistant(ctx, tutor.AssistantConfig{
		APIKey: cfg.Tutor.APIKey,
		Model:  cfg.Tutor.Model,
	})
	if err != nil {
		logger.Warn("gemini assistant unavailable, using rule-based tutor", "error", err.Error())
		return nil
	}
	return assistant
}
