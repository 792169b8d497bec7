// Package httpapi exposes the SkillQuest platform API: auth, progress sync,
// video recommendations, and the AI tutor.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skillquest/learning-service/internal/account"
	"github.com/skillquest/learning-service/internal/auth"
	"github.com/skillquest/learning-service/internal/progress"
	"github.com/skillquest/learning-service/internal/tutor"
	"github.com/skillquest/learning-service/internal/youtube"
)

const (
	serviceTimeout   = 8 * time.Second
	maxJSONBodyBytes = 64 * 1024
)

// TokenIssuer mints session tokens for authenticated accounts. May be nil,
// in which case the account ID doubles as the token (noop auth mode).
type TokenIssuer interface {
	IssueToken(userID, username string) (string, error)
}

// Handler bundles the services the API fronts.
type Handler struct {
	Accounts account.Service
	Progress progress.Service
	Tutor    *tutor.Service
	Videos   *youtube.Service
	Issuer   TokenIssuer
	Logger   *slog.Logger
}

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// RegisterAuthRoutes registers the unauthenticated auth endpoints.
func (h *Handler) RegisterAuthRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Post("/signup", h.signup())
		r.Post("/login", h.login())
	})
}

// RegisterRoutes registers the endpoints that require an authenticated user.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/progress", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Get("/", h.getProgress())
		r.Post("/update", h.updateProgress())
		r.Post("/complete-level", h.completeLevel())
	})

	r.Route("/api/badges", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.Post("/earn", h.earnBadge())
	})

	r.Route("/api/youtube", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.Get("/recommendations", h.recommendations())
	})

	r.Route("/api/tutor", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.Post("/hint", h.tutorHint())
		r.Post("/analyze", h.tutorAnalyze())
	})
}

func (h *Handler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input account.SignupInput
		if !decodeBody(w, r, &input) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		acct, err := h.Accounts.Signup(ctx, input)
		if errors.Is(err, account.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			if errors.Is(err, account.ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "invalid signup input")
				return
			}
			logRequestError(r.Context(), h.Logger, "signup failed", err, "")
			writeError(w, http.StatusInternalServerError, "failed to create account")
			return
		}

		token, err := h.issueToken(acct)
		if err != nil {
			logRequestError(r.Context(), h.Logger, "token issue failed", err, acct.ID)
			writeError(w, http.StatusInternalServerError, "failed to create session")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"user":  userPayload{ID: acct.ID, Username: acct.Username, Email: acct.Email},
			"token": token,
		})
	}
}

func (h *Handler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input account.LoginInput
		if !decodeBody(w, r, &input) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		acct, err := h.Accounts.Login(ctx, input)
		if errors.Is(err, account.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if err != nil {
			logRequestError(r.Context(), h.Logger, "login failed", err, "")
			writeError(w, http.StatusInternalServerError, "failed to log in")
			return
		}

		token, err := h.issueToken(acct)
		if err != nil {
			logRequestError(r.Context(), h.Logger, "token issue failed", err, acct.ID)
			writeError(w, http.StatusInternalServerError, "failed to create session")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"user":  userPayload{ID: acct.ID, Username: acct.Username, Email: acct.Email},
			"token": token,
		})
	}
}

func (h *Handler) getProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authedUserID(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		overview, err := h.Progress.Overview(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), h.Logger, "failed to load progress", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to load progress")
			return
		}
		writeJSON(w, http.StatusOK, overview)
	}
}

func (h *Handler) updateProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authedUserID(w, r)
		if !ok {
			return
		}

		var input progress.UpdateInput
		if !decodeBody(w, r, &input) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		record, err := h.Progress.UpdateRecord(ctx, userID, input)
		if err != nil {
			if errors.Is(err, progress.ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "invalid progress update")
				return
			}
			logRequestError(r.Context(), h.Logger, "failed to update progress", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to update progress")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"progress": record})
	}
}

func (h *Handler) completeLevel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authedUserID(w, r)
		if !ok {
			return
		}

		var input progress.CompleteLevelInput
		if !decodeBody(w, r, &input) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		if err := h.Progress.CompleteLevel(ctx, userID, input); err != nil {
			if errors.Is(err, progress.ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "invalid level completion")
				return
			}
			logRequestError(r.Context(), h.Logger, "failed to record completion", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to record completion")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"levelId": input.LevelID, "recorded": true})
	}
}

func (h *Handler) earnBadge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authedUserID(w, r)
		if !ok {
			return
		}

		var input progress.BadgeInput
		if !decodeBody(w, r, &input) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		badge, err := h.Progress.EarnBadge(ctx, userID, input)
		if err != nil {
			if errors.Is(err, progress.ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "invalid badge")
				return
			}
			logRequestError(r.Context(), h.Logger, "failed to record badge", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to record badge")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"badge": badge})
	}
}

func (h *Handler) recommendations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authedUserID(w, r)
		if !ok {
			return
		}

		topic := strings.TrimSpace(r.URL.Query().Get("topic"))
		if topic == "" {
			writeError(w, http.StatusBadRequest, "topic query parameter is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		videos, err := h.Videos.Recommend(ctx, topic, 0)
		if err != nil {
			logRequestError(r.Context(), h.Logger, "failed to fetch recommendations", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to fetch recommendations")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"topic": topic, "videos": videos})
	}
}

func (h *Handler) tutorHint() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authedUserID(w, r)
		if !ok {
			return
		}

		var req tutor.HintRequest
		if !decodeBody(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		hint, err := h.Tutor.Hint(ctx, req)
		if errors.Is(err, tutor.ErrEmptyQuestion) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			logRequestError(r.Context(), h.Logger, "failed to generate hint", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to generate hint")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"hint": hint})
	}
}

func (h *Handler) tutorAnalyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authedUserID(w, r)
		if !ok {
			return
		}

		var req tutor.AnalysisRequest
		if !decodeBody(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		summary, err := h.Tutor.Analyze(ctx, req)
		if err != nil {
			logRequestError(r.Context(), h.Logger, "failed to analyze progress", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to analyze progress")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"analysis": summary})
	}
}

func (h *Handler) issueToken(acct account.Account) (string, error) {
	if h.Issuer == nil {
		return acct.ID, nil
	}
	return h.Issuer.IssueToken(acct.ID, acct.Username)
}

func authedUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user.UserID == "" {
		writeError(w, http.StatusUnauthorized, "missing user ID")
		return "", false
	}
	return user.UserID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
