// Package syncclient talks to the SkillQuest progress API on behalf of the
// progression store. It implements learning.Syncer.
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/skillquest/learning-service/internal/learning"
)

// Client is an HTTP client for the progress API. A bearer token is captured
// at login/signup and attached to every later call.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu    sync.RWMutex
	token string
}

// NewClient creates a progress API client. baseURL must be non-empty.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorBody) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

type userBody struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	User  userBody `json:"user"`
	Token string   `json:"token"`
}

type progressResponse struct {
	Progress struct {
		TotalXP       int    `json:"totalXP"`
		Level         int    `json:"level"`
		CurrentCourse string `json:"currentCourse"`
		CurrentLevel  string `json:"currentLevel"`
	} `json:"progress"`
	Badges []struct {
		ID          string     `json:"badgeId"`
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Icon        string     `json:"icon"`
		Rarity      string     `json:"rarity"`
		EarnedAt    *time.Time `json:"earnedAt"`
	} `json:"badges"`
	CompletedLevels []struct {
		LevelID string `json:"levelId"`
	} `json:"completedLevels"`
}

// Login authenticates and captures the session token. On a non-2xx response
// the server-supplied message is surfaced so a login form can display it.
func (c *Client) Login(ctx context.Context, username, password string) (learning.User, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &resp); err != nil {
		return learning.User{}, err
	}
	c.setToken(resp.Token)
	return learning.User{ID: resp.User.ID, Username: resp.User.Username, Email: resp.User.Email}, nil
}

// Signup registers an account and captures the session token.
func (c *Client) Signup(ctx context.Context, username, password, email string) (learning.User, error) {
	payload := map[string]string{"username": username, "password": password}
	if email != "" {
		payload["email"] = email
	}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", payload, &resp); err != nil {
		return learning.User{}, err
	}
	c.setToken(resp.Token)
	return learning.User{ID: resp.User.ID, Username: resp.User.Username, Email: resp.User.Email}, nil
}

// FetchProgress pulls the server's view of the learner's accomplishments.
func (c *Client) FetchProgress(ctx context.Context) (learning.RemoteProgress, error) {
	var resp progressResponse
	if err := c.do(ctx, http.MethodGet, "/api/progress", nil, &resp); err != nil {
		return learning.RemoteProgress{}, err
	}

	out := learning.RemoteProgress{
		TotalXP:       resp.Progress.TotalXP,
		Level:         resp.Progress.Level,
		CurrentCourse: resp.Progress.CurrentCourse,
		CurrentLevel:  resp.Progress.CurrentLevel,
	}
	for _, b := range resp.Badges {
		out.Badges = append(out.Badges, learning.Badge{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Icon:        b.Icon,
			Rarity:      learning.Rarity(b.Rarity),
			EarnedAt:    b.EarnedAt,
		})
	}
	for _, cl := range resp.CompletedLevels {
		out.CompletedLevels = append(out.CompletedLevels, cl.LevelID)
	}
	return out, nil
}

// PushLevelCompletion records a level completion server-side.
func (c *Client) PushLevelCompletion(ctx context.Context, completion learning.LevelCompletion) error {
	payload := map[string]any{
		"levelId":  completion.LevelID,
		"courseId": completion.CourseID,
		"xpEarned": completion.XPEarned,
	}
	return c.do(ctx, http.MethodPost, "/api/progress/complete-level", payload, nil)
}

// PushProgress upserts the aggregate progress record server-side.
func (c *Client) PushProgress(ctx context.Context, update learning.ProgressUpdate) error {
	payload := map[string]any{
		"totalXP":       update.TotalXP,
		"level":         update.Level,
		"currentCourse": update.CurrentCourse,
		"currentLevel":  update.CurrentLevel,
	}
	return c.do(ctx, http.MethodPost, "/api/progress/update", payload, nil)
}

// PushBadge records an earned badge server-side.
func (c *Client) PushBadge(ctx context.Context, badge learning.Badge) error {
	rarity := badge.Rarity
	if rarity == "" {
		rarity = learning.RarityCommon
	}
	payload := map[string]any{
		"badgeId":     badge.ID,
		"name":        badge.Name,
		"description": badge.Description,
		"icon":        badge.Icon,
		"rarity":      rarity,
	}
	return c.do(ctx, http.MethodPost, "/api/badges/earn", payload, nil)
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.text() != "" {
			return fmt.Errorf("%s", errBody.text())
		}
		return fmt.Errorf("progress api status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
