package syncclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillquest/learning-service/internal/learning"
)

func TestLoginCapturesToken(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]string{"id": "user-1", "username": "ada", "email": "ada@example.com"},
			"token": "session-token",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	user, err := client.Login(context.Background(), "ada", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != "user-1" || user.Username != "ada" || user.Email != "ada@example.com" {
		t.Errorf("user = %+v", user)
	}
	if gotBody["username"] != "ada" || gotBody["password"] != "secret" {
		t.Errorf("request body = %v", gotBody)
	}
	if client.currentToken() != "session-token" {
		t.Errorf("token = %q, want session-token", client.currentToken())
	}
}

func TestLoginSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid username or password"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "ada", "wrong")
	if err == nil || err.Error() != "invalid username or password" {
		t.Errorf("err = %v, want server message", err)
	}
}

func TestErrorWithoutBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchProgress(context.Background())
	if err == nil || err.Error() != "progress api status 500" {
		t.Errorf("err = %v, want status fallback", err)
	}
}

func TestFetchProgressMapsResponse(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]any{"user": map[string]string{"id": "user-1"}, "token": "tok"})
		case "/api/progress":
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{
				"progress": map[string]any{
					"totalXP":       550,
					"level":         2,
					"currentCourse": "dsa",
					"currentLevel":  "dsa-2",
				},
				"badges": []map[string]any{
					{"badgeId": "first-steps", "name": "First Steps", "rarity": "common"},
				},
				"completedLevels": []map[string]string{{"levelId": "dsa-1"}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Login(context.Background(), "ada", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	remote, err := client.FetchProgress(context.Background())
	if err != nil {
		t.Fatalf("FetchProgress: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want Bearer tok", gotAuth)
	}
	if remote.TotalXP != 550 || remote.Level != 2 || remote.CurrentCourse != "dsa" {
		t.Errorf("remote = %+v", remote)
	}
	if len(remote.Badges) != 1 || remote.Badges[0].ID != "first-steps" || remote.Badges[0].Rarity != learning.RarityCommon {
		t.Errorf("badges = %+v", remote.Badges)
	}
	if len(remote.CompletedLevels) != 1 || remote.CompletedLevels[0] != "dsa-1" {
		t.Errorf("completedLevels = %+v", remote.CompletedLevels)
	}
}

func TestPushLevelCompletionPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/progress/complete-level" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).PushLevelCompletion(context.Background(), learning.LevelCompletion{
		LevelID:  "dsa-1",
		CourseID: "dsa",
		XPEarned: 100,
	})
	if err != nil {
		t.Fatalf("PushLevelCompletion: %v", err)
	}
	if got["levelId"] != "dsa-1" || got["courseId"] != "dsa" || got["xpEarned"] != float64(100) {
		t.Errorf("payload = %v", got)
	}
}

func TestPushBadgeDefaultsRarity(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/badges/earn" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).PushBadge(context.Background(), learning.Badge{ID: "first-steps", Name: "First Steps"})
	if err != nil {
		t.Fatalf("PushBadge: %v", err)
	}
	if got["rarity"] != string(learning.RarityCommon) {
		t.Errorf("rarity = %v, want common", got["rarity"])
	}
}
