package youtube

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCatalogService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), "", testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRecommendRequiresTopic(t *testing.T) {
	svc := newCatalogService(t)
	if _, err := svc.Recommend(context.Background(), "  ", 5); err == nil {
		t.Error("blank topic should be rejected")
	}
}

func TestRecommendServesCatalogWithoutAPIKey(t *testing.T) {
	svc := newCatalogService(t)

	videos, err := svc.Recommend(context.Background(), "dsa", 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(videos) == 0 {
		t.Fatal("catalog should not be empty")
	}
	for _, v := range videos {
		if v.ID == "" || v.Title == "" || v.URL == "" {
			t.Errorf("incomplete video %+v", v)
		}
	}
}

func TestRecommendHonorsLimit(t *testing.T) {
	svc := newCatalogService(t)

	videos, err := svc.Recommend(context.Background(), "webdev", 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(videos) != 1 {
		t.Errorf("len = %d, want 1", len(videos))
	}
}

func TestRecommendMatchesTopicSubstring(t *testing.T) {
	svc := newCatalogService(t)

	videos, err := svc.Recommend(context.Background(), "intro to webdev", 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(videos) == 0 || videos[0].ID != fallbackCatalog["webdev"][0].ID {
		t.Errorf("videos = %+v, want webdev catalog", videos)
	}
}

func TestRecommendUnknownTopicGetsGenericPicks(t *testing.T) {
	svc := newCatalogService(t)

	videos, err := svc.Recommend(context.Background(), "basket weaving", 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(videos) != len(genericPicks) {
		t.Errorf("len = %d, want %d generics", len(videos), len(genericPicks))
	}
}
