// Package youtube recommends study videos for a course topic via the
// YouTube Data API, with a curated fallback catalog when the API is
// unconfigured or unavailable.
package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// Video is one recommendation.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	URL         string `json:"url"`
}

const defaultLimit = 5

// Service serves video recommendations.
type Service struct {
	api    *yt.Service
	logger *slog.Logger
}

// NewService builds a recommendation service. An empty API key disables the
// Data API and serves the curated catalog only.
func NewService(ctx context.Context, apiKey string, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(apiKey) == "" {
		return &Service{logger: logger}, nil
	}

	api, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube client: %w", err)
	}
	return &Service{api: api, logger: logger}, nil
}

// Recommend returns up to limit videos for the topic. API failures degrade
// to the curated catalog rather than erroring.
func (s *Service) Recommend(ctx context.Context, topic string, limit int64) ([]Video, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if limit <= 0 || limit > 25 {
		limit = defaultLimit
	}

	if s.api == nil {
		return catalogFor(topic, int(limit)), nil
	}

	call := s.api.Search.List([]string{"snippet"}).
		Context(ctx).
		Q(topic + " tutorial").
		Type("video").
		SafeSearch("strict").
		MaxResults(limit)

	resp, err := call.Do()
	if err != nil {
		s.logger.Warn("youtube search failed, serving catalog",
			slog.String("topic", topic),
			slog.String("error", err.Error()))
		return catalogFor(topic, int(limit)), nil
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		video := Video{
			ID:          item.Id.VideoId,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			Description: item.Snippet.Description,
			URL:         "https://www.youtube.com/watch?v=" + item.Id.VideoId,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			video.Thumbnail = item.Snippet.Thumbnails.Medium.Url
		}
		videos = append(videos, video)
	}
	if len(videos) == 0 {
		return catalogFor(topic, int(limit)), nil
	}
	return videos, nil
}
