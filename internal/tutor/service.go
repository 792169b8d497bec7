package tutor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// ErrEmptyQuestion indicates a hint request with no question text.
var ErrEmptyQuestion = errors.New("question is required")

// Service answers hint and analysis requests, falling back to rule-based
// responses when the model assistant fails.
type Service struct {
	assistant Assistant
	fallback  Assistant
	logger    *slog.Logger
}

// NewService wires the tutor service. assistant may be nil, in which case
// only rule-based responses are served.
func NewService(assistant Assistant, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		assistant: assistant,
		fallback:  NewRuleAssistant(),
		logger:    logger,
	}
}

// Hint answers the learner's question for their current stage.
func (s *Service) Hint(ctx context.Context, req HintRequest) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return "", ErrEmptyQuestion
	}

	if s.assistant != nil {
		hint, err := s.assistant.Hint(ctx, req)
		if err == nil {
			return hint, nil
		}
		s.logger.Warn("assistant hint failed, using fallback", slog.String("error", err.Error()))
	}
	return s.fallback.Hint(ctx, req)
}

// Analyze summarizes the learner's progress.
func (s *Service) Analyze(ctx context.Context, req AnalysisRequest) (string, error) {
	if s.assistant != nil {
		summary, err := s.assistant.Analyze(ctx, req)
		if err == nil {
			return summary, nil
		}
		s.logger.Warn("assistant analysis failed, using fallback", slog.String("error", err.Error()))
	}
	return s.fallback.Analyze(ctx, req)
}

// Close releases the underlying assistant.
func (s *Service) Close() error {
	if s.assistant != nil {
		return s.assistant.Close()
	}
	return nil
}
