package tutor

import (
	"context"
	"fmt"
	"strings"
)

var stageHints = map[string]string{
	"learn":         "Work through the lesson material once more and jot down the key idea in your own words.",
	"quiz":          "Re-read each question slowly. The lesson you just finished covers every answer.",
	"game":          "Watch the passing score before you start, and do not be afraid to retry. Attempts are free.",
	"narrative":     "Follow the story closely. The characters are walking you through the concept step by step.",
	"teaching-game": "Play around freely here. This stage is for building intuition, not for scoring.",
	"ai-videos":     "Pause the video whenever something clicks and try to predict what comes next.",
	"assessment":    "Answer what you know first, then come back to the tricky ones.",
	"practice-game": "Watch the passing score before you start, and do not be afraid to retry. Attempts are free.",
	"resources":     "Skim the extra material now and bookmark what looks useful. You can always come back.",
}

const defaultHint = "Take it one step at a time. Revisit the last stage if something feels shaky."

// RuleAssistant is a deterministic fallback when Gemini is unavailable.
type RuleAssistant struct{}

// NewRuleAssistant returns an Assistant that answers from fixed stage heuristics.
func NewRuleAssistant() Assistant {
	return RuleAssistant{}
}

// Hint returns a canned nudge for the learner's current stage.
func (RuleAssistant) Hint(_ context.Context, req HintRequest) (string, error) {
	if hint, ok := stageHints[strings.ToLower(strings.TrimSpace(req.Stage))]; ok {
		return hint, nil
	}
	return defaultHint, nil
}

// Analyze returns a templated progress summary.
func (RuleAssistant) Analyze(_ context.Context, req AnalysisRequest) (string, error) {
	completed := len(req.CompletedLevels)
	switch {
	case completed == 0:
		return "You are just getting started. Pick a course and clear your first level to earn XP.", nil
	case completed == 1:
		return fmt.Sprintf("Nice start! One level down and %d XP banked. Keep the streak going.", req.TotalXP), nil
	default:
		return fmt.Sprintf("Strong progress: %d levels completed and %d XP at level %d. The next level is already unlocked.", completed, req.TotalXP, req.Level), nil
	}
}

// Close is a no-op for the rule assistant.
func (RuleAssistant) Close() error { return nil }
