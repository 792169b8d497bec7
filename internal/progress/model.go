// Package progress stores the server-side record of each learner's
// accomplishments: XP totals, earned badges, and completed levels.
package progress

import (
	"context"
	"time"
)

// Record is the aggregate progress document for one learner.
type Record struct {
	UserID        string    `json:"user_id" firestore:"user_id"`
	TotalXP       int       `json:"totalXP" firestore:"total_xp"`
	Level         int       `json:"level" firestore:"level"`
	CurrentCourse string    `json:"currentCourse,omitempty" firestore:"current_course"`
	CurrentLevel  string    `json:"currentLevel,omitempty" firestore:"current_level"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updated_at"`
}

// EarnedBadge is one badge award.
type EarnedBadge struct {
	BadgeID     string    `json:"badgeId" firestore:"badge_id"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description,omitempty" firestore:"description"`
	Icon        string    `json:"icon,omitempty" firestore:"icon"`
	Rarity      string    `json:"rarity" firestore:"rarity"`
	EarnedAt    time.Time `json:"earnedAt" firestore:"earned_at"`
}

// CompletedLevel records one level completion.
type CompletedLevel struct {
	LevelID     string    `json:"levelId" firestore:"level_id"`
	CourseID    string    `json:"courseId" firestore:"course_id"`
	XPEarned    int       `json:"xpEarned" firestore:"xp_earned"`
	CompletedAt time.Time `json:"completedAt" firestore:"completed_at"`
}

// Overview bundles everything a client needs to reconcile local state.
type Overview struct {
	Progress        Record           `json:"progress"`
	Badges          []EarnedBadge    `json:"badges"`
	CompletedLevels []CompletedLevel `json:"completedLevels"`
}

// UpdateInput describes an aggregate progress upsert.
type UpdateInput struct {
	TotalXP       int    `json:"totalXP" validate:"min=0"`
	Level         int    `json:"level" validate:"min=1"`
	CurrentCourse string `json:"currentCourse"`
	CurrentLevel  string `json:"currentLevel"`
}

// CompleteLevelInput describes a level-completion report.
type CompleteLevelInput struct {
	LevelID  string `json:"levelId" validate:"required"`
	CourseID string `json:"courseId"`
	XPEarned int    `json:"xpEarned" validate:"min=0"`
}

// BadgeInput describes a badge award report.
type BadgeInput struct {
	BadgeID     string `json:"badgeId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"`
}

// Repository defines the interface for progress data access.
type Repository interface {
	GetRecord(ctx context.Context, userID string) (Record, error)
	UpsertRecord(ctx context.Context, record Record) error
	ListBadges(ctx context.Context, userID string) ([]EarnedBadge, error)
	AddBadge(ctx context.Context, userID string, badge EarnedBadge) error
	ListCompletedLevels(ctx context.Context, userID string) ([]CompletedLevel, error)
	AddCompletedLevel(ctx context.Context, userID string, completion CompletedLevel) error
}

// Service defines the progress service interface.
type Service interface {
	Overview(ctx context.Context, userID string) (Overview, error)
	UpdateRecord(ctx context.Context, userID string, input UpdateInput) (Record, error)
	CompleteLevel(ctx context.Context, userID string, input CompleteLevelInput) error
	EarnBadge(ctx context.Context, userID string, input BadgeInput) (EarnedBadge, error)
}
