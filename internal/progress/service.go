package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystemClock returns a Clock implementation backed by time.Now.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

type service struct {
	repo     Repository
	clock    Clock
	validate *validator.Validate
}

// NewService creates a new progress service.
func NewService(repo Repository, clock Clock) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	return &service{repo: repo, clock: clock, validate: validator.New()}, nil
}

func (s *service) Overview(ctx context.Context, userID string) (Overview, error) {
	if strings.TrimSpace(userID) == "" {
		return Overview{}, ErrMissingUserID
	}

	var out Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		record, err := s.repo.GetRecord(ctx, userID)
		if err != nil {
			return err
		}
		out.Progress = record
		return nil
	})

	g.Go(func() error {
		badges, err := s.repo.ListBadges(ctx, userID)
		if err != nil {
			return err
		}
		out.Badges = badges
		return nil
	})

	g.Go(func() error {
		levels, err := s.repo.ListCompletedLevels(ctx, userID)
		if err != nil {
			return err
		}
		out.CompletedLevels = levels
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	if out.Badges == nil {
		out.Badges = []EarnedBadge{}
	}
	if out.CompletedLevels == nil {
		out.CompletedLevels = []CompletedLevel{}
	}
	return out, nil
}

func (s *service) UpdateRecord(ctx context.Context, userID string, input UpdateInput) (Record, error) {
	if strings.TrimSpace(userID) == "" {
		return Record{}, ErrMissingUserID
	}
	if err := s.validate.Struct(input); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	record := Record{
		UserID:        userID,
		TotalXP:       input.TotalXP,
		Level:         input.Level,
		CurrentCourse: input.CurrentCourse,
		CurrentLevel:  input.CurrentLevel,
		UpdatedAt:     s.clock.Now().UTC(),
	}
	if err := s.repo.UpsertRecord(ctx, record); err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *service) CompleteLevel(ctx context.Context, userID string, input CompleteLevelInput) error {
	if strings.TrimSpace(userID) == "" {
		return ErrMissingUserID
	}
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	completion := CompletedLevel{
		LevelID:     input.LevelID,
		CourseID:    input.CourseID,
		XPEarned:    input.XPEarned,
		CompletedAt: s.clock.Now().UTC(),
	}
	err := s.repo.AddCompletedLevel(ctx, userID, completion)
	if errors.Is(err, ErrAlreadyCompleted) {
		// Re-reports of the same level are harmless.
		return nil
	}
	return err
}

func (s *service) EarnBadge(ctx context.Context, userID string, input BadgeInput) (EarnedBadge, error) {
	if strings.TrimSpace(userID) == "" {
		return EarnedBadge{}, ErrMissingUserID
	}
	if err := s.validate.Struct(input); err != nil {
		return EarnedBadge{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rarity := input.Rarity
	if rarity == "" {
		rarity = "common"
	}
	badge := EarnedBadge{
		BadgeID:     input.BadgeID,
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		Rarity:      rarity,
		EarnedAt:    s.clock.Now().UTC(),
	}
	err := s.repo.AddBadge(ctx, userID, badge)
	if errors.Is(err, ErrBadgeAlreadyEarned) {
		existing, listErr := s.repo.ListBadges(ctx, userID)
		if listErr == nil {
			for _, b := range existing {
				if b.BadgeID == badge.BadgeID {
					return b, nil
				}
			}
		}
		return badge, nil
	}
	if err != nil {
		return EarnedBadge{}, err
	}
	return badge, nil
}
