package learning

import "context"

// XPPerLevel is the experience span of one derived user level.
const XPPerLevel = 500

// LevelForXP derives the user level from total experience. The level is a
// pure function of XP and is recomputed on every write, never stored on its
// own.
func LevelForXP(totalXP int) int {
	return totalXP/XPPerLevel + 1
}

// CompleteLevel awards experience for a finished level, recomputes the
// derived user level, marks the level completed, and unlocks the next level
// in the owning course. Completing an already-completed level is a no-op.
func (s *Store) CompleteLevel(ctx context.Context, levelID string, xpEarned int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completeLevelLocked(ctx, levelID, xpEarned)
	s.persist(ctx)
}

func (s *Store) completeLevelLocked(ctx context.Context, levelID string, xpEarned int) {
	for _, done := range s.state.UserProgress.CompletedLevels {
		if done == levelID {
			s.logger.Warn("complete level: already completed", "levelId", levelID)
			return
		}
	}

	progress := &s.state.UserProgress
	progress.TotalXP += xpEarned
	progress.Level = LevelForXP(progress.TotalXP)
	progress.CompletedLevels = append(progress.CompletedLevels, levelID)

	courseID, _ := s.courseOfLocked(levelID)
	for ci := range s.state.Courses {
		levels := s.state.Courses[ci].Levels
		for li := range levels {
			if levels[li].ID == levelID {
				levels[li].Completed = true
				// Unlock cascade: the immediately following level opens up.
				// Levels are never re-locked.
				if li+1 < len(levels) {
					levels[li+1].Unlocked = true
				}
			}
		}
	}

	if s.state.User == nil || s.remote == nil {
		return
	}

	// Eventual-consistency push: local state has already committed and is
	// the source of truth for the session. Failures are logged and
	// swallowed; the next full sync reconciles.
	if err := s.remote.PushLevelCompletion(ctx, LevelCompletion{
		LevelID:  levelID,
		CourseID: courseID,
		XPEarned: xpEarned,
	}); err != nil {
		s.logger.Error("level completion push failed", "levelId", levelID, "error", err)
	}
	if err := s.remote.PushProgress(ctx, ProgressUpdate{
		TotalXP:       progress.TotalXP,
		Level:         progress.Level,
		CurrentCourse: courseID,
		CurrentLevel:  levelID,
	}); err != nil {
		s.logger.Error("progress push failed", "levelId", levelID, "error", err)
	}
}
