package learning

import "context"

// StartGame opens a mini-game session for the level and advances the stage
// machine into the scheme's game stage. The level must declare a game config
// and must currently sit on the stage immediately before the game stage.
// Revisiting an in-progress game resumes the prior session so accumulated
// attempts, best score, and time are not lost.
func (s *Store) StartGame(ctx context.Context, levelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	level, scheme, ok := s.findLevelLocked(levelID)
	if !ok {
		s.logger.Error("start game: level not found", "levelId", levelID)
		return false
	}
	if level.GameConfig == nil {
		s.logger.Error("start game: level has no game config", "levelId", levelID)
		return false
	}

	current := level.CurrentStage
	if current == "" {
		current = scheme.First()
	}
	next, ok := scheme.Successor(current)
	if !ok || next != scheme.GameStage {
		s.logger.Error("start game: level is not on a game-eligible stage",
			"levelId", levelID, "stage", current)
		return false
	}

	session := &GameSession{LevelID: levelID, GameID: level.GameConfig.ID}
	if existing := s.state.UserProgress.CurrentGame; existing != nil && existing.LevelID == levelID {
		session.Attempts = existing.Attempts
		session.BestScore = existing.BestScore
		session.TimeSpent = existing.TimeSpent
	}
	s.state.UserProgress.CurrentGame = session

	if !s.advanceStageLocked(levelID, next) {
		// Unreachable given the successor check above; guard regardless.
		s.state.UserProgress.CurrentGame = nil
		return false
	}

	s.persist(ctx)
	return true
}

// CompleteGame records the outcome of one mini-game run. Every call counts
// an attempt, raises the best-score high-water mark, and accumulates time.
// A failed run leaves the session open for another attempt. A successful run
// marks the session completed, completes the level with the carried XP,
// walks the stage machine forward to the terminal stage, and clears the
// session.
func (s *Store) CompleteGame(ctx context.Context, levelID string, result GameResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.state.UserProgress.CurrentGame
	if session == nil {
		s.logger.Error("complete game: no active session", "levelId", levelID)
		return false
	}

	session.Attempts++
	if result.Score > session.BestScore {
		session.BestScore = result.Score
	}
	session.TimeSpent += result.TimeSpent

	if !result.Success {
		s.persist(ctx)
		return true
	}

	session.Completed = true
	s.completeLevelLocked(ctx, levelID, result.XPEarned)

	_, scheme, ok := s.findLevelLocked(levelID)
	if ok {
		for {
			level, _, found := s.findLevelLocked(levelID)
			if !found || level.CurrentStage == scheme.Terminal() {
				break
			}
			next, more := scheme.Successor(level.CurrentStage)
			if !more {
				break
			}
			s.setStageLocked(levelID, next)
		}
	}

	s.state.UserProgress.CurrentGame = nil
	s.persist(ctx)
	return true
}
