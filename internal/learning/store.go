package learning

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store is the single source of truth for the learner's session. Callers
// hold an explicit handle; every command takes the lock, mutates, and
// rewrites the whole snapshot through the persistence gateway. Commands that
// validate caller input (AdvanceStage, StartGame, CompleteGame) report
// rejection with a false return plus a diagnostic log and leave state
// untouched.
type Store struct {
	mu      sync.Mutex
	logger  *slog.Logger
	gateway *Gateway
	remote  Syncer
	now     func() time.Time

	state State
}

// Option tweaks store construction.
type Option func(*Store)

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore builds a store from the persisted snapshot, seeding the default
// course catalog and a guest progress record when no snapshot exists yet.
// gateway and remote may be nil for a purely in-memory, offline store.
func NewStore(ctx context.Context, logger *slog.Logger, gateway *Gateway, remote Syncer, opts ...Option) (*Store, error) {
	s := &Store{
		logger:  logger,
		gateway: gateway,
		remote:  remote,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if gateway != nil {
		st, ok, err := gateway.Load(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			s.state = st
			return s, nil
		}
	}

	s.state = State{
		Courses:      SeedCourses(),
		UserProgress: guestProgress(),
		Companion:    CompanionState{AdaptiveDifficulty: 1},
	}
	s.persist(ctx)
	return s, nil
}

func guestProgress() UserProgress {
	return UserProgress{UserID: "guest", Level: 1}
}

// persist rewrites the snapshot. Save failures are logged and swallowed:
// the in-memory state has already committed and stays authoritative.
func (s *Store) persist(ctx context.Context) {
	if s.gateway == nil {
		return
	}
	if err := s.gateway.Save(ctx, s.state); err != nil {
		s.logger.Error("persist snapshot failed", "error", err)
	}
}

// Login authenticates against the remote collaborator, then pulls the
// learner's progress to reconcile local flags against server truth.
// Authentication failures propagate with the server-supplied message.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.remote.Login(ctx, username, password)
	if err != nil {
		return err
	}
	s.state.User = &user
	s.syncProgressLocked(ctx)
	s.persist(ctx)
	return nil
}

// Signup registers a new account and logs it in.
func (s *Store) Signup(ctx context.Context, username, password, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.remote.Signup(ctx, username, password, email)
	if err != nil {
		return err
	}
	s.state.User = &user
	s.syncProgressLocked(ctx)
	s.persist(ctx)
	return nil
}

// Logout clears the user and drops progress back to the guest record.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = nil
	s.state.UserProgress = guestProgress()
	s.persist(ctx)
}

// SyncProgress pulls server-side progress and rebuilds the derived completed
// and unlocked flags from it. Fetch failures are logged and swallowed; the
// next login triggers another full sync.
func (s *Store) SyncProgress(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncProgressLocked(ctx)
	s.persist(ctx)
}

func (s *Store) syncProgressLocked(ctx context.Context) {
	if s.state.User == nil || s.remote == nil {
		return
	}

	remote, err := s.remote.FetchProgress(ctx)
	if err != nil {
		s.logger.Error("progress sync failed", "error", err)
		return
	}

	completed := make(map[string]bool, len(remote.CompletedLevels))
	for _, id := range remote.CompletedLevels {
		completed[id] = true
	}

	s.state.UserProgress = UserProgress{
		UserID:          s.state.User.ID,
		TotalXP:         remote.TotalXP,
		Level:           LevelForXP(remote.TotalXP),
		Badges:          remote.Badges,
		CompletedLevels: remote.CompletedLevels,
		CurrentCourse:   remote.CurrentCourse,
		CurrentLevel:    remote.CurrentLevel,
	}

	for ci := range s.state.Courses {
		levels := s.state.Courses[ci].Levels
		for li := range levels {
			levels[li].Completed = completed[levels[li].ID]
			levels[li].Unlocked = li == 0 || completed[levels[li-1].ID]
		}
	}
}

// SetCourses replaces the course catalog.
func (s *Store) SetCourses(ctx context.Context, courses []Course) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Courses = courses
	s.persist(ctx)
}

// SelectCourse records the active course and clears the level selection.
func (s *Store) SelectCourse(ctx context.Context, courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserProgress.CurrentCourse = courseID
	s.state.UserProgress.CurrentLevel = ""
	s.persist(ctx)
}

// SelectLevel records the active level.
func (s *Store) SelectLevel(ctx context.Context, levelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserProgress.CurrentLevel = levelID
	s.persist(ctx)
}

// AdvanceStage moves a level to the target stage when the move is legal
// under the course's scheme. Illegal moves are rejected without mutation.
func (s *Store) AdvanceStage(ctx context.Context, levelID string, target Stage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.advanceStageLocked(levelID, target) {
		return false
	}
	s.persist(ctx)
	return true
}

func (s *Store) advanceStageLocked(levelID string, target Stage) bool {
	level, scheme, ok := s.findLevelLocked(levelID)
	if !ok {
		s.logger.Error("advance stage: level not found", "levelId", levelID)
		return false
	}

	current := level.CurrentStage
	if current == "" {
		current = scheme.First()
	}

	if current == target {
		s.logger.Warn("advance stage: level already on stage", "levelId", levelID, "stage", target)
		return false
	}
	if !scheme.Contains(target) {
		s.logger.Error("advance stage: unknown stage for scheme",
			"levelId", levelID, "scheme", scheme.Name, "stage", target)
		return false
	}
	if !scheme.CanTransition(current, target) {
		expected, _ := scheme.Successor(current)
		s.logger.Error("advance stage: invalid transition",
			"levelId", levelID, "from", current, "to", target, "expected", expected)
		return false
	}

	s.setStageLocked(levelID, target)
	return true
}

func (s *Store) setStageLocked(levelID string, stage Stage) {
	for ci := range s.state.Courses {
		levels := s.state.Courses[ci].Levels
		for li := range levels {
			if levels[li].ID == levelID {
				levels[li].CurrentStage = stage
			}
		}
	}
}

// findLevelLocked resolves a level and its course's scheme.
func (s *Store) findLevelLocked(levelID string) (*Level, StageScheme, bool) {
	for ci := range s.state.Courses {
		levels := s.state.Courses[ci].Levels
		for li := range levels {
			if levels[li].ID == levelID {
				return &levels[li], SchemeByName(s.state.Courses[ci].Scheme), true
			}
		}
	}
	return nil, StageScheme{}, false
}

func (s *Store) courseOfLocked(levelID string) (string, bool) {
	for _, course := range s.state.Courses {
		for _, level := range course.Levels {
			if level.ID == levelID {
				return course.ID, true
			}
		}
	}
	return "", false
}

// AddBadge appends to the badge collection, defaulting rarity and award
// time, and pushes the award to the remote collaborator best-effort.
func (s *Store) AddBadge(ctx context.Context, badge Badge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if badge.Rarity == "" {
		badge.Rarity = RarityCommon
	}
	if badge.EarnedAt == nil {
		earned := s.now()
		badge.EarnedAt = &earned
	}
	s.state.UserProgress.Badges = append(s.state.UserProgress.Badges, badge)
	s.persist(ctx)

	if s.state.User != nil && s.remote != nil {
		if err := s.remote.PushBadge(ctx, badge); err != nil {
			s.logger.Error("badge push failed", "badgeId", badge.ID, "error", err)
		}
	}
}

// AppendCompanionMessage records one AI companion exchange.
func (s *Store) AppendCompanionMessage(ctx context.Context, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Companion.Messages = append(s.state.Companion.Messages, CompanionMessage{
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	})
	s.persist(ctx)
}

// ToggleCompanion flips the AI companion panel.
func (s *Store) ToggleCompanion(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Companion.Active = !s.state.Companion.Active
	s.persist(ctx)
}

// SetHint updates the companion's current hint. An empty hint clears it.
func (s *Store) SetHint(ctx context.Context, hint string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Companion.CurrentHint = hint
	s.persist(ctx)
}

// User returns the authenticated user, or false in guest mode.
func (s *Store) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return User{}, false
	}
	return *s.state.User, true
}

// Courses returns a copy of the catalog.
func (s *Store) Courses() []Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Course, len(s.state.Courses))
	for i, c := range s.state.Courses {
		out[i] = c.clone()
	}
	return out
}

// Course returns a copy of one course.
func (s *Store) Course(courseID string) (Course, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.state.Courses {
		if c.ID == courseID {
			return c.clone(), true
		}
	}
	return Course{}, false
}

// Level returns a copy of one level.
func (s *Store) Level(levelID string) (Level, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level, _, ok := s.findLevelLocked(levelID)
	if !ok {
		return Level{}, false
	}
	return level.clone(), true
}

// Progress returns a copy of the aggregate progress record.
func (s *Store) Progress() UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.UserProgress.clone()
}

// ActiveSession returns the in-progress game session, if any.
func (s *Store) ActiveSession() (GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.UserProgress.CurrentGame == nil {
		return GameSession{}, false
	}
	return *s.state.UserProgress.CurrentGame, true
}

// Companion returns a copy of the AI companion state.
func (s *Store) Companion() CompanionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state.Companion
	out.Messages = append([]CompanionMessage(nil), s.state.Companion.Messages...)
	return out
}
