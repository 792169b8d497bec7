package learning

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type fakeSyncer struct {
	loginFn               func(ctx context.Context, username, password string) (User, error)
	signupFn              func(ctx context.Context, username, password, email string) (User, error)
	fetchProgressFn       func(ctx context.Context) (RemoteProgress, error)
	pushLevelCompletionFn func(ctx context.Context, completion LevelCompletion) error
	pushProgressFn        func(ctx context.Context, update ProgressUpdate) error
	pushBadgeFn           func(ctx context.Context, badge Badge) error
}

func (f *fakeSyncer) Login(ctx context.Context, username, password string) (User, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, username, password)
	}
	return User{ID: "user-1", Username: username}, nil
}

func (f *fakeSyncer) Signup(ctx context.Context, username, password, email string) (User, error) {
	if f.signupFn != nil {
		return f.signupFn(ctx, username, password, email)
	}
	return User{ID: "user-1", Username: username, Email: email}, nil
}

func (f *fakeSyncer) FetchProgress(ctx context.Context) (RemoteProgress, error) {
	if f.fetchProgressFn != nil {
		return f.fetchProgressFn(ctx)
	}
	return RemoteProgress{}, nil
}

func (f *fakeSyncer) PushLevelCompletion(ctx context.Context, completion LevelCompletion) error {
	if f.pushLevelCompletionFn != nil {
		return f.pushLevelCompletionFn(ctx, completion)
	}
	return nil
}

func (f *fakeSyncer) PushProgress(ctx context.Context, update ProgressUpdate) error {
	if f.pushProgressFn != nil {
		return f.pushProgressFn(ctx, update)
	}
	return nil
}

func (f *fakeSyncer) PushBadge(ctx context.Context, badge Badge) error {
	if f.pushBadgeFn != nil {
		return f.pushBadgeFn(ctx, badge)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, remote Syncer) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), testLogger(), nil, remote)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestNewStoreSeedsGuestState(t *testing.T) {
	store := newTestStore(t, nil)

	progress := store.Progress()
	if progress.UserID != "guest" || progress.Level != 1 || progress.TotalXP != 0 {
		t.Errorf("unexpected guest progress: %+v", progress)
	}
	if _, ok := store.User(); ok {
		t.Error("expected no user before login")
	}

	courses := store.Courses()
	if len(courses) == 0 {
		t.Fatal("expected seeded courses")
	}
	for _, course := range courses {
		for i, level := range course.Levels {
			if i == 0 && !level.Unlocked {
				t.Errorf("course %s: first level should start unlocked", course.ID)
			}
			if i > 0 && level.Unlocked {
				t.Errorf("course %s: level %s should start locked", course.ID, level.ID)
			}
		}
	}
}

func TestAdvanceStageHappyPath(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	if !store.AdvanceStage(ctx, "dsa-1", StageQuiz) {
		t.Fatal("learn -> quiz should succeed")
	}
	level, _ := store.Level("dsa-1")
	if level.CurrentStage != StageQuiz {
		t.Errorf("stage = %s, want quiz", level.CurrentStage)
	}
}

func TestAdvanceStageRejectionsLeaveStateUntouched(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		levelID string
		target  Stage
	}{
		{"missing level", "nope", StageQuiz},
		{"no-op same stage", "dsa-1", StageLearn},
		{"skip ahead", "dsa-1", StageGame},
		{"foreign stage", "dsa-1", StageNarrative},
	}

	for _, tc := range tests {
		before, _ := store.Level("dsa-1")
		if store.AdvanceStage(ctx, tc.levelID, tc.target) {
			t.Errorf("%s: expected rejection", tc.name)
		}
		after, _ := store.Level("dsa-1")
		if after.CurrentStage != before.CurrentStage {
			t.Errorf("%s: rejection mutated stage %s -> %s", tc.name, before.CurrentStage, after.CurrentStage)
		}
	}
}

func TestAdvanceStageRestartLoop(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	if !store.AdvanceStage(ctx, "dsa-1", StageQuiz) {
		t.Fatal("learn -> quiz should succeed")
	}
	if !store.AdvanceStage(ctx, "dsa-1", StageLearn) {
		t.Fatal("quiz -> learn restart should succeed")
	}
	level, _ := store.Level("dsa-1")
	if level.CurrentStage != StageLearn {
		t.Errorf("stage = %s, want learn", level.CurrentStage)
	}
}

func TestLoginSyncsProgress(t *testing.T) {
	remote := &fakeSyncer{
		fetchProgressFn: func(ctx context.Context) (RemoteProgress, error) {
			return RemoteProgress{
				TotalXP:         550,
				Level:           2,
				CurrentCourse:   "dsa",
				CompletedLevels: []string{"dsa-1"},
			}, nil
		},
	}
	store := newTestStore(t, remote)

	if err := store.Login(context.Background(), "ada", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	user, ok := store.User()
	if !ok || user.Username != "ada" {
		t.Fatalf("user = %+v, ok=%v", user, ok)
	}

	progress := store.Progress()
	if progress.TotalXP != 550 || progress.Level != 2 {
		t.Errorf("progress = %+v", progress)
	}

	level, _ := store.Level("dsa-1")
	if !level.Completed {
		t.Error("dsa-1 should be reconciled as completed")
	}
	next, _ := store.Level("dsa-2")
	if !next.Unlocked {
		t.Error("dsa-2 should be reconciled as unlocked")
	}
	third, _ := store.Level("dsa-3")
	if third.Unlocked {
		t.Error("dsa-3 should stay locked")
	}
}

func TestLoginSurfacesServerMessage(t *testing.T) {
	remote := &fakeSyncer{
		loginFn: func(ctx context.Context, username, password string) (User, error) {
			return User{}, errors.New("invalid username or password")
		},
	}
	store := newTestStore(t, remote)

	err := store.Login(context.Background(), "ada", "wrong")
	if err == nil || err.Error() != "invalid username or password" {
		t.Fatalf("err = %v", err)
	}
	if _, ok := store.User(); ok {
		t.Error("failed login should not set a user")
	}
}

func TestLoginSwallowsSyncFailure(t *testing.T) {
	remote := &fakeSyncer{
		fetchProgressFn: func(ctx context.Context) (RemoteProgress, error) {
			return RemoteProgress{}, errors.New("network down")
		},
	}
	store := newTestStore(t, remote)

	if err := store.Login(context.Background(), "ada", "hunter22"); err != nil {
		t.Fatalf("sync failure must not fail login: %v", err)
	}
	if _, ok := store.User(); !ok {
		t.Error("user should be set despite sync failure")
	}
}

func TestLogoutResetsToGuest(t *testing.T) {
	store := newTestStore(t, &fakeSyncer{})
	ctx := context.Background()

	if err := store.Login(ctx, "ada", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	store.CompleteLevel(ctx, "dsa-1", 100)
	store.Logout(ctx)

	if _, ok := store.User(); ok {
		t.Error("user should be cleared")
	}
	progress := store.Progress()
	if progress.UserID != "guest" || progress.TotalXP != 0 || len(progress.CompletedLevels) != 0 {
		t.Errorf("progress not reset: %+v", progress)
	}
}

func TestSelectCourseClearsLevelSelection(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	store.SelectCourse(ctx, "dsa")
	store.SelectLevel(ctx, "dsa-1")
	store.SelectCourse(ctx, "webdev")

	progress := store.Progress()
	if progress.CurrentCourse != "webdev" || progress.CurrentLevel != "" {
		t.Errorf("selection = %q/%q", progress.CurrentCourse, progress.CurrentLevel)
	}
}

func TestAddBadgeDefaultsAndPushes(t *testing.T) {
	var pushed Badge
	remote := &fakeSyncer{
		pushBadgeFn: func(ctx context.Context, badge Badge) error {
			pushed = badge
			return nil
		},
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, err := NewStore(context.Background(), testLogger(), nil, remote,
		WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Login(ctx, "ada", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	store.AddBadge(ctx, Badge{ID: "first-steps", Name: "First Steps"})

	progress := store.Progress()
	if len(progress.Badges) != 1 {
		t.Fatalf("badges = %d", len(progress.Badges))
	}
	badge := progress.Badges[0]
	if badge.Rarity != RarityCommon {
		t.Errorf("rarity = %s, want common", badge.Rarity)
	}
	if badge.EarnedAt == nil || !badge.EarnedAt.Equal(now) {
		t.Errorf("earnedAt = %v", badge.EarnedAt)
	}
	if pushed.ID != "first-steps" {
		t.Errorf("pushed badge = %+v", pushed)
	}
}

func TestAddBadgePushFailureIsSwallowed(t *testing.T) {
	remote := &fakeSyncer{
		pushBadgeFn: func(ctx context.Context, badge Badge) error {
			return errors.New("boom")
		},
	}
	store := newTestStore(t, remote)
	ctx := context.Background()

	if err := store.Login(ctx, "ada", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	store.AddBadge(ctx, Badge{ID: "b1", Name: "Badge"})

	if got := len(store.Progress().Badges); got != 1 {
		t.Errorf("badges = %d, want 1 despite push failure", got)
	}
}

func TestCompanionOps(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	store.ToggleCompanion(ctx)
	store.AppendCompanionMessage(ctx, "user", "what is a loop?")
	store.AppendCompanionMessage(ctx, "assistant", "a loop repeats work")
	store.SetHint(ctx, "try a for statement")

	companion := store.Companion()
	if !companion.Active {
		t.Error("companion should be active")
	}
	if len(companion.Messages) != 2 {
		t.Errorf("messages = %d", len(companion.Messages))
	}
	if companion.CurrentHint != "try a for statement" {
		t.Errorf("hint = %q", companion.CurrentHint)
	}

	store.SetHint(ctx, "")
	if got := store.Companion().CurrentHint; got != "" {
		t.Errorf("hint should clear, got %q", got)
	}
}

func TestQueriesReturnCopies(t *testing.T) {
	store := newTestStore(t, nil)

	courses := store.Courses()
	courses[0].Levels[0].Completed = true
	if level, _ := store.Level(courses[0].Levels[0].ID); level.Completed {
		t.Error("mutating a query result must not affect the store")
	}
}
