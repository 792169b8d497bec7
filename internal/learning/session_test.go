package learning

import (
	"context"
	"testing"
)

// moveToGameEligible walks dsa-1 to the quiz stage, the only stage a game
// may start from under the classic scheme.
func moveToGameEligible(t *testing.T, store *Store, levelID string) {
	t.Helper()
	if !store.AdvanceStage(context.Background(), levelID, StageQuiz) {
		t.Fatalf("could not move %s to quiz", levelID)
	}
}

func TestStartGameCreatesZeroedSession(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	moveToGameEligible(t, store, "dsa-1")

	if !store.StartGame(ctx, "dsa-1") {
		t.Fatal("StartGame should succeed from quiz")
	}

	session, ok := store.ActiveSession()
	if !ok {
		t.Fatal("expected an active session")
	}
	if session.Attempts != 0 || session.BestScore != 0 || session.TimeSpent != 0 || session.Completed {
		t.Errorf("session not zeroed: %+v", session)
	}
	if session.GameID != "loop-arena-1" {
		t.Errorf("gameId = %s", session.GameID)
	}

	level, _ := store.Level("dsa-1")
	if level.CurrentStage != StageGame {
		t.Errorf("stage = %s, want game", level.CurrentStage)
	}
}

func TestStartGamePreconditions(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	if store.StartGame(ctx, "missing") {
		t.Error("missing level should fail")
	}
	// ai-1 has no game config.
	if store.StartGame(ctx, "ai-1") {
		t.Error("level without game config should fail")
	}
	// dsa-1 still sits on learn, not a game-eligible stage.
	if store.StartGame(ctx, "dsa-1") {
		t.Error("starting from learn should fail")
	}
	if _, ok := store.ActiveSession(); ok {
		t.Error("failed starts must not create a session")
	}
}

func TestStartGameResumesSameLevel(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	moveToGameEligible(t, store, "dsa-1")

	if !store.StartGame(ctx, "dsa-1") {
		t.Fatal("StartGame failed")
	}
	if !store.CompleteGame(ctx, "dsa-1", GameResult{Score: 4, TimeSpent: 30}) {
		t.Fatal("CompleteGame failed")
	}

	// Leave and come back: restart to learn, walk forward, start again.
	if !store.AdvanceStage(ctx, "dsa-1", StageLearn) {
		t.Fatal("restart failed")
	}
	moveToGameEligible(t, store, "dsa-1")
	if !store.StartGame(ctx, "dsa-1") {
		t.Fatal("second StartGame failed")
	}

	session, _ := store.ActiveSession()
	if session.Attempts != 1 || session.BestScore != 4 || session.TimeSpent != 30 {
		t.Errorf("resume lost history: %+v", session)
	}
}

func TestStartGameExpandedScheme(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	// Walk web-1 to assessment, the stage before the practice game.
	for _, stage := range []Stage{StageTeachingGame, StageAIVideos, StageAssessment} {
		if !store.AdvanceStage(ctx, "web-1", stage) {
			t.Fatalf("could not advance web-1 to %s", stage)
		}
	}

	if !store.StartGame(ctx, "web-1") {
		t.Fatal("StartGame should succeed from assessment")
	}
	level, _ := store.Level("web-1")
	if level.CurrentStage != StagePracticeGame {
		t.Errorf("stage = %s, want practice-game", level.CurrentStage)
	}
}

func TestCompleteGameWithoutSession(t *testing.T) {
	store := newTestStore(t, nil)

	if store.CompleteGame(context.Background(), "dsa-1", GameResult{Score: 10, Success: true}) {
		t.Error("CompleteGame without a session should fail")
	}
	if got := store.Progress().TotalXP; got != 0 {
		t.Errorf("totalXP = %d", got)
	}
}

func TestCompleteGameFailureKeepsSessionOpen(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	moveToGameEligible(t, store, "dsa-1")
	if !store.StartGame(ctx, "dsa-1") {
		t.Fatal("StartGame failed")
	}

	if !store.CompleteGame(ctx, "dsa-1", GameResult{Score: 6, TimeSpent: 20, Success: false}) {
		t.Fatal("failed attempt should still be recorded")
	}
	if !store.CompleteGame(ctx, "dsa-1", GameResult{Score: 3, TimeSpent: 15, Success: false}) {
		t.Fatal("second failed attempt should still be recorded")
	}

	session, ok := store.ActiveSession()
	if !ok {
		t.Fatal("session must stay open after failures")
	}
	if session.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", session.Attempts)
	}
	if session.BestScore != 6 {
		t.Errorf("bestScore = %d, want high-water mark 6", session.BestScore)
	}
	if session.TimeSpent != 35 {
		t.Errorf("timeSpent = %d, want 35", session.TimeSpent)
	}
	if session.Completed {
		t.Error("session must not be marked completed")
	}

	progress := store.Progress()
	if progress.TotalXP != 0 || len(progress.CompletedLevels) != 0 {
		t.Errorf("failure awarded progress: %+v", progress)
	}
	level, _ := store.Level("dsa-1")
	if level.CurrentStage != StageGame {
		t.Errorf("failure changed stage to %s", level.CurrentStage)
	}
}

func TestCompleteGameSuccessScenario(t *testing.T) {
	var pushed []ProgressUpdate
	remote := &fakeSyncer{
		pushProgressFn: func(ctx context.Context, update ProgressUpdate) error {
			pushed = append(pushed, update)
			return nil
		},
	}
	store := newTestStore(t, remote)
	ctx := context.Background()

	if err := store.Login(ctx, "ada", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	moveToGameEligible(t, store, "dsa-1")
	if !store.StartGame(ctx, "dsa-1") {
		t.Fatal("StartGame failed")
	}

	// Two failed attempts before the winning run.
	store.CompleteGame(ctx, "dsa-1", GameResult{Score: 40, TimeSpent: 20, Success: false})
	store.CompleteGame(ctx, "dsa-1", GameResult{Score: 25, TimeSpent: 10, Success: false})

	session, _ := store.ActiveSession()
	if session.Attempts != 2 || session.BestScore != 40 || session.TimeSpent != 30 {
		t.Fatalf("precondition session = %+v", session)
	}

	if !store.CompleteGame(ctx, "dsa-1", GameResult{Score: 60, TimeSpent: 10, Success: true, XPEarned: 100}) {
		t.Fatal("successful completion failed")
	}

	if _, ok := store.ActiveSession(); ok {
		t.Error("session must be cleared after successful completion")
	}

	level, _ := store.Level("dsa-1")
	if !level.Completed {
		t.Error("level should be completed")
	}
	if level.CurrentStage != StageComplete {
		t.Errorf("stage = %s, want complete", level.CurrentStage)
	}

	next, _ := store.Level("dsa-2")
	if !next.Unlocked {
		t.Error("next level should be unlocked")
	}

	progress := store.Progress()
	if progress.TotalXP != 100 {
		t.Errorf("totalXP = %d, want 100", progress.TotalXP)
	}
	if len(progress.CompletedLevels) != 1 || progress.CompletedLevels[0] != "dsa-1" {
		t.Errorf("completedLevels = %v", progress.CompletedLevels)
	}

	// Only the winning run pushes the aggregate totals to the server.
	if len(pushed) != 1 {
		t.Fatalf("progress pushes = %d, want 1", len(pushed))
	}
	update := pushed[0]
	if update.TotalXP != 100 || update.Level != 1 {
		t.Errorf("pushed totals = %+v, want totalXP 100 level 1", update)
	}
	if update.CurrentCourse != "dsa" || update.CurrentLevel != "dsa-1" {
		t.Errorf("pushed position = %+v, want course dsa level dsa-1", update)
	}
}

func TestCompleteGameSuccessExpandedSchemeReachesTerminal(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	for _, stage := range []Stage{StageTeachingGame, StageAIVideos, StageAssessment} {
		if !store.AdvanceStage(ctx, "web-1", stage) {
			t.Fatalf("could not advance web-1 to %s", stage)
		}
	}
	if !store.StartGame(ctx, "web-1") {
		t.Fatal("StartGame failed")
	}
	if !store.CompleteGame(ctx, "web-1", GameResult{Score: 15, TimeSpent: 50, Success: true, XPEarned: 100}) {
		t.Fatal("CompleteGame failed")
	}

	level, _ := store.Level("web-1")
	if level.CurrentStage != StageComplete {
		t.Errorf("stage = %s, want complete", level.CurrentStage)
	}
	if !level.Completed {
		t.Error("level should be completed")
	}
}
