package learning

// Stage is one phase of a level's guided progression.
type Stage string

const (
	// Classic scheme stages.
	StageLearn    Stage = "learn"
	StageQuiz     Stage = "quiz"
	StageGame     Stage = "game"
	StageComplete Stage = "complete"

	// Expanded scheme stages.
	StageNarrative    Stage = "narrative"
	StageTeachingGame Stage = "teaching-game"
	StageAIVideos     Stage = "ai-videos"
	StageAssessment   Stage = "assessment"
	StagePracticeGame Stage = "practice-game"
	StageResources    Stage = "resources"
)

// StageScheme declares the legal progression path for a course generation.
// Stage order is data, not control flow: changing a course's scheme swaps the
// ordered list without touching the transition validation below.
type StageScheme struct {
	Name  string
	Order []Stage

	// GameStage is the stage hosting the scored mini-game session. StartGame
	// may only enter it from its immediate predecessor.
	GameStage Stage

	// RestartBarrier is the stage from which looping back to the first stage
	// is no longer permitted. Restarts from earlier stages model "review
	// again" loops; once the barrier stage has begun they are rejected.
	RestartBarrier Stage
}

// SchemeClassic is the original four-stage progression.
var SchemeClassic = StageScheme{
	Name:           "classic",
	Order:          []Stage{StageLearn, StageQuiz, StageGame, StageComplete},
	GameStage:      StageGame,
	RestartBarrier: StageGame,
}

// SchemeExpanded is the richer seven-stage progression.
var SchemeExpanded = StageScheme{
	Name: "expanded",
	Order: []Stage{
		StageNarrative, StageTeachingGame, StageAIVideos, StageAssessment,
		StagePracticeGame, StageResources, StageComplete,
	},
	GameStage:      StagePracticeGame,
	RestartBarrier: StagePracticeGame,
}

var schemes = map[string]StageScheme{
	SchemeClassic.Name:  SchemeClassic,
	SchemeExpanded.Name: SchemeExpanded,
}

// SchemeByName resolves a registered stage scheme. Unknown names fall back
// to the classic scheme so that legacy course data keeps working.
func SchemeByName(name string) StageScheme {
	if s, ok := schemes[name]; ok {
		return s
	}
	return SchemeClassic
}

// First returns the scheme's initial stage.
func (s StageScheme) First() Stage {
	return s.Order[0]
}

// Terminal returns the scheme's final stage.
func (s StageScheme) Terminal() Stage {
	return s.Order[len(s.Order)-1]
}

// indexOf returns the position of stage in the scheme's order, or -1 when
// the stage is not part of the scheme.
func (s StageScheme) indexOf(stage Stage) int {
	for i, st := range s.Order {
		if st == stage {
			return i
		}
	}
	return -1
}

// Contains reports whether the stage belongs to this scheme's vocabulary.
func (s StageScheme) Contains(stage Stage) bool {
	return s.indexOf(stage) >= 0
}

// Successor returns the stage immediately after from, if any.
func (s StageScheme) Successor(from Stage) (Stage, bool) {
	idx := s.indexOf(from)
	if idx < 0 || idx+1 >= len(s.Order) {
		return "", false
	}
	return s.Order[idx+1], true
}

// CanTransition reports whether moving from one stage to another is legal:
// either the immediate successor, or a restart to the first stage from any
// stage before the restart barrier. Staying put is never a valid transition.
func (s StageScheme) CanTransition(from, to Stage) bool {
	if from == to {
		return false
	}
	if next, ok := s.Successor(from); ok && next == to {
		return true
	}
	return to == s.First() && from != s.RestartBarrier
}
