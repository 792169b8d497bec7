package learning

import "time"

// Difficulty tiers a level can declare.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// Rarity tiers for earned badges.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// User identifies the authenticated learner. A nil User means guest mode.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Course groups an ordered list of levels. Level order is semantically
// meaningful: it defines the unlock dependency chain.
type Course struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	Scheme      string  `json:"scheme"`
	Levels      []Level `json:"levels"`
}

// Level is one entry in a course's progression chain.
type Level struct {
	ID           string      `json:"id"`
	CourseID     string      `json:"courseId"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Story        string      `json:"story,omitempty"`
	XPReward     int         `json:"xpReward"`
	Difficulty   Difficulty  `json:"difficulty"`
	Unlocked     bool        `json:"unlocked"`
	Completed    bool        `json:"completed"`
	CurrentStage Stage       `json:"currentStage"`
	GameConfig   *GameConfig `json:"gameConfig,omitempty"`
}

// GameConfig describes the mini-game attached to a level. Levels without a
// config skip the game stage entirely.
type GameConfig struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Objective    string `json:"objective"`
	Controls     string `json:"controls"`
	TimeLimit    int    `json:"timeLimit,omitempty"` // seconds
	PassingScore int    `json:"passingScore"`
}

// GameSession is the ephemeral record of an in-progress mini-game attempt.
// BestScore is a high-water mark; TimeSpent and Attempts accumulate across
// every attempt, including failed ones.
type GameSession struct {
	LevelID   string `json:"levelId"`
	GameID    string `json:"gameId"`
	Attempts  int    `json:"attempts"`
	BestScore int    `json:"bestScore"`
	TimeSpent int    `json:"timeSpent"` // seconds
	Completed bool   `json:"completed"`
}

// GameResult is what a mini-game reports back when a run finishes.
type GameResult struct {
	Score     int  `json:"score"`
	TimeSpent int  `json:"timeSpent"` // seconds
	Success   bool `json:"success"`
	XPEarned  int  `json:"xpEarned"`
}

// Badge is a display achievement. The collection is append-only.
type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Rarity      Rarity     `json:"rarity,omitempty"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty"`
}

// UserProgress aggregates everything the learner has accomplished.
// Level is derived from TotalXP and never stored independently.
type UserProgress struct {
	UserID          string       `json:"userId"`
	TotalXP         int          `json:"totalXP"`
	Level           int          `json:"level"`
	Badges          []Badge      `json:"badges"`
	CompletedLevels []string     `json:"completedLevels"`
	CurrentCourse   string       `json:"currentCourse,omitempty"`
	CurrentLevel    string       `json:"currentLevel,omitempty"`
	CurrentGame     *GameSession `json:"currentGame,omitempty"`
}

// CompanionMessage is one exchange with the AI companion.
type CompanionMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// CompanionState holds the AI companion side panel state.
type CompanionState struct {
	Active             bool               `json:"isActive"`
	Messages           []CompanionMessage `json:"messages"`
	CurrentHint        string             `json:"currentHint,omitempty"`
	AdaptiveDifficulty int                `json:"adaptiveDifficulty"`
}

// State is the whole persisted aggregate: the single source of truth the
// store owns and the persistence gateway serializes wholesale.
type State struct {
	User         *User          `json:"user"`
	Courses      []Course       `json:"courses"`
	UserProgress UserProgress   `json:"userProgress"`
	Companion    CompanionState `json:"aiCompanion"`
}

func (l Level) clone() Level {
	out := l
	if l.GameConfig != nil {
		cfg := *l.GameConfig
		out.GameConfig = &cfg
	}
	return out
}

func (c Course) clone() Course {
	out := c
	out.Levels = make([]Level, len(c.Levels))
	for i, l := range c.Levels {
		out.Levels[i] = l.clone()
	}
	return out
}

func (p UserProgress) clone() UserProgress {
	out := p
	out.Badges = append([]Badge(nil), p.Badges...)
	out.CompletedLevels = append([]string(nil), p.CompletedLevels...)
	if p.CurrentGame != nil {
		game := *p.CurrentGame
		out.CurrentGame = &game
	}
	return out
}
