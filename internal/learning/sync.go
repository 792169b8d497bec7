package learning

import "context"

// RemoteProgress is the server's view of a learner's accomplishments, pulled
// wholesale after login to reconcile local derived flags against server truth.
type RemoteProgress struct {
	TotalXP         int
	Level           int
	CurrentCourse   string
	CurrentLevel    string
	Badges          []Badge
	CompletedLevels []string
}

// LevelCompletion is the payload pushed when a level is completed.
type LevelCompletion struct {
	LevelID  string
	CourseID string
	XPEarned int
}

// ProgressUpdate is the payload pushed after the aggregate totals change.
type ProgressUpdate struct {
	TotalXP       int
	Level         int
	CurrentCourse string
	CurrentLevel  string
}

// Syncer is the remote collaborator the store synchronizes against. Pushes
// are best-effort: the store logs and swallows their failures, local state
// stays authoritative for the session. Only Login and Signup surface errors
// to callers.
type Syncer interface {
	Login(ctx context.Context, username, password string) (User, error)
	Signup(ctx context.Context, username, password, email string) (User, error)
	FetchProgress(ctx context.Context) (RemoteProgress, error)
	PushLevelCompletion(ctx context.Context, completion LevelCompletion) error
	PushProgress(ctx context.Context, update ProgressUpdate) error
	PushBadge(ctx context.Context, badge Badge) error
}
