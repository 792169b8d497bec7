package learning

import "errors"

var (
	// ErrFutureSnapshot indicates a persisted snapshot written by a newer schema version.
	ErrFutureSnapshot = errors.New("snapshot schema version is newer than this build")
	// ErrNoMigrationPath indicates a snapshot version with no registered migration.
	ErrNoMigrationPath = errors.New("no migration path for snapshot version")
)
