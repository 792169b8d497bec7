package learning

import (
	"context"
	"encoding/json"
	"fmt"
)

// SlotName is the durable storage slot the whole aggregate lives under.
const SlotName = "skillquest-learning"

// SchemaVersion tags every written snapshot. Bump it together with a new
// entry in the migrations table whenever the persisted shape changes.
const SchemaVersion = 2

// SlotStore persists the raw snapshot bytes for a single named slot.
type SlotStore interface {
	Load(ctx context.Context) (data []byte, ok bool, err error)
	Save(ctx context.Context, data []byte) error
}

type envelope struct {
	Version int   `json:"version"`
	State   State `json:"state"`
}

// A migration transforms a snapshot written at version From into the shape
// expected at From+1. Transforms are pure state rewrites applied in order.
type migration struct {
	From  int
	Apply func(*State)
}

var migrations = []migration{
	{From: 1, Apply: resetStageVocabulary},
}

// resetStageVocabulary handles the stage-vocabulary change between versions
// 1 and 2. The old and new vocabularies have no clean 1:1 mapping, so
// in-progress stage position is intentionally discarded: every level drops
// back to its scheme's first stage and the level selection is cleared.
func resetStageVocabulary(st *State) {
	for ci := range st.Courses {
		scheme := SchemeByName(st.Courses[ci].Scheme)
		for li := range st.Courses[ci].Levels {
			st.Courses[ci].Levels[li].CurrentStage = scheme.First()
		}
	}
	st.UserProgress.CurrentLevel = ""
}

// Gateway serializes the aggregate to a single versioned slot and migrates
// older snapshots forward on load.
type Gateway struct {
	slot SlotStore
}

// NewGateway wraps a slot store with the snapshot codec.
func NewGateway(slot SlotStore) *Gateway {
	return &Gateway{slot: slot}
}

// Load reads the slot, migrates the snapshot to the current schema version,
// and returns the state. ok is false when no snapshot has ever been written.
func (g *Gateway) Load(ctx context.Context) (State, bool, error) {
	data, ok, err := g.slot.Load(ctx)
	if err != nil {
		return State{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		return State{}, false, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return State{}, false, fmt.Errorf("decode snapshot: %w", err)
	}

	if err := migrate(&env); err != nil {
		return State{}, false, err
	}

	return env.State, true, nil
}

// Save rewrites the whole snapshot at the current schema version.
func (g *Gateway) Save(ctx context.Context, st State) error {
	data, err := json.Marshal(envelope{Version: SchemaVersion, State: st})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := g.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func migrate(env *envelope) error {
	if env.Version > SchemaVersion {
		return fmt.Errorf("%w: snapshot=%d current=%d", ErrFutureSnapshot, env.Version, SchemaVersion)
	}
	for env.Version < SchemaVersion {
		step, ok := migrationFrom(env.Version)
		if !ok {
			return fmt.Errorf("%w: %d", ErrNoMigrationPath, env.Version)
		}
		step.Apply(&env.State)
		env.Version++
	}
	return nil
}

func migrationFrom(version int) (migration, bool) {
	for _, m := range migrations {
		if m.From == version {
			return m, true
		}
	}
	return migration{}, false
}
