// Package minigame implements the boundary contract every mini-game renderer
// must satisfy: success derived from the passing score, a single completion
// callback fired exactly once, and forced finalization on countdown expiry
// with whatever score has accumulated. Renderer internals (scenes, scoring
// rules) stay outside this package.
package minigame

import (
	"sync"
	"time"

	"github.com/skillquest/learning-service/internal/learning"
)

// CompleteFunc receives the single end-of-session result.
type CompleteFunc func(result learning.GameResult)

// Runner tracks one mini-game session against its config.
type Runner struct {
	cfg        learning.GameConfig
	xpReward   int
	onComplete CompleteFunc

	mu      sync.Mutex
	score   int
	started time.Time
	timer   *time.Timer
	done    sync.Once
	now     func() time.Time
}

// NewRunner starts a session clock for the given config. When the config
// declares a time limit, expiry finalizes the session with the accumulated
// score; the expiry is purely local and cancels nothing in flight.
func NewRunner(cfg learning.GameConfig, xpReward int, onComplete CompleteFunc) *Runner {
	r := &Runner{
		cfg:        cfg,
		xpReward:   xpReward,
		onComplete: onComplete,
		now:        time.Now,
	}
	r.started = r.now()
	if cfg.TimeLimit > 0 {
		r.timer = time.AfterFunc(time.Duration(cfg.TimeLimit)*time.Second, r.expire)
	}
	return r
}

// AddScore tallies points for the session.
func (r *Runner) AddScore(points int) {
	r.mu.Lock()
	r.score += points
	r.mu.Unlock()
}

// Score returns the current tally.
func (r *Runner) Score() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.score
}

// Finish ends the session on an in-game win or exit condition. Only the
// first of Finish and timer expiry reports a result.
func (r *Runner) Finish() {
	r.finalize()
}

func (r *Runner) expire() {
	r.finalize()
}

func (r *Runner) finalize() {
	r.done.Do(func() {
		if r.timer != nil {
			r.timer.Stop()
		}

		r.mu.Lock()
		score := r.score
		elapsed := int(r.now().Sub(r.started).Seconds())
		r.mu.Unlock()

		result := learning.GameResult{
			Score:     score,
			TimeSpent: elapsed,
			Success:   score >= r.cfg.PassingScore,
		}
		if result.Success {
			result.XPEarned = r.xpReward
		}
		r.onComplete(result)
	})
}
