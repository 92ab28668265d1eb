package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EpisodeContext carries what one episode needs and what it produced.
// Every episode gets its own context, so episodes running in parallel
// share nothing.
type EpisodeContext struct {
	Context context.Context
	Cancel  context.CancelFunc

	ID         string
	Run        int
	Episode    int
	Experiment string
	// Seed for every random choice made inside the episode
	Seed uint64

	Outcome     *Outcome
	Err         error
	TimedOut    bool
	RunDuration time.Duration
}

// NewEpisodeContext derives the episode context from parent, bounded by
// timeout when it is positive.
func NewEpisodeContext(parent context.Context, run, episode int, experiment string, timeout time.Duration, seed uint64) *EpisodeContext {
	var ctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	return &EpisodeContext{
		Context:    ctx,
		Cancel:     cancel,
		ID:         uuid.NewString(),
		Run:        run,
		Episode:    episode,
		Experiment: experiment,
		Seed:       seed,
	}
}

// SetError records err, telling a timeout apart from other failures.
func (e *EpisodeContext) SetError(err error) {
	e.Err = err
	if deadline, ok := e.Context.Deadline(); ok && time.Now().After(deadline) {
		e.TimedOut = true
	}
}

// Valid reports whether the episode finished with an outcome.
func (e *EpisodeContext) Valid() bool {
	return e.Err == nil && !e.TimedOut && e.Outcome != nil
}
