package explore

import (
	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/types"
)

// Reason tells why an episode ended.
type Reason string

const (
	Confident Reason = "confident"
	Exhausted Reason = "exhausted"
	MoveLimit Reason = "move-limit"
)

// Result is what an episode reports to its caller.
type Result struct {
	EpisodeID  string          `json:"episode_id"`
	Hypothesis int             `json:"hypothesis"`
	Confident  bool            `json:"confident"`
	Reason     Reason          `json:"reason"`
	Belief     []float64       `json:"belief"`
	Unexplored float64         `json:"unexplored"`
	Moves      int             `json:"moves"`
	Landmarks  int             `json:"landmarks"`
	ExitPath   []grid.Location `json:"exit_path,omitempty"`
	ExitMoves  int             `json:"exit_moves"`
	Reached    bool            `json:"reached_exit"`
	Heatmap    *grid.Heatmap   `json:"-"`
	Trace      *types.Trace    `json:"-"`
}

// Outcome converts the result for the experiment harness. truth is the
// hidden hypothesis of the room, -1 when unknown.
func (r *Result) Outcome(truth int) *types.Outcome {
	if r.Trace != nil {
		r.Trace.Truth = truth
	}
	return &types.Outcome{
		EpisodeID:  r.EpisodeID,
		Guess:      r.Hypothesis,
		Truth:      truth,
		Confident:  r.Confident,
		Moves:      r.Moves,
		Unexplored: r.Unexplored,
		Heatmap:    r.Heatmap,
		Trace:      r.Trace,
	}
}
