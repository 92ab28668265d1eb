package explorer

import (
	"fmt"
	"strings"

	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/types"
)

// Summary describes one recorded episode.
type Summary struct {
	EpisodeID string  `json:"episode_id"`
	Moves     int     `json:"moves"`
	Distinct  int     `json:"distinct"`
	Revisits  int     `json:"revisits"`
	Guess     int     `json:"guess"`
	Truth     int     `json:"truth"`
	Correct   bool    `json:"correct"`
	Belief    float64 `json:"belief"`
}

// Summarize counts the moves and distinct cells of a trace.
func Summarize(t *types.Trace) Summary {
	positions := t.Positions()
	distinct := make(map[grid.Location]bool, len(positions))
	for _, l := range positions {
		distinct[l] = true
	}
	s := Summary{
		EpisodeID: t.EpisodeID,
		Moves:     t.Len(),
		Distinct:  len(distinct),
		Revisits:  len(positions) - len(distinct),
		Guess:     t.Guess,
		Truth:     t.Truth,
		Correct:   t.Truth >= 0 && t.Guess == t.Truth,
	}
	if t.Guess >= 0 && t.Guess < len(t.Belief) {
		s.Belief = t.Belief[t.Guess]
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: moves=%d distinct=%d revisits=%d guess=%d truth=%d belief=%.3f",
		s.EpisodeID, s.Moves, s.Distinct, s.Revisits, s.Guess, s.Truth, s.Belief)
}

// Path draws the cells a trace visited up to step (inclusive; -1 for the
// start only). '@' marks the position after that step, '*' visited cells.
func Path(t *types.Trace, step int) string {
	rows := make([][]byte, t.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", t.Width))
	}
	mark := func(l grid.Location, b byte) {
		if l.Y >= 0 && l.Y < t.Height && l.X >= 0 && l.X < t.Width {
			rows[l.Y][l.X] = b
		}
	}
	current := t.Start
	mark(current, '*')
	for i := 0; i <= step && i < t.Len(); i++ {
		current = t.Steps[i].Position
		mark(current, '*')
	}
	mark(current, '@')

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = string(r)
	}
	return strings.Join(lines, "\n")
}
