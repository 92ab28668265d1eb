package explore

import (
	"time"

	"github.com/zeu5/room-explorer/belief"
	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/pathfind"
	"github.com/zeu5/room-explorer/policies"
	"golang.org/x/exp/rand"
)

// Config tunes one episode. Zero fields fall back to the defaults noted
// on each of them.
type Config struct {
	// Threshold a hypothesis must reach to stop early, default 0.95
	Threshold float64
	// Selector picks frontier targets, default greedy nearest by Manhattan
	Selector policies.Selector
	// Heuristic drives A*, default Manhattan
	Heuristic pathfind.Heuristic
	// Diagonal enables 8-directional movement
	Diagonal bool
	// Radius of the Chebyshev observation footprint, default 1
	Radius int
	// MaxMoves caps exploration moves, 0 means unlimited
	MaxMoves int
	// FollowExit makes Run walk the exit path after a decision
	FollowExit bool
	// Record keeps a trace of every move
	Record bool
}

func (c Config) withDefaults() Config {
	if c.Threshold <= 0 {
		c.Threshold = belief.DefaultThreshold
	}
	if c.Heuristic == nil {
		c.Heuristic = pathfind.Manhattan
	}
	if c.Selector == nil {
		r := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
		c.Selector = policies.NewBiased(1.0, pathfind.Manhattan, r)
	}
	if c.Radius <= 0 {
		c.Radius = grid.ObservationRadius
	}
	return c
}
