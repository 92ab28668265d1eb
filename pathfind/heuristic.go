package pathfind

import (
	"fmt"
	"math"

	"github.com/zeu5/room-explorer/grid"
)

// Heuristic estimates the cost between two cells of g.
type Heuristic func(g *grid.Grid, a, b grid.Location) float64

// DefaultWallPenalty is the per-wall cost used by WallPenalty when no
// other value is configured.
const DefaultWallPenalty = 8

func Manhattan(_ *grid.Grid, a, b grid.Location) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

func Euclidean(_ *grid.Grid, a, b grid.Location) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Chebyshev is the diagonal distance, exact for 8-directional movement on
// an open grid.
func Chebyshev(_ *grid.Grid, a, b grid.Location) float64 {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return float64(dx)
	}
	return float64(dy)
}

// WallPenalty walks the two L shaped routes from a to b, one bending
// horizontally first and one vertically first, charging 1 per open cell
// and penalty per wall cell, and returns the cheaper route. It is not
// admissible and is meant for ranking targets, not for A*.
func WallPenalty(penalty float64) Heuristic {
	return func(g *grid.Grid, a, b grid.Location) float64 {
		corner1 := grid.Location{X: b.X, Y: a.Y}
		corner2 := grid.Location{X: a.X, Y: b.Y}
		h := segmentCost(g, a, corner1, penalty) + segmentCost(g, corner1, b, penalty)
		v := segmentCost(g, a, corner2, penalty) + segmentCost(g, corner2, b, penalty)
		return math.Min(h, v)
	}
}

// segmentCost charges every cell after from up to and including to,
// which must share a row or column.
func segmentCost(g *grid.Grid, from, to grid.Location, penalty float64) float64 {
	dx, dy := sign(to.X-from.X), sign(to.Y-from.Y)
	cost := 0.0
	for l := from; l != to; {
		l = l.Add(dx, dy)
		if g.IsWall(l) {
			cost += penalty
		} else {
			cost += 1
		}
	}
	return cost
}

// ByName resolves a heuristic from configuration. penalty only applies to
// the wall penalty heuristic; zero means DefaultWallPenalty.
func ByName(name string, penalty float64) (Heuristic, error) {
	switch name {
	case "manhattan":
		return Manhattan, nil
	case "euclidean":
		return Euclidean, nil
	case "chebyshev", "diagonal":
		return Chebyshev, nil
	case "wallpenalty", "tfffm":
		if penalty <= 0 {
			penalty = DefaultWallPenalty
		}
		return WallPenalty(penalty), nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}

// Names lists the heuristics ByName accepts, aliases left out.
func Names() []string {
	return []string{"manhattan", "euclidean", "chebyshev", "wallpenalty"}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func sign(a int) int {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}
