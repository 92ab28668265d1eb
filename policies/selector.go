package policies

import (
	"fmt"

	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/pathfind"
	"golang.org/x/exp/rand"
)

// Selector picks the next exploration target. candidates is never empty
// and arrives in row-major order, which is what makes ties reproducible.
type Selector interface {
	Select(g *grid.Grid, from grid.Location, candidates []grid.Location) grid.Location
}

// Nearest picks the candidate closest to the agent under distance, the
// first one in row-major order on ties.
type Nearest struct {
	distance pathfind.Heuristic
}

var _ Selector = &Nearest{}

func NewNearest(distance pathfind.Heuristic) *Nearest {
	if distance == nil {
		distance = pathfind.Manhattan
	}
	return &Nearest{distance: distance}
}

func (n *Nearest) Select(g *grid.Grid, from grid.Location, candidates []grid.Location) grid.Location {
	best := candidates[0]
	bestDist := n.distance(g, from, best)
	for _, c := range candidates[1:] {
		if d := n.distance(g, from, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Uniform picks any candidate with equal probability.
type Uniform struct {
	rand *rand.Rand
}

var _ Selector = &Uniform{}

func NewUniform(r *rand.Rand) *Uniform {
	return &Uniform{rand: r}
}

func (u *Uniform) Select(_ *grid.Grid, _ grid.Location, candidates []grid.Location) grid.Location {
	return candidates[u.rand.Intn(len(candidates))]
}

// Biased trades exploitation against exploration: with probability bias
// it asks Nearest, otherwise Uniform. A bias of 1 is fully greedy.
type Biased struct {
	bias    float64
	rand    *rand.Rand
	nearest Selector
	uniform Selector
}

var _ Selector = &Biased{}

func NewBiased(bias float64, distance pathfind.Heuristic, r *rand.Rand) *Biased {
	return &Biased{
		bias:    bias,
		rand:    r,
		nearest: NewNearest(distance),
		uniform: NewUniform(r),
	}
}

func (b *Biased) Select(g *grid.Grid, from grid.Location, candidates []grid.Location) grid.Location {
	if b.rand.Float64() < b.bias {
		return b.nearest.Select(g, from, candidates)
	}
	return b.uniform.Select(g, from, candidates)
}

// Config names a selector and its parameters.
type Config struct {
	Name        string
	Bias        float64
	Temperature float64
	Distance    pathfind.Heuristic
}

// New builds the selector named by cfg: "biased" (also the empty name),
// "nearest", "uniform" or "softmin".
func New(cfg Config, r *rand.Rand) (Selector, error) {
	switch cfg.Name {
	case "", "biased":
		return NewBiased(cfg.Bias, cfg.Distance, r), nil
	case "nearest":
		return NewNearest(cfg.Distance), nil
	case "uniform":
		return NewUniform(r), nil
	case "softmin":
		return NewSoftmin(cfg.Temperature, cfg.Distance, r), nil
	default:
		return nil, fmt.Errorf("unknown selection policy %q", cfg.Name)
	}
}
