package policies

import (
	"math"

	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/pathfind"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Softmin samples a candidate with weight exp(-d/temperature), d being its
// distance to the agent. Low temperatures approach Nearest, high ones
// Uniform.
type Softmin struct {
	distance    pathfind.Heuristic
	temperature float64
	rand        rand.Source
}

var _ Selector = &Softmin{}

func NewSoftmin(temperature float64, distance pathfind.Heuristic, r *rand.Rand) *Softmin {
	if distance == nil {
		distance = pathfind.Manhattan
	}
	if temperature <= 0 {
		temperature = 1
	}
	s := &Softmin{
		distance:    distance,
		temperature: temperature,
	}
	if r != nil {
		s.rand = r
	}
	return s
}

func (s *Softmin) Select(g *grid.Grid, from grid.Location, candidates []grid.Location) grid.Location {
	dists := make([]float64, len(candidates))
	min := math.Inf(1)
	for i, c := range candidates {
		dists[i] = s.distance(g, from, c)
		if dists[i] < min {
			min = dists[i]
		}
	}
	// shifting by the minimum keeps the nearest weight at 1
	weights := make([]float64, len(candidates))
	for i, d := range dists {
		weights[i] = math.Exp(-(d - min) / s.temperature)
	}
	i, ok := sampleuv.NewWeighted(weights, s.rand).Take()
	if !ok {
		return candidates[0]
	}
	return candidates[i]
}
