package grid

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// ObservationRadius is the Chebyshev radius the agent marks as explored
// around each cell it occupies.
const ObservationRadius = 1

// Footprint returns every location within Chebyshev distance radius of
// any of locs, the locations themselves included.
func Footprint(radius int, locs ...Location) mapset.Set[Location] {
	out := mapset.New[Location]()
	for _, l := range locs {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				out.Put(l.Add(dx, dy))
			}
		}
	}
	return out
}

// UpdateFrontier removes the footprint from the frontier in place and
// returns how many cells were removed.
func UpdateFrontier(frontier, footprint mapset.Set[Location]) int {
	removed := 0
	footprint.Each(func(l Location) {
		if frontier.Has(l) {
			frontier.Remove(l)
			removed++
		}
	})
	return removed
}

// Frontier tracks the floor cells not yet covered by the agent's
// observation footprint. It only ever shrinks. Dropped cells leave the
// frontier but still count as unexplored until a footprint covers them.
type Frontier struct {
	cells     mapset.Set[Location]
	abandoned mapset.Set[Location]
	total     int
	radius    int
}

// NewFrontier starts from every walkable cell of g.
func NewFrontier(g *Grid, radius int) *Frontier {
	cells := g.FloorPositions()
	return &Frontier{
		cells:     cells,
		abandoned: mapset.New[Location](),
		total:     cells.Size(),
		radius:    radius,
	}
}

// Cover marks the footprint of locs as explored.
func (f *Frontier) Cover(locs ...Location) int {
	fp := Footprint(f.radius, locs...)
	UpdateFrontier(f.abandoned, fp)
	return UpdateFrontier(f.cells, fp)
}

// Drop takes a cell off the frontier once it has been picked as a target,
// so it is never picked twice.
func (f *Frontier) Drop(l Location) bool {
	if !f.cells.Has(l) {
		return false
	}
	f.cells.Remove(l)
	f.abandoned.Put(l)
	return true
}

func (f *Frontier) Has(l Location) bool {
	return f.cells.Has(l)
}

func (f *Frontier) Size() int {
	return f.cells.Size()
}

func (f *Frontier) Empty() bool {
	return f.cells.Size() == 0
}

// Total is the number of floor cells the frontier started with.
func (f *Frontier) Total() int {
	return f.total
}

// Abandoned counts dropped cells no footprint has covered since.
func (f *Frontier) Abandoned() int {
	return f.abandoned.Size()
}

// Unexplored is the fraction of the floor never covered by a footprint.
func (f *Frontier) Unexplored() float64 {
	if f.total == 0 {
		return 0
	}
	return float64(f.cells.Size()+f.abandoned.Size()) / float64(f.total)
}

// Sorted returns the frontier cells in row-major order.
func (f *Frontier) Sorted() []Location {
	out := make([]Location, 0, f.cells.Size())
	f.cells.Each(func(l Location) {
		out = append(out, l)
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}
