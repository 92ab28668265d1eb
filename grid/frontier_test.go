package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFootprint(t *testing.T) {
	fp := Footprint(1, Location{X: 5, Y: 5})
	assert.Equal(t, 9, fp.Size())
	assert.True(t, fp.Has(Location{X: 4, Y: 4}))
	assert.True(t, fp.Has(Location{X: 6, Y: 6}))
	assert.False(t, fp.Has(Location{X: 7, Y: 5}))

	// overlapping footprints are merged
	fp = Footprint(1, Location{X: 0, Y: 0}, Location{X: 1, Y: 0})
	assert.Equal(t, 12, fp.Size())
}

func TestFrontier_Shrinks(t *testing.T) {
	g := MustParse(room, testTable(t))
	f := NewFrontier(g, ObservationRadius)
	assert.Equal(t, 20, f.Total())
	assert.Equal(t, 1.0, f.Unexplored())

	removed := f.Cover(Location{X: 3, Y: 3})
	assert.Equal(t, 9, removed)
	assert.Equal(t, 11, f.Size())
	assert.InDelta(t, 0.55, f.Unexplored(), 1e-9)

	// covering the same place twice removes nothing
	assert.Equal(t, 0, f.Cover(Location{X: 3, Y: 3}))

	path := []Location{{3, 3}, {2, 3}, {1, 3}, {1, 2}, {1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}, {5, 2}, {5, 3}}
	prev := f.Size()
	for _, l := range path {
		f.Cover(l)
		assert.LessOrEqual(t, f.Size(), prev)
		prev = f.Size()
	}
	assert.True(t, f.Empty())
}

func TestFrontier_DropAndSorted(t *testing.T) {
	f := NewFrontier(MustParse(room, testTable(t)), ObservationRadius)
	assert.True(t, f.Drop(Location{X: 1, Y: 1}))
	assert.False(t, f.Drop(Location{X: 1, Y: 1}))
	assert.False(t, f.Has(Location{X: 1, Y: 1}))
	assert.Equal(t, 1, f.Abandoned())
	assert.Equal(t, 1.0, f.Unexplored(), "dropped cells are not explored")

	sorted := f.Sorted()
	assert.Len(t, sorted, 19)
	assert.Equal(t, Location{X: 2, Y: 1}, sorted[0])
	assert.Equal(t, Location{X: 5, Y: 4}, sorted[len(sorted)-1])
	for i := 1; i < len(sorted); i++ {
		assert.True(t, sorted[i-1].Less(sorted[i]))
	}

	f.Cover(Location{X: 2, Y: 2})
	assert.Equal(t, 0, f.Abandoned())
	assert.InDelta(t, 11.0/20, f.Unexplored(), 1e-9)
}

func TestUpdateFrontier(t *testing.T) {
	g := MustParse(room, testTable(t))
	frontier := g.UnvisitedFloor()
	removed := UpdateFrontier(frontier, Footprint(ObservationRadius, Location{X: 1, Y: 1}))
	assert.Equal(t, 4, removed)
	assert.Equal(t, 15, frontier.Size())
}

func TestHeatmap(t *testing.T) {
	h := NewHeatmap(3, 2)
	h.Visit(Location{X: 0, Y: 0})
	h.Visit(Location{X: 0, Y: 0})
	h.Visit(Location{X: 2, Y: 1})
	h.Visit(Location{X: 9, Y: 9})

	assert.Equal(t, 2, h.Count(Location{X: 0, Y: 0}))
	assert.Equal(t, 0, h.Count(Location{X: 9, Y: 9}))
	assert.Equal(t, 2.0, h.Max())

	c, r := h.Dims()
	assert.Equal(t, 3, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 0.0, h.Y(0))
	assert.Equal(t, 2.0, h.Z(0, 1), "first map row is the top plot row")
	assert.Equal(t, 1.0, h.Z(2, 0))

	merged := MergeHeatmaps(h, NewHeatmap(4, 1))
	assert.Equal(t, 4, merged.Width)
	assert.Equal(t, 2, merged.Height)
	assert.Equal(t, 1, merged.Count(Location{X: 2, Y: 1}))
}
