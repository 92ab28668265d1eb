package pathfind

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/room-explorer/grid"
)

func TestHeuristics(t *testing.T) {
	a, b := grid.Location{X: 0, Y: 0}, grid.Location{X: 3, Y: 4}
	assert.Equal(t, 7.0, Manhattan(nil, a, b))
	assert.Equal(t, 5.0, Euclidean(nil, a, b))
	assert.Equal(t, 4.0, Chebyshev(nil, a, b))
}

func TestWallPenalty(t *testing.T) {
	g := grid.MustParse(`
.|...
.|...
.....`, table)
	h := WallPenalty(8)

	// bending vertically first avoids the wall
	assert.Equal(t, 4.0, h(g, grid.Location{X: 0, Y: 0}, grid.Location{X: 2, Y: 2}))
	// both bends cross the wall once
	assert.Equal(t, 10.0, h(g, grid.Location{X: 0, Y: 0}, grid.Location{X: 2, Y: 1}))
	// on open floor it matches Manhattan
	assert.Equal(t, Manhattan(g, grid.Location{X: 2, Y: 0}, grid.Location{X: 4, Y: 2}), h(g, grid.Location{X: 2, Y: 0}, grid.Location{X: 4, Y: 2}))
	assert.Equal(t, 0.0, h(g, grid.Location{X: 3, Y: 1}, grid.Location{X: 3, Y: 1}))
}

func TestByName(t *testing.T) {
	g := grid.MustParse("..|..", table)
	a, b := grid.Location{X: 0, Y: 0}, grid.Location{X: 4, Y: 0}

	for _, name := range Names() {
		h, err := ByName(name, 0)
		require.NoError(t, err, name)
		assert.False(t, math.IsNaN(h(g, a, b)), name)
	}

	h, err := ByName("tfffm", 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0+DefaultWallPenalty, h(g, a, b))

	h, err = ByName("wallpenalty", 30)
	require.NoError(t, err)
	assert.Equal(t, 33.0, h(g, a, b))

	_, err = ByName("nope", 0)
	assert.Error(t, err)
}
