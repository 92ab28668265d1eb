package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(DefaultSymbols().WithLandmarks([]byte("AB")))
	require.NoError(t, err)
	return table
}

const room = `
-------
|.....|
|.A...|
|..@..|
|.....|
-------`

func TestClassify(t *testing.T) {
	table := testTable(t)
	cases := []struct {
		symbol byte
		want   Kind
	}{
		{'|', Wall},
		{'-', Wall},
		{'.', Floor},
		{'{', VirtualFloor},
		{'@', Player},
		{'A', Landmark},
		{' ', Unknown},
	}
	for _, c := range cases {
		got, err := table.Classify(c.symbol)
		require.NoError(t, err, "Classify(%q)", c.symbol)
		assert.Equal(t, c.want, got, "Classify(%q)", c.symbol)
	}

	_, err := table.Classify('Z')
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestNewTable_Conflict(t *testing.T) {
	_, err := NewTable(DefaultSymbols().WithLandmarks([]byte("|")))
	assert.ErrorIs(t, err, ErrSymbolConflict)
}

func TestWalkableSymbols(t *testing.T) {
	got := testTable(t).WalkableSymbols()
	assert.ElementsMatch(t, []byte(".{@AB"), got)
}

func TestNew_Invalid(t *testing.T) {
	table := testTable(t)

	_, err := New(nil, table)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = New([][]byte{[]byte("..."), []byte("..")}, table)
	assert.ErrorIs(t, err, ErrNotRectangular)

	_, err = New([][]byte{[]byte(".Z.")}, table)
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestLocatePlayer(t *testing.T) {
	table := testTable(t)

	g := MustParse(room, table)
	loc, err := g.LocatePlayer()
	require.NoError(t, err)
	assert.Equal(t, Location{X: 3, Y: 3}, loc)

	_, err = MustParse("...\n...", table).LocatePlayer()
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = MustParse(".@.\n.@.", table).LocatePlayer()
	assert.ErrorIs(t, err, ErrAmbiguousPlayer)
}

func TestFloorPositions(t *testing.T) {
	g := MustParse(room, testTable(t))

	floor := g.FloorPositions()
	assert.Equal(t, 20, floor.Size())
	assert.True(t, floor.Has(Location{X: 3, Y: 3}), "player cell counts as floor")
	assert.True(t, floor.Has(Location{X: 2, Y: 2}), "landmark cell counts as floor")
	assert.False(t, floor.Has(Location{X: 0, Y: 1}))

	unvisited := g.UnvisitedFloor()
	assert.Equal(t, 19, unvisited.Size())
	assert.False(t, unvisited.Has(Location{X: 3, Y: 3}))
}

func TestNeighbors(t *testing.T) {
	g := MustParse(`
.-.
...
...`, testTable(t))

	got := g.Neighbors(Location{X: 1, Y: 1}, false)
	assert.ElementsMatch(t, []Location{{2, 1}, {1, 2}, {0, 1}}, got)

	got = g.Neighbors(Location{X: 1, Y: 1}, true)
	// the northern diagonals would cut the wall corner and are left out
	assert.ElementsMatch(t, []Location{{2, 1}, {1, 2}, {0, 1}, {2, 2}, {0, 2}}, got)
}

func TestClosestWalkableNeighbor(t *testing.T) {
	table := testTable(t)
	g := MustParse(`
.....
.{{..
.....`, table)

	got, err := g.ClosestWalkableNeighbor(Location{X: 1, Y: 1}, Location{X: 0, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, Location{X: 1, Y: 2}, got)

	walled := MustParse(`
---
-{-
---`, table)
	_, err = walled.ClosestWalkableNeighbor(Location{X: 1, Y: 1}, Location{})
	assert.ErrorIs(t, err, ErrNoWalkableNeighbor)

	diagonalOnly := MustParse(`
.-.
-{-
---`, table)
	got, err = diagonalOnly.ClosestWalkableNeighbor(Location{X: 1, Y: 1}, Location{X: 2, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, Location{X: 2, Y: 0}, got)

	band := MustParse(`
----
-{{-
-{{-
----`, table)
	got, err = band.ClosestWalkableNeighbor(Location{X: 1, Y: 1}, Location{X: 2, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, Location{X: 2, Y: 1}, got, "falls back to virtual floor when nothing real is around")
}

func TestClone(t *testing.T) {
	g := MustParse(room, testTable(t))
	c := g.Clone()
	c.set(Location{X: 1, Y: 1}, '{', VirtualFloor)
	assert.Equal(t, byte('.'), g.At(Location{X: 1, Y: 1}))
	assert.Equal(t, byte('{'), c.At(Location{X: 1, Y: 1}))
}
