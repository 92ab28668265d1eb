package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

var (
	ErrEmptyGrid          = errors.New("grid has no cells")
	ErrNotRectangular     = errors.New("grid rows differ in length")
	ErrPlayerNotFound     = errors.New("player marker not found")
	ErrAmbiguousPlayer    = errors.New("more than one player marker")
	ErrNoWalkableNeighbor = errors.New("no walkable neighbour")
)

// Grid is a rectangular map of symbols stored as a flat row-major array,
// with the kind of every cell resolved once at construction.
type Grid struct {
	width  int
	height int
	cells  []byte
	kinds  []Kind
	table  *Table
}

// New builds a grid from rows of symbols indexed [y][x].
func New(rows [][]byte, table *Table) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(rows[0])
	g := &Grid{
		width:  width,
		height: len(rows),
		cells:  make([]byte, 0, width*len(rows)),
		kinds:  make([]Kind, 0, width*len(rows)),
		table:  table,
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotRectangular, y, len(row), width)
		}
		for x, b := range row {
			k, err := table.Classify(b)
			if err != nil {
				return nil, fmt.Errorf("cell (%d, %d): %w", x, y, err)
			}
			g.cells = append(g.cells, b)
			g.kinds = append(g.kinds, k)
		}
	}
	return g, nil
}

// Parse builds a grid from newline separated rows. A leading newline is
// dropped so maps can be written as raw string literals.
func Parse(s string, table *Table) (*Grid, error) {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	rows := make([][]byte, len(lines))
	for i, line := range lines {
		rows[i] = []byte(line)
	}
	return New(rows, table)
}

// MustParse is Parse for maps known to be valid (fixtures, examples).
func MustParse(s string, table *Table) *Grid {
	g, err := Parse(s, table)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) Table() *Table {
	return g.table
}

func (g *Grid) InBounds(l Location) bool {
	return l.X >= 0 && l.X < g.width && l.Y >= 0 && l.Y < g.height
}

func (g *Grid) index(l Location) int {
	return l.Y*g.width + l.X
}

// At returns the symbol at l, 0 when out of bounds.
func (g *Grid) At(l Location) byte {
	if !g.InBounds(l) {
		return 0
	}
	return g.cells[g.index(l)]
}

// Kind returns the kind at l. Out of bounds cells are Unknown.
func (g *Grid) Kind(l Location) Kind {
	if !g.InBounds(l) {
		return Unknown
	}
	return g.kinds[g.index(l)]
}

func (g *Grid) Walkable(l Location) bool {
	return g.Kind(l).Walkable()
}

func (g *Grid) IsWall(l Location) bool {
	return g.Kind(l) == Wall
}

func (g *Grid) set(l Location, b byte, k Kind) {
	i := g.index(l)
	g.cells[i] = b
	g.kinds[i] = k
}

// Clone returns an independent copy sharing the symbol table.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  append([]byte(nil), g.cells...),
		kinds:  append([]Kind(nil), g.kinds...),
		table:  g.table,
	}
}

// Rows returns a copy of the symbols indexed [y][x].
func (g *Grid) Rows() [][]byte {
	rows := make([][]byte, g.height)
	for y := 0; y < g.height; y++ {
		rows[y] = append([]byte(nil), g.cells[y*g.width:(y+1)*g.width]...)
	}
	return rows
}

func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		b.Write(g.cells[y*g.width : (y+1)*g.width])
		if y < g.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ForEach visits every cell row by row.
func (g *Grid) ForEach(fn func(l Location, symbol byte, kind Kind)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			fn(Location{X: x, Y: y}, g.cells[i], g.kinds[i])
		}
	}
}

// LocatePlayer returns the unique player cell.
func (g *Grid) LocatePlayer() (Location, error) {
	found := make([]Location, 0, 1)
	g.ForEach(func(l Location, _ byte, k Kind) {
		if k == Player {
			found = append(found, l)
		}
	})
	switch len(found) {
	case 0:
		return Location{}, ErrPlayerNotFound
	case 1:
		return found[0], nil
	default:
		return Location{}, fmt.Errorf("%w: %d markers", ErrAmbiguousPlayer, len(found))
	}
}

// FloorPositions returns every walkable cell, the player's own included.
func (g *Grid) FloorPositions() mapset.Set[Location] {
	out := mapset.New[Location]()
	g.ForEach(func(l Location, _ byte, k Kind) {
		if k.Walkable() {
			out.Put(l)
		}
	})
	return out
}

// UnvisitedFloor returns the walkable cells minus the player's start cell.
func (g *Grid) UnvisitedFloor() mapset.Set[Location] {
	out := mapset.New[Location]()
	g.ForEach(func(l Location, _ byte, k Kind) {
		if k.Walkable() && k != Player {
			out.Put(l)
		}
	})
	return out
}

// Neighbors returns the walkable cells reachable from l in one step.
// Diagonal steps are only offered when both orthogonal cells they pass
// between are walkable.
func (g *Grid) Neighbors(l Location, diagonalMoves bool) []Location {
	out := make([]Location, 0, 8)
	for _, n := range l.Orthogonal() {
		if g.Walkable(n) {
			out = append(out, n)
		}
	}
	if !diagonalMoves {
		return out
	}
	for _, d := range diagonal {
		n := l.Add(d[0], d[1])
		if !g.Walkable(n) {
			continue
		}
		if g.Walkable(l.Add(d[0], 0)) && g.Walkable(l.Add(0, d[1])) {
			out = append(out, n)
		}
	}
	return out
}

// ClosestWalkableNeighbor picks a walkable cell among the 8 around marker.
// Real floor wins over virtual floor, and orthogonal cells win over
// diagonal ones. Within a group the one closest to from (Manhattan) wins,
// first in N-E-S-W order on ties. Virtual neighbours are only used when
// marker has no real one, as in a 2-wide band between walls.
func (g *Grid) ClosestWalkableNeighbor(marker, from Location) (Location, error) {
	around := marker.Surrounding()
	for _, virtual := range []bool{false, true} {
		for _, group := range [][]Location{around[:4], around[4:]} {
			best, bestDist, ok := Location{}, 0, false
			for _, n := range group {
				k := g.Kind(n)
				if !k.Walkable() || (k == VirtualFloor) != virtual {
					continue
				}
				d := abs(n.X-from.X) + abs(n.Y-from.Y)
				if !ok || d < bestDist {
					best, bestDist, ok = n, d, true
				}
			}
			if ok {
				return best, nil
			}
		}
	}
	return Location{}, fmt.Errorf("%w: %s", ErrNoWalkableNeighbor, marker)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
