package grid

import "fmt"

// Location is a cell coordinate: X is the column, Y the row.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (l Location) Add(dx, dy int) Location {
	return Location{X: l.X + dx, Y: l.Y + dy}
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.X, l.Y)
}

// Less orders locations row-major, used wherever a deterministic
// iteration order over a set is needed.
func (l Location) Less(other Location) bool {
	if l.Y != other.Y {
		return l.Y < other.Y
	}
	return l.X < other.X
}

var (
	// orthogonal offsets in N, E, S, W order
	orthogonal = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	// diagonal offsets in NE, SE, SW, NW order
	diagonal = [4][2]int{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
)

// Orthogonal returns the 4 orthogonal neighbours of l (N, E, S, W), ignoring bounds.
func (l Location) Orthogonal() [4]Location {
	var out [4]Location
	for i, d := range orthogonal {
		out[i] = l.Add(d[0], d[1])
	}
	return out
}

// Surrounding returns the 8 cells around l, orthogonal ones first, ignoring bounds.
func (l Location) Surrounding() [8]Location {
	var out [8]Location
	for i, d := range orthogonal {
		out[i] = l.Add(d[0], d[1])
	}
	for i, d := range diagonal {
		out[4+i] = l.Add(d[0], d[1])
	}
	return out
}
