package types

import (
	"context"
	"fmt"
)

// Environment is the world the explorer acts in. Step blocks until the
// move has been applied and returns the resulting observation.
type Environment interface {
	// Reset starts a new episode
	Reset(ctx context.Context) (*Observation, error)
	// Step applies one primitive move
	Step(ctx context.Context, m Move) (*Observation, error)
}

// Observation is a full snapshot of the map: symbols and display colours
// indexed [row][column], both of the same shape.
type Observation struct {
	Chars  [][]byte `json:"chars"`
	Colors [][]int  `json:"colors"`
}

// Color returns the colour at column x, row y, or -1 when the
// observation carries no colour there.
func (o *Observation) Color(x, y int) int {
	if y < 0 || y >= len(o.Colors) || x < 0 || x >= len(o.Colors[y]) {
		return -1
	}
	return o.Colors[y][x]
}

// Move is a primitive action. The numbering follows the MiniHack compass:
// the four orthogonal moves first, then the diagonals.
type Move int

const (
	North Move = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

var moveDeltas = [8][2]int{
	North:     {0, -1},
	East:      {1, 0},
	South:     {0, 1},
	West:      {-1, 0},
	NorthEast: {1, -1},
	SouthEast: {1, 1},
	SouthWest: {-1, 1},
	NorthWest: {-1, -1},
}

var moveNames = [8]string{"N", "E", "S", "W", "NE", "SE", "SW", "NW"}

func (m Move) Valid() bool {
	return m >= North && m <= NorthWest
}

func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Move(%d)", int(m))
	}
	return moveNames[m]
}

// Diagonal reports whether m changes both coordinates.
func (m Move) Diagonal() bool {
	return m >= NorthEast && m <= NorthWest
}

// Delta is the (column, row) offset m applies.
func (m Move) Delta() (int, int) {
	if !m.Valid() {
		return 0, 0
	}
	return moveDeltas[m][0], moveDeltas[m][1]
}

// MoveFromDelta is the inverse of Delta.
func MoveFromDelta(dx, dy int) (Move, bool) {
	for m, d := range moveDeltas {
		if d[0] == dx && d[1] == dy {
			return Move(m), true
		}
	}
	return 0, false
}

// ParseMove accepts the names printed by String.
func ParseMove(s string) (Move, error) {
	for m, name := range moveNames {
		if name == s {
			return Move(m), nil
		}
	}
	return 0, fmt.Errorf("unknown move %q", s)
}
