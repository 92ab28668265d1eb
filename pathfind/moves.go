package pathfind

import (
	"errors"
	"fmt"

	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/types"
)

var ErrInvalidMove = errors.New("path step is not a legal move")

// MovesFromPath converts consecutive path cells into primitive moves.
// A step that is not a unit move, or a diagonal one when diagonal is
// false, means the path does not fit the movement model.
func MovesFromPath(path []grid.Location, diagonal bool) ([]types.Move, error) {
	if len(path) < 2 {
		return nil, nil
	}
	moves := make([]types.Move, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		m, ok := types.MoveFromDelta(to.X-from.X, to.Y-from.Y)
		if !ok || (m.Diagonal() && !diagonal) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidMove, from, to)
		}
		moves = append(moves, m)
	}
	return moves, nil
}
