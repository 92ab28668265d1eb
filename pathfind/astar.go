package pathfind

import (
	"errors"
	"fmt"

	"github.com/zeu5/room-explorer/grid"
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

var ErrNotFound = errors.New("no path to target")

// Options configures a search. The zero value searches 4-directionally
// with the Manhattan heuristic.
type Options struct {
	Heuristic Heuristic
	Diagonal  bool
}

type node struct {
	loc grid.Location
	f   float64
	seq int
}

// FindPath returns a path from start to target, both included. A straight
// line along a shared row or column is tried first; otherwise an A* search
// runs over walkable cells not in excluded.
//
// The search never reopens a closed cell, so with an inadmissible
// heuristic the path may be longer than the shortest one.
func FindPath(g *grid.Grid, start, target grid.Location, excluded mapset.Set[grid.Location], opts Options) ([]grid.Location, error) {
	if !g.InBounds(start) || !g.InBounds(target) {
		return nil, fmt.Errorf("%w: %s -> %s out of bounds", ErrNotFound, start, target)
	}
	if !g.Walkable(target) || excluded.Has(target) {
		return nil, fmt.Errorf("%w: target %s is not walkable", ErrNotFound, target)
	}
	if start == target {
		return []grid.Location{start}, nil
	}
	if path, ok := StraightPath(g, start, target, excluded); ok {
		return path, nil
	}
	return search(g, start, target, excluded, opts)
}

// StraightPath walks the row or column start and target share. It gives up
// on any cell that is not plain walkable terrain: walls, virtual floor
// markers and excluded cells all send the caller to the full search.
func StraightPath(g *grid.Grid, start, target grid.Location, excluded mapset.Set[grid.Location]) ([]grid.Location, bool) {
	if start.X != target.X && start.Y != target.Y {
		return nil, false
	}
	dx, dy := sign(target.X-start.X), sign(target.Y-start.Y)
	path := []grid.Location{start}
	for l := start; l != target; {
		l = l.Add(dx, dy)
		k := g.Kind(l)
		if !k.Walkable() || k == grid.VirtualFloor || excluded.Has(l) {
			return nil, false
		}
		path = append(path, l)
	}
	return path, true
}

func search(g *grid.Grid, start, target grid.Location, excluded mapset.Set[grid.Location], opts Options) ([]grid.Location, error) {
	h := opts.Heuristic
	if h == nil {
		h = Manhattan
	}

	// equal f values pop in insertion order
	open := heap.New(func(a, b node) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		return a.seq < b.seq
	})
	closed := mapset.New[grid.Location]()
	cost := map[grid.Location]float64{start: 0}
	parent := make(map[grid.Location]grid.Location)
	seq := 0

	open.Push(node{loc: start, f: h(g, start, target), seq: seq})
	for open.Size() > 0 {
		current, _ := open.Pop()
		if closed.Has(current.loc) {
			continue
		}
		if current.loc == target {
			return buildPath(parent, start, target), nil
		}
		closed.Put(current.loc)

		for _, next := range g.Neighbors(current.loc, opts.Diagonal) {
			if closed.Has(next) || excluded.Has(next) {
				continue
			}
			c := cost[current.loc] + 1
			if prev, ok := cost[next]; ok && c >= prev {
				continue
			}
			cost[next] = c
			parent[next] = current.loc
			seq++
			open.Push(node{loc: next, f: c + h(g, next, target), seq: seq})
		}
	}
	return nil, fmt.Errorf("%w: %s -> %s", ErrNotFound, start, target)
}

func buildPath(parent map[grid.Location]grid.Location, start, target grid.Location) []grid.Location {
	path := []grid.Location{target}
	for l := target; l != start; {
		l = parent[l]
		path = append(path, l)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
