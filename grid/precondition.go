package grid

// Precondition returns a copy of g in which plain floor cells lining a wall
// are turned into virtual floor. For every wall and each orthogonal
// direction d, the cell at wall+d becomes virtual floor when wall+d and
// wall+2d are both non-wall and wall+d passes the corner check.
//
// All tests read g, never the copy being written, so the result does not
// depend on the order walls are visited in. Only plain floor is rewritten:
// the player marker and landmarks keep their symbols.
func Precondition(g *Grid) *Grid {
	out := g.Clone()
	virtual := g.table.symbols.Virtual
	g.ForEach(func(wall Location, _ byte, k Kind) {
		if k != Wall {
			return
		}
		for _, d := range orthogonal {
			one := wall.Add(d[0], d[1])
			two := wall.Add(2*d[0], 2*d[1])
			if !g.InBounds(two) {
				continue
			}
			if g.IsWall(one) || g.IsWall(two) {
				continue
			}
			if g.Kind(one) != Floor {
				continue
			}
			if !cornerConsistent(g, one) {
				continue
			}
			out.set(one, virtual, VirtualFloor)
		}
	})
	return out
}

// cornerConsistent rejects cells where two walkable orthogonal neighbours
// that are diagonal to each other do not share a walkable corner cell.
func cornerConsistent(g *Grid, l Location) bool {
	n := l.Orthogonal()
	// consecutive entries of N, E, S, W are mutually diagonal
	for i := 0; i < 4; i++ {
		a, b := n[i], n[(i+1)%4]
		if !g.Walkable(a) || !g.Walkable(b) {
			continue
		}
		corner := Location{X: a.X + b.X - l.X, Y: a.Y + b.Y - l.Y}
		if !g.Walkable(corner) {
			return false
		}
	}
	return true
}

// CountVirtual counts virtual floor markers in g.
func CountVirtual(g *Grid) int {
	count := 0
	for _, k := range g.kinds {
		if k == VirtualFloor {
			count++
		}
	}
	return count
}
