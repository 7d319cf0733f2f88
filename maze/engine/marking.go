package engine

// MarkTrail stamps every loop cell of out with the symbol it has in g.
// Cells off the loop keep whatever out already holds, so junk pipes never reach out.
func MarkTrail(g *Grid, loop *Loop, out *Grid) {
	for _, h := range loop.Path {
		if tile, ok := g.Get(h.Pos); ok {
			out.Set(h.Pos, tile)
		}
	}
}

// MarkInterior walks the loop and marks with Inside every blank cell directly beside the
// loop on its interior side. The side is right of travel for a clockwise loop and left of
// travel otherwise. At corners the side of the arriving direction is checked too.
// Boundary cells are never re-marked. It returns the number of cells marked.
func MarkInterior(loop *Loop, out *Grid) int {
	inward := Direction.Right
	if loop.Orientation() == CounterClockwise {
		inward = Direction.Left
	}

	marked := 0
	mark := func(pos Position) {
		if tile, ok := out.Get(pos); ok && tile == Ground {
			out.Set(pos, Inside)
			marked++
		}
	}

	arriving := loop.arrival()
	for _, h := range loop.headings() {
		mark(h.Pos.Add(inward(h.Dir)))
		if arriving != h.Dir {
			mark(h.Pos.Add(inward(arriving)))
		}
		arriving = h.Dir
	}
	return marked
}

// FillInterior spreads Inside marks through 4-connected Ground cells.
// Loop cells stamped by MarkTrail bound the spread. It returns the number of cells added.
func FillInterior(out *Grid) int {
	var queue []Position
	for r := 0; r < out.Rows(); r++ {
		for c := 0; c < len(out.rows[r]); c++ {
			if Tile(out.rows[r][c]) == Inside {
				queue = append(queue, Position{Row: r, Col: c})
			}
		}
	}

	added := 0
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		for _, d := range CandidateDirections {
			next := pos.Add(d)
			if tile, ok := out.Get(next); ok && tile == Ground {
				out.Set(next, Inside)
				queue = append(queue, next)
				added++
			}
		}
	}
	return added
}

// ScanlineInterior classifies the Ground cells of a trail-marked grid by counting
// boundary crossings along each row. Only tiles opening north toggle the parity, so
// horizontal runs such as F--J count once and L--J count twice.
func ScanlineInterior(loop *Loop, out *Grid) int {
	startTile := loop.StartTile()

	marked := 0
	for r := 0; r < out.Rows(); r++ {
		inside := false
		for c := 0; c < len(out.rows[r]); c++ {
			tile := Tile(out.rows[r][c])
			if tile == Start {
				tile = startTile
			}
			switch tile {
			case Vertical, NorthEast, NorthWest:
				inside = !inside
			case Ground:
				if inside {
					out.rows[r][c] = byte(Inside)
					marked++
				}
			}
		}
	}
	return marked
}

// CountChar returns the number of cells of out holding tile
func CountChar(out *Grid, tile Tile) int {
	return out.Count(tile)
}
