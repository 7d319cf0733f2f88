package engine

import (
	"errors"
	"fmt"
)

// Orientation is the rotational sense of a traced loop on screen (rows grow downward)
type Orientation int

const (
	CounterClockwise   Orientation = -1
	UnknownOrientation Orientation = 0
	Clockwise          Orientation = 1
)

func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	}
	return "unknown"
}

// MarshalText encodes the orientation by name
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an orientation name
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "clockwise":
		*o = Clockwise
	case "counter-clockwise":
		*o = CounterClockwise
	case "unknown", "":
		*o = UnknownOrientation
	default:
		return fmt.Errorf("unknown orientation %q", text)
	}
	return nil
}

// Loop is a closed path traced from the start tile
type Loop struct {
	// Start is the start tile position and the direction first taken from it
	Start Heading `json:"start"`
	// Path holds the heading after every step; the last entry sits on the start tile
	Path []Heading `json:"path"`
}

// Steps returns the number of moves needed to get back to the start
func (l *Loop) Steps() int {
	return len(l.Path)
}

// Farthest returns the distance along the loop to the point opposite the start
func (l *Loop) Farthest() int {
	return len(l.Path) / 2
}

// Positions returns the cells of the loop in travel order, ending on the start tile
func (l *Loop) Positions() []Position {
	positions := make([]Position, len(l.Path))
	for i, h := range l.Path {
		positions[i] = h.Pos
	}
	return positions
}

// Contains reports whether pos is a loop cell
func (l *Loop) Contains(pos Position) bool {
	for _, h := range l.Path {
		if h.Pos == pos {
			return true
		}
	}
	return false
}

// headings returns the heading leaving every loop cell, starting with the start tile
func (l *Loop) headings() []Heading {
	if len(l.Path) == 0 {
		return nil
	}
	hs := make([]Heading, 0, len(l.Path))
	hs = append(hs, l.Start)
	hs = append(hs, l.Path[:len(l.Path)-1]...)
	return hs
}

// arrival returns the direction used to enter the start tile at the end of the loop
func (l *Loop) arrival() Direction {
	if len(l.Path) == 0 {
		return l.Start.Dir
	}
	return l.Path[len(l.Path)-1].Dir
}

// Orientation derives the rotational sense from the balance of right and left turns.
// A simple closed loop turns a net four quarter turns one way.
func (l *Loop) Orientation() Orientation {
	hs := l.headings()
	if len(hs) == 0 {
		return UnknownOrientation
	}

	balance := 0
	prev := l.arrival()
	for _, h := range hs {
		switch h.Dir {
		case prev.Right():
			balance++
		case prev.Left():
			balance--
		}
		prev = h.Dir
	}

	switch {
	case balance > 0:
		return Clockwise
	case balance < 0:
		return CounterClockwise
	}
	return UnknownOrientation
}

// StartTile resolves the pipe shape hidden under the start tile from the loop's two ends
func (l *Loop) StartTile() Tile {
	tile, ok := tileForOpenings(l.Start.Dir, l.arrival().Reverse())
	if !ok {
		return Start
	}
	return tile
}

// Step moves one cell along h and turns according to the tile entered.
// It reports false when the next cell is off the grid or does not connect.
func (g *Grid) Step(h Heading) (Heading, bool) {
	next := h.Pos.Add(h.Dir)
	tile, ok := g.Get(next)
	if !ok {
		return Heading{}, false
	}
	dir, ok := NextDirection(h.Dir, tile)
	if !ok {
		return Heading{}, false
	}
	return Heading{Pos: next, Dir: dir}, true
}

// Trace follows pipes from start in direction dir until the start tile is re-entered.
// A heading that runs off the grid or into an unconnected tile yields ErrDeadEnd.
func Trace(g *Grid, start Position, dir Direction) (*Loop, error) {
	if !dir.IsValid() {
		return nil, fmt.Errorf("trace from %s: invalid direction %s", start, dir)
	}
	if !g.InBounds(start) {
		return nil, fmt.Errorf("trace from %s: %w", start, ErrOutOfBounds)
	}

	heading := Heading{Pos: start, Dir: dir}
	loop := &Loop{Start: heading}

	// A simple cycle cannot visit more cells than the grid holds
	limit := g.Cells() + 1
	for len(loop.Path) < limit {
		next, ok := g.Step(heading)
		if !ok {
			return nil, fmt.Errorf("%w: heading %s from %s after %d steps",
				ErrDeadEnd, heading.Dir, heading.Pos, len(loop.Path))
		}
		loop.Path = append(loop.Path, next)

		if tile, _ := g.Get(next.Pos); tile == Start {
			return loop, nil
		}
		heading = next
	}

	return nil, fmt.Errorf("%w: no return to %s within %d steps", ErrDeadEnd, start, limit)
}

// FindLoop locates the start tile and returns the first closed loop found by trying
// CandidateDirections in order.
func FindLoop(g *Grid) (*Loop, error) {
	start, ok := g.Find(Start)
	if !ok {
		return nil, ErrNoStart
	}

	for _, dir := range CandidateDirections {
		loop, err := Trace(g, start, dir)
		if err == nil {
			return loop, nil
		}
		if !errors.Is(err, ErrDeadEnd) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w at %s", ErrNoLoop, start)
}

// ClosingDirections returns every initial direction from the start tile that closes a loop.
// For a single simple cycle these are the two ends of the cycle.
func ClosingDirections(g *Grid) ([]Direction, error) {
	start, ok := g.Find(Start)
	if !ok {
		return nil, ErrNoStart
	}

	var closing []Direction
	for _, dir := range CandidateDirections {
		if _, err := Trace(g, start, dir); err == nil {
			closing = append(closing, dir)
		}
	}
	return closing, nil
}
