package engine

import "fmt"

// Direction is an axis-aligned unit step in (row, col) space
type Direction struct {
	DRow int
	DCol int
}

var (
	North = Direction{DRow: -1}
	South = Direction{DRow: 1}
	East  = Direction{DCol: 1}
	West  = Direction{DCol: -1}
)

// CandidateDirections is the order in which initial directions are tried from the start tile
var CandidateDirections = []Direction{South, North, East, West}

// IsValid reports whether d is one of the four unit directions
func (d Direction) IsValid() bool {
	return d == North || d == South || d == East || d == West
}

// IsVertical reports whether d moves along rows
func (d Direction) IsVertical() bool {
	return d.DCol == 0 && d.DRow != 0
}

// Right rotates d clockwise by 90 degrees
func (d Direction) Right() Direction {
	return Direction{DRow: d.DCol, DCol: -d.DRow}
}

// Left rotates d counter-clockwise by 90 degrees
func (d Direction) Left() Direction {
	return Direction{DRow: -d.DCol, DCol: d.DRow}
}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	return Direction{DRow: -d.DRow, DCol: -d.DCol}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("(%d,%d)", d.DRow, d.DCol)
}

// MarshalText encodes the direction by name; the zero Direction encodes as ""
func (d Direction) MarshalText() ([]byte, error) {
	if d == (Direction{}) {
		return []byte{}, nil
	}
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid direction %s", d)
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name
func (d *Direction) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Direction{}
		return nil
	}
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection accepts compass names and their single-letter or up/down/left/right aliases
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "north", "n", "N", "up":
		return North, nil
	case "south", "s", "S", "down":
		return South, nil
	case "east", "e", "E", "right":
		return East, nil
	case "west", "w", "W", "left":
		return West, nil
	}
	return Direction{}, fmt.Errorf("unknown direction %q", s)
}

type transitionKey struct {
	dir  Direction
	tile Tile
}

// transitions maps the incoming heading and the tile entered to the outgoing heading.
// Pairs not listed cannot be traversed.
var transitions = map[transitionKey]Direction{
	{North, Vertical}:  North,
	{South, Vertical}:  South,
	{South, NorthEast}: East,
	{South, NorthWest}: West,
	{North, SouthWest}: West,
	{North, SouthEast}: East,
	{East, Horizontal}: East,
	{West, Horizontal}: West,
	{East, SouthWest}:  South,
	{East, NorthWest}:  North,
	{West, NorthEast}:  North,
	{West, SouthEast}:  South,
	{North, Start}:     North,
	{South, Start}:     South,
	{East, Start}:      East,
	{West, Start}:      West,
}

// NextDirection returns the heading after entering tile while travelling in dir.
// The second result is false when the tile does not accept that heading.
func NextDirection(dir Direction, tile Tile) (Direction, bool) {
	next, ok := transitions[transitionKey{dir: dir, tile: tile}]
	return next, ok
}

// tileForOpenings returns the pipe shape whose two openings face a and b
func tileForOpenings(a, b Direction) (Tile, bool) {
	has := func(d Direction) bool { return a == d || b == d }
	switch {
	case has(North) && has(South):
		return Vertical, true
	case has(East) && has(West):
		return Horizontal, true
	case has(North) && has(East):
		return NorthEast, true
	case has(North) && has(West):
		return NorthWest, true
	case has(South) && has(West):
		return SouthWest, true
	case has(South) && has(East):
		return SouthEast, true
	}
	return Ground, false
}
