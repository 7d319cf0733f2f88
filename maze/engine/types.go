package engine

import (
	"errors"
	"fmt"
)

// Tile is a single grid symbol
type Tile byte

const (
	Vertical   Tile = '|'
	Horizontal Tile = '-'
	NorthEast  Tile = 'L'
	NorthWest  Tile = 'J'
	SouthWest  Tile = '7'
	SouthEast  Tile = 'F'
	Ground     Tile = '.'
	Start      Tile = 'S'

	// Inside marks a classified interior cell on an output grid
	Inside Tile = 'I'

	// Validation constants
	MinGridSize = 1
	MaxGridSize = 1024
)

var (
	ErrNoStart     = errors.New("no start tile found")
	ErrDeadEnd     = errors.New("pipe does not connect")
	ErrNoLoop      = errors.New("no closed loop through start")
	ErrOutOfBounds = errors.New("position out of grid bounds")
	ErrEmptyGrid   = errors.New("grid is empty")
	ErrRaggedGrid  = errors.New("grid rows have different lengths")
	ErrInvalidTile = errors.New("invalid tile")
)

// IsPipe reports whether the tile is one of the six connector shapes
func (t Tile) IsPipe() bool {
	switch t {
	case Vertical, Horizontal, NorthEast, NorthWest, SouthWest, SouthEast:
		return true
	}
	return false
}

// IsValid reports whether the tile may appear in an input layout
func (t Tile) IsValid() bool {
	return t.IsPipe() || t == Ground || t == Start
}

func (t Tile) String() string {
	return string(rune(t))
}

// Position represents row,col coordinates; rows grow downward
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the position one step away in direction d
func (p Position) Add(d Direction) Position {
	return Position{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Heading is a position paired with the direction of travel leaving it
type Heading struct {
	Pos Position  `json:"pos"`
	Dir Direction `json:"dir"`
}
