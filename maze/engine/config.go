package engine

import (
	"fmt"
)

// ValidateLayout checks that lines form a well-formed puzzle: non-empty, rectangular,
// drawn from the tile alphabet and holding exactly one start tile.
func ValidateLayout(lines []string) error {
	if len(lines) < MinGridSize {
		return ErrEmptyGrid
	}
	if len(lines) > MaxGridSize {
		return fmt.Errorf("layout validation: at most %d rows allowed, got %d", MaxGridSize, len(lines))
	}

	width := len(lines[0])
	if width < MinGridSize {
		return ErrEmptyGrid
	}
	if width > MaxGridSize {
		return fmt.Errorf("layout validation: at most %d columns allowed, got %d", MaxGridSize, width)
	}

	starts := 0
	for i, row := range lines {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d characters, expected %d", ErrRaggedGrid, i+1, len(row), width)
		}
		for j := 0; j < len(row); j++ {
			tile := Tile(row[j])
			if !tile.IsValid() {
				return fmt.Errorf("%w '%c' at row %d, col %d", ErrInvalidTile, row[j], i+1, j+1)
			}
			if tile == Start {
				starts++
			}
		}
	}

	switch {
	case starts == 0:
		return ErrNoStart
	case starts > 1:
		return fmt.Errorf("layout validation: exactly one start tile allowed, found %d", starts)
	}
	return nil
}
