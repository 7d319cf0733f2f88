package engine

import (
	"bytes"
	"strings"
)

// Grid is a 2-D buffer of tiles addressed by (row, col).
// Input grids are treated as read-only; output grids are marked in place with Set.
type Grid struct {
	rows [][]byte
}

// NewGrid copies lines into a grid without validating them.
// Ragged rows are kept as-is; lookups past the end of a short row find nothing.
func NewGrid(lines []string) *Grid {
	rows := make([][]byte, len(lines))
	for i, line := range lines {
		rows[i] = []byte(line)
	}
	return &Grid{rows: rows}
}

// ParseGrid builds a rectangular grid from text lines.
// Trailing carriage returns and trailing blank lines are dropped.
func ParseGrid(lines []string) (*Grid, error) {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, strings.TrimRight(line, "\r"))
	}
	for len(cleaned) > 0 && strings.TrimSpace(cleaned[len(cleaned)-1]) == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}

	if err := ValidateLayout(cleaned); err != nil {
		return nil, err
	}
	return NewGrid(cleaned), nil
}

// ParseText splits text on newlines and parses the result
func ParseText(text string) (*Grid, error) {
	return ParseGrid(strings.Split(text, "\n"))
}

// BlankGrid creates a rows x cols grid filled with Ground
func BlankGrid(rows, cols int) *Grid {
	g := &Grid{rows: make([][]byte, rows)}
	for i := range g.rows {
		g.rows[i] = bytes.Repeat([]byte{byte(Ground)}, cols)
	}
	return g
}

// BlankLike creates a blank grid with the same shape as g.
// Rows shorter or longer than the first keep their own width.
func BlankLike(g *Grid) *Grid {
	out := BlankGrid(g.Rows(), g.Cols())
	for i, row := range g.rows {
		if len(row) != len(out.rows[i]) {
			out.rows[i] = bytes.Repeat([]byte{byte(Ground)}, len(row))
		}
	}
	return out
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return len(g.rows)
}

// Cols returns the width of the first row
func (g *Grid) Cols() int {
	if len(g.rows) == 0 {
		return 0
	}
	return len(g.rows[0])
}

// Cells returns the total number of cells across all rows
func (g *Grid) Cells() int {
	total := 0
	for _, row := range g.rows {
		total += len(row)
	}
	return total
}

// Find returns the first position holding tile in row-major order
func (g *Grid) Find(tile Tile) (Position, bool) {
	for r, row := range g.rows {
		if c := bytes.IndexByte(row, byte(tile)); c >= 0 {
			return Position{Row: r, Col: c}, true
		}
	}
	return Position{}, false
}

// Get returns the tile at pos, or false when pos is outside the grid
func (g *Grid) Get(pos Position) (Tile, bool) {
	if !g.InBounds(pos) {
		return 0, false
	}
	return Tile(g.rows[pos.Row][pos.Col]), true
}

// Set overwrites the tile at pos, reporting false when pos is outside the grid
func (g *Grid) Set(pos Position, tile Tile) bool {
	if !g.InBounds(pos) {
		return false
	}
	g.rows[pos.Row][pos.Col] = byte(tile)
	return true
}

// InBounds reports whether pos addresses a cell of its row
func (g *Grid) InBounds(pos Position) bool {
	if pos.Row < 0 || pos.Row >= len(g.rows) {
		return false
	}
	return pos.Col >= 0 && pos.Col < len(g.rows[pos.Row])
}

// Count returns the number of cells holding tile
func (g *Grid) Count(tile Tile) int {
	count := 0
	for _, row := range g.rows {
		count += bytes.Count(row, []byte{byte(tile)})
	}
	return count
}

// clone returns a deep copy of g
func (g *Grid) clone() *Grid {
	out := &Grid{rows: make([][]byte, len(g.rows))}
	for i, row := range g.rows {
		out.rows[i] = bytes.Clone(row)
	}
	return out
}

// Lines returns the rows as strings
func (g *Grid) Lines() []string {
	lines := make([]string, len(g.rows))
	for i, row := range g.rows {
		lines[i] = string(row)
	}
	return lines
}

func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}
