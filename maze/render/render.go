// Package render formats solved grids for terminals.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wricardo/pipemaze/maze/engine"
)

var (
	loopStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF"))
	startStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00")).Bold(true)
	insideStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true)
	groundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#585858"))
)

// boxGlyphs maps pipe tiles to box drawing characters
var boxGlyphs = map[engine.Tile]string{
	engine.Vertical:   "│",
	engine.Horizontal: "─",
	engine.NorthEast:  "└",
	engine.NorthWest:  "┘",
	engine.SouthWest:  "┐",
	engine.SouthEast:  "┌",
}

// Plain returns the marked rows joined by newlines, unchanged
func Plain(marked []string) string {
	return strings.Join(marked, "\n")
}

// Glyph returns the display glyph for a tile
func Glyph(tile engine.Tile) string {
	if g, ok := boxGlyphs[tile]; ok {
		return g
	}
	return tile.String()
}

// Pretty draws pipes with box characters and colours loop, start and interior cells.
// The start cell is drawn as the pipe it stands for when start is a pipe tile.
// Colour is dropped automatically when the output is not a terminal.
func Pretty(marked []string, start engine.Tile) string {
	var b strings.Builder
	for i, row := range marked {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j := 0; j < len(row); j++ {
			tile := engine.Tile(row[j])
			switch {
			case tile == engine.Start && start.IsPipe():
				b.WriteString(startStyle.Render(Glyph(start)))
			case tile == engine.Start:
				b.WriteString(startStyle.Render(Glyph(tile)))
			case tile == engine.Inside:
				b.WriteString(insideStyle.Render(Glyph(tile)))
			case tile.IsPipe():
				b.WriteString(loopStyle.Render(Glyph(tile)))
			default:
				b.WriteString(groundStyle.Render(Glyph(tile)))
			}
		}
	}
	return b.String()
}

// PrettySolution draws a solved grid with its start tile resolved
func PrettySolution(s *engine.Solution) string {
	start := engine.Start
	if len(s.StartTile) == 1 {
		start = engine.Tile(s.StartTile[0])
	}
	return Pretty(s.Marked, start)
}
