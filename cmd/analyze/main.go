// Command analyze prints quick, human-readable statistics about the puzzles in
// the project's puzzles directory. For every puzzle it reports the grid size,
// the loop length and farthest distance, the loop's orientation, the interior
// count under both classification strategies and how many pipes are junk.
// It flags puzzles whose two strategies disagree.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/wricardo/pipemaze/maze/config"
	"github.com/wricardo/pipemaze/maze/engine"
	"github.com/wricardo/pipemaze/maze/service"
)

// PuzzleStats summarizes one puzzle.
type PuzzleStats struct {
	Name        string
	Rows, Cols  int
	Steps       int
	Farthest    int
	Orientation engine.Orientation
	StartTile   engine.Tile
	Interior    int // edge strategy
	Scanline    int // scanline strategy
	JunkPipes   int
	Pipes       int // all pipe tiles, start excluded
	Tiles       map[engine.Tile]int
	// Bounds of the loop, inclusive
	MinPos, MaxPos engine.Position
}

// Consistent reports whether both strategies found the same interior
func (s *PuzzleStats) Consistent() bool {
	return s.Interior == s.Scanline
}

func main() {
	dir := os.Getenv("PUZZLE_DIR")
	if dir == "" {
		dir = "puzzles"
	}
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	manager, err := config.NewManager(dir)
	if err != nil {
		fmt.Printf("Error opening puzzles: %v\n", err)
		os.Exit(1)
	}

	puzzles, err := manager.ListPuzzles()
	if err != nil {
		fmt.Printf("Error listing puzzles: %v\n", err)
		os.Exit(1)
	}

	for _, info := range puzzles {
		fmt.Printf("\n=== Analyzing %s ===\n", info.Filename)
		puzzle, err := manager.LoadPuzzle(info.PuzzleID)
		if err != nil {
			fmt.Printf("Error loading puzzle: %v\n", err)
			continue
		}
		stats, err := analyzePuzzle(puzzle.Name, puzzle.Grid)
		if err != nil {
			fmt.Printf("Error analyzing puzzle: %v\n", err)
			continue
		}
		printStats(os.Stdout, stats)
	}
}

// analyzePuzzle solves g with both strategies and gathers statistics
func analyzePuzzle(name string, g *engine.Grid) (*PuzzleStats, error) {
	loop, err := engine.FindLoop(g)
	if err != nil {
		return nil, err
	}

	edge, err := engine.Solve(g, engine.Options{Strategy: engine.StrategyEdge})
	if err != nil {
		return nil, err
	}
	scan, err := engine.Solve(g, engine.Options{Strategy: engine.StrategyScanline})
	if err != nil {
		return nil, err
	}

	stats := &PuzzleStats{
		Name:        name,
		Rows:        g.Rows(),
		Cols:        g.Cols(),
		Steps:       loop.Steps(),
		Farthest:    loop.Farthest(),
		Orientation: loop.Orientation(),
		StartTile:   loop.StartTile(),
		Interior:    edge.Interior,
		Scanline:    scan.Interior,
		JunkPipes:   engine.JunkPipes(g, loop),
		Pipes:       service.CountPipes(g),
		Tiles:       make(map[engine.Tile]int),
		MinPos:      loop.Start.Pos,
		MaxPos:      loop.Start.Pos,
	}

	for _, tile := range []engine.Tile{engine.Vertical, engine.Horizontal, engine.NorthEast,
		engine.NorthWest, engine.SouthWest, engine.SouthEast, engine.Ground} {
		stats.Tiles[tile] = g.Count(tile)
	}

	for _, pos := range loop.Positions() {
		stats.MinPos.Row = min(stats.MinPos.Row, pos.Row)
		stats.MinPos.Col = min(stats.MinPos.Col, pos.Col)
		stats.MaxPos.Row = max(stats.MaxPos.Row, pos.Row)
		stats.MaxPos.Col = max(stats.MaxPos.Col, pos.Col)
	}

	return stats, nil
}

func printStats(w io.Writer, s *PuzzleStats) {
	fmt.Fprintf(w, "Name: %s\n", s.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", s.Rows, s.Cols)
	fmt.Fprintf(w, "Loop Length: %d (farthest %d)\n", s.Steps, s.Farthest)
	fmt.Fprintf(w, "Orientation: %s\n", s.Orientation)
	fmt.Fprintf(w, "Start Tile: %s\n", s.StartTile)
	fmt.Fprintf(w, "Loop Bounds: %s to %s\n", s.MinPos, s.MaxPos)
	fmt.Fprintf(w, "Interior: %d\n", s.Interior)
	fmt.Fprintf(w, "Junk Pipes: %d of %d\n", s.JunkPipes, s.Pipes)

	var tiles []string
	for tile, n := range s.Tiles {
		if n > 0 {
			tiles = append(tiles, fmt.Sprintf("%s=%d", tile, n))
		}
	}
	sort.Strings(tiles)
	fmt.Fprintf(w, "Tiles: %s\n", strings.Join(tiles, " "))

	if s.Consistent() {
		fmt.Fprintf(w, "✅ Edge and scanline strategies agree\n")
	} else {
		fmt.Fprintf(w, "⚠️  WARNING: edge found %d interior cells, scanline found %d\n", s.Interior, s.Scanline)
	}
}
