package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wricardo/pipemaze/maze/engine"
)

func mustGrid(t *testing.T, lines ...string) *engine.Grid {
	t.Helper()
	g, err := engine.ParseGrid(lines)
	if err != nil {
		t.Fatalf("Failed to parse grid: %v", err)
	}
	return g
}

func TestAnalyzePuzzle_Square(t *testing.T) {
	g := mustGrid(t, ".....", ".S-7.", ".|.|.", ".L-J.", ".....")

	stats, err := analyzePuzzle("square", g)
	if err != nil {
		t.Fatalf("analyzePuzzle failed: %v", err)
	}

	if stats.Steps != 8 || stats.Farthest != 4 {
		t.Errorf("Expected 8 steps and farthest 4, got %d and %d", stats.Steps, stats.Farthest)
	}
	if stats.Interior != 1 || stats.Scanline != 1 {
		t.Errorf("Expected interior 1 for both strategies, got %d and %d", stats.Interior, stats.Scanline)
	}
	if stats.StartTile != engine.SouthEast {
		t.Errorf("Expected start tile F, got %s", stats.StartTile)
	}
	if stats.JunkPipes != 0 || stats.Pipes != 7 {
		t.Errorf("Expected 7 pipes and no junk, got %d of %d", stats.JunkPipes, stats.Pipes)
	}
	if stats.MinPos != (engine.Position{Row: 1, Col: 1}) || stats.MaxPos != (engine.Position{Row: 3, Col: 3}) {
		t.Errorf("Expected bounds (1,1) to (3,3), got %s to %s", stats.MinPos, stats.MaxPos)
	}
	if stats.Tiles[engine.Ground] != 17 {
		t.Errorf("Expected 17 ground tiles, got %d", stats.Tiles[engine.Ground])
	}
	if !stats.Consistent() {
		t.Error("Expected strategies to agree")
	}
}

func TestAnalyzePuzzle_Junk(t *testing.T) {
	g := mustGrid(t, "-L|F7", "7S-7|", "L|7||", "-L-J|", "L|-JF")

	stats, err := analyzePuzzle("junk", g)
	if err != nil {
		t.Fatalf("analyzePuzzle failed: %v", err)
	}
	if stats.JunkPipes != 17 {
		t.Errorf("Expected 17 junk pipes, got %d", stats.JunkPipes)
	}
	if stats.Pipes != 24 {
		t.Errorf("Expected 24 pipes, got %d", stats.Pipes)
	}

	var buf bytes.Buffer
	printStats(&buf, stats)
	if !strings.Contains(buf.String(), "Junk Pipes: 17 of 24") {
		t.Errorf("Expected junk total in output, got:\n%s", buf.String())
	}
}

func TestAnalyzePuzzle_NoLoop(t *testing.T) {
	g := mustGrid(t, "S-.", "...")

	if _, err := analyzePuzzle("broken", g); err == nil {
		t.Error("Expected error for grid without a loop")
	}
}

func TestPrintStats(t *testing.T) {
	stats := &PuzzleStats{
		Name:        "square",
		Rows:        5,
		Cols:        5,
		Steps:       8,
		Farthest:    4,
		Orientation: engine.Clockwise,
		StartTile:   engine.SouthEast,
		Interior:    1,
		Scanline:    2,
		JunkPipes:   3,
		Pipes:       10,
		Tiles:       map[engine.Tile]int{engine.Vertical: 2, engine.Ground: 17, engine.NorthEast: 0},
	}

	var buf bytes.Buffer
	printStats(&buf, stats)
	out := buf.String()

	for _, want := range []string{
		"Grid Size: 5 x 5",
		"Loop Length: 8 (farthest 4)",
		"Orientation: clockwise",
		"Junk Pipes: 3 of 10",
		"Tiles: .=17 |=2\n",
		"edge found 1 interior cells, scanline found 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out)
		}
	}
}
