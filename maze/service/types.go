package service

import (
	"time"

	"github.com/wricardo/pipemaze/maze/engine"
)

// Puzzle is a named, validated layout
type Puzzle struct {
	Name   string       `json:"name"`
	Layout []string     `json:"layout"`
	Grid   *engine.Grid `json:"-"`
}

// PuzzleInfo provides summary information about a stored puzzle
type PuzzleInfo struct {
	Filename string `json:"filename"`
	PuzzleID string `json:"puzzle_id"` // The identifier to use for solving
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	Pipes    int    `json:"pipes"`
}

// SolveOptions configures a solve request
type SolveOptions struct {
	Strategy string `json:"strategy,omitempty"` // "edge" (default) or "scanline"
	Persist  bool   `json:"persist,omitempty"`  // Store a report of the solve
}

// SolveResult contains the outcome of a solve
type SolveResult struct {
	ReportID   string           `json:"report_id,omitempty"`
	PuzzleID   string           `json:"puzzle_id,omitempty"`
	Solution   *engine.Solution `json:"solution"`
	JunkPipes  int              `json:"junk_pipes"`
	DurationMS float64          `json:"duration_ms"`
}

// Report is a persisted record of a solve
type Report struct {
	ID        string           `json:"id"`
	PuzzleID  string           `json:"puzzle_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Layout    []string         `json:"layout"`
	Solution  *engine.Solution `json:"solution"`
	JunkPipes int              `json:"junk_pipes"`
}
