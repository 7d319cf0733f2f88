package service

import (
	"context"
)

// SolverService defines all solving operations exposed to transports
type SolverService interface {
	// Solving
	SolveLayout(ctx context.Context, layout []string, opts SolveOptions) (*SolveResult, error)
	SolvePuzzle(ctx context.Context, puzzleName string, opts SolveOptions) (*SolveResult, error)

	// Puzzles
	ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error)
	LoadPuzzle(ctx context.Context, puzzleName string) (*Puzzle, error)
	SavePuzzle(ctx context.Context, puzzleName string, layout []string) (*PuzzleInfo, error)

	// Reports
	GetReport(ctx context.Context, reportID string) (*Report, error)
	ListReports(ctx context.Context) ([]*Report, error)
}

// PuzzleManager handles puzzle loading from storage
type PuzzleManager interface {
	LoadPuzzle(name string) (*Puzzle, error)
	ListPuzzles() ([]*PuzzleInfo, error)
	SavePuzzle(name string, layout []string) error
}

// ReportStore persists solve reports
type ReportStore interface {
	Save(report *Report) error
	Load(id string) (*Report, error)
	ListAll() ([]string, error)
}
