package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wricardo/pipemaze/maze/engine"
)

var (
	ErrPuzzleNotFound  = errors.New("puzzle not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrReportsDisabled = errors.New("report storage is not configured")
	ErrInvalidLayout   = errors.New("invalid layout")
)

// solverServiceImpl implements the SolverService interface
type solverServiceImpl struct {
	puzzles PuzzleManager
	reports ReportStore
	mu      sync.Mutex
}

// NewSolverService creates a new solver service. reports may be nil, in which case
// solves are never persisted.
func NewSolverService(puzzles PuzzleManager, reports ReportStore) SolverService {
	return &solverServiceImpl{
		puzzles: puzzles,
		reports: reports,
	}
}

// SolveLayout validates and solves a raw layout
func (s *solverServiceImpl) SolveLayout(ctx context.Context, layout []string, opts SolveOptions) (*SolveResult, error) {
	grid, err := engine.ParseGrid(layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return s.solve(ctx, "", grid, opts)
}

// SolvePuzzle solves a stored puzzle by name
func (s *solverServiceImpl) SolvePuzzle(ctx context.Context, puzzleName string, opts SolveOptions) (*SolveResult, error) {
	puzzle, err := s.loadPuzzle(puzzleName)
	if err != nil {
		return nil, err
	}
	return s.solve(ctx, puzzleName, puzzle.Grid, opts)
}

func (s *solverServiceImpl) solve(ctx context.Context, puzzleID string, grid *engine.Grid, opts SolveOptions) (*SolveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	strategy, err := engine.ParseStrategy(opts.Strategy)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	solution, err := engine.Solve(grid, engine.Options{Strategy: strategy})
	if err != nil {
		return nil, fmt.Errorf("failed to solve: %w", err)
	}

	result := &SolveResult{
		PuzzleID:   puzzleID,
		Solution:   solution,
		JunkPipes:  solution.JunkPipes,
		DurationMS: float64(time.Since(began).Microseconds()) / 1000,
	}

	if opts.Persist {
		if s.reports == nil {
			return nil, ErrReportsDisabled
		}
		report := &Report{
			ID:        uuid.NewString(),
			PuzzleID:  puzzleID,
			CreatedAt: time.Now(),
			Layout:    grid.Lines(),
			Solution:  solution,
			JunkPipes: result.JunkPipes,
		}

		s.mu.Lock()
		err := s.reports.Save(report)
		s.mu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
		result.ReportID = report.ID
	}

	return result, nil
}

// ListPuzzles returns all stored puzzles
func (s *solverServiceImpl) ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error) {
	return s.puzzles.ListPuzzles()
}

// LoadPuzzle returns a stored puzzle
func (s *solverServiceImpl) LoadPuzzle(ctx context.Context, puzzleName string) (*Puzzle, error) {
	return s.loadPuzzle(puzzleName)
}

// SavePuzzle validates and stores a layout under puzzleName
func (s *solverServiceImpl) SavePuzzle(ctx context.Context, puzzleName string, layout []string) (*PuzzleInfo, error) {
	if puzzleName == "" {
		return nil, fmt.Errorf("puzzle name is required")
	}
	if err := s.puzzles.SavePuzzle(puzzleName, layout); err != nil {
		return nil, err
	}

	puzzle, err := s.puzzles.LoadPuzzle(puzzleName)
	if err != nil {
		return nil, err
	}
	return &PuzzleInfo{
		Filename: puzzleName + ".txt",
		PuzzleID: puzzleName,
		Rows:     puzzle.Grid.Rows(),
		Cols:     puzzle.Grid.Cols(),
		Pipes:    CountPipes(puzzle.Grid),
	}, nil
}

// GetReport loads a persisted report
func (s *solverServiceImpl) GetReport(ctx context.Context, reportID string) (*Report, error) {
	if s.reports == nil {
		return nil, ErrReportsDisabled
	}
	return s.reports.Load(reportID)
}

// ListReports returns all persisted reports, newest first
func (s *solverServiceImpl) ListReports(ctx context.Context) ([]*Report, error) {
	if s.reports == nil {
		return nil, ErrReportsDisabled
	}

	ids, err := s.reports.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*Report, 0, len(ids))
	for _, id := range ids {
		report, err := s.reports.Load(id)
		if err != nil {
			// Skip unreadable reports
			continue
		}
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

// loadPuzzle wraps not-found errors with the names that are available
func (s *solverServiceImpl) loadPuzzle(puzzleName string) (*Puzzle, error) {
	puzzle, err := s.puzzles.LoadPuzzle(puzzleName)
	if err == nil {
		return puzzle, nil
	}
	if !errors.Is(err, ErrPuzzleNotFound) {
		return nil, fmt.Errorf("failed to load puzzle %s: %w", puzzleName, err)
	}

	available, listErr := s.puzzles.ListPuzzles()
	if listErr == nil && len(available) > 0 {
		var ids []string
		for _, p := range available {
			ids = append(ids, p.PuzzleID)
		}
		return nil, fmt.Errorf("%w: '%s'. Available puzzles: %v", ErrPuzzleNotFound, puzzleName, ids)
	}
	return nil, fmt.Errorf("%w: '%s'. Use /api/puzzles to list available puzzles", ErrPuzzleNotFound, puzzleName)
}

// CountPipes returns the number of pipe tiles in g, excluding the start tile
func CountPipes(g *engine.Grid) int {
	total := 0
	for _, t := range []engine.Tile{engine.Vertical, engine.Horizontal, engine.NorthEast, engine.NorthWest, engine.SouthWest, engine.SouthEast} {
		total += g.Count(t)
	}
	return total
}
