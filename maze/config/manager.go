package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/wricardo/pipemaze/maze/engine"
	"github.com/wricardo/pipemaze/maze/service"
)

const (
	// PuzzleExt is the file extension used for stored puzzles
	PuzzleExt = ".txt"

	defaultCacheSize = 64
)

var (
	ErrPuzzleNotFound = service.ErrPuzzleNotFound
	ErrInvalidPuzzle  = errors.New("invalid puzzle")
)

// Manager handles puzzle loading and caching
type Manager struct {
	puzzleDir string
	cache     *lru.Cache[string, *service.Puzzle]
	mu        sync.Mutex
}

// NewManager creates a new puzzle manager backed by puzzleDir
func NewManager(puzzleDir string) (*Manager, error) {
	return NewManagerWithCache(puzzleDir, defaultCacheSize)
}

// NewManagerWithCache creates a puzzle manager holding at most size parsed puzzles in memory
func NewManagerWithCache(puzzleDir string, size int) (*Manager, error) {
	if _, err := os.Stat(puzzleDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("puzzle directory does not exist: %s", puzzleDir)
	}

	cache, err := lru.New[string, *service.Puzzle](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create puzzle cache: %w", err)
	}

	return &Manager{
		puzzleDir: puzzleDir,
		cache:     cache,
	}, nil
}

// LoadPuzzle loads a puzzle by name
func (m *Manager) LoadPuzzle(name string) (*service.Puzzle, error) {
	name = strings.TrimSuffix(name, PuzzleExt)
	if err := validName(name); err != nil {
		return nil, err
	}

	if puzzle, ok := m.cache.Get(name); ok {
		return puzzle, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the lock
	if puzzle, ok := m.cache.Get(name); ok {
		return puzzle, nil
	}

	data, err := os.ReadFile(m.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPuzzleNotFound
		}
		return nil, fmt.Errorf("failed to read puzzle file: %w", err)
	}

	grid, err := engine.ParseText(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	puzzle := &service.Puzzle{
		Name:   name,
		Layout: grid.Lines(),
		Grid:   grid,
	}
	m.cache.Add(name, puzzle)
	return puzzle, nil
}

// ListPuzzles returns information about all valid puzzles, sorted by ID
func (m *Manager) ListPuzzles() ([]*service.PuzzleInfo, error) {
	entries, err := os.ReadDir(m.puzzleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle directory: %w", err)
	}

	var puzzles []*service.PuzzleInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), PuzzleExt) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), PuzzleExt)
		puzzle, err := m.LoadPuzzle(name)
		if err != nil {
			// Skip invalid puzzles
			continue
		}

		puzzles = append(puzzles, &service.PuzzleInfo{
			Filename: entry.Name(),
			PuzzleID: name,
			Rows:     puzzle.Grid.Rows(),
			Cols:     puzzle.Grid.Cols(),
			Pipes:    service.CountPipes(puzzle.Grid),
		})
	}

	sort.Slice(puzzles, func(i, j int) bool {
		return puzzles[i].PuzzleID < puzzles[j].PuzzleID
	})
	return puzzles, nil
}

// SavePuzzle validates layout and writes it to the puzzle directory
func (m *Manager) SavePuzzle(name string, layout []string) error {
	name = strings.TrimSuffix(name, PuzzleExt)
	if err := validName(name); err != nil {
		return err
	}

	grid, err := engine.ParseGrid(layout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.WriteFile(m.path(name), []byte(grid.String()+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write puzzle file: %w", err)
	}
	m.cache.Remove(name)
	return nil
}

// RefreshCache drops every cached puzzle so the next load rereads the files
func (m *Manager) RefreshCache() {
	m.cache.Purge()
}

// Cached reports how many parsed puzzles are held in memory
func (m *Manager) Cached() int {
	return m.cache.Len()
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.puzzleDir, name+PuzzleExt)
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPuzzle)
	}
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: bad name %q", ErrInvalidPuzzle, name)
	}
	return nil
}

// LoadFile reads and validates a puzzle file from an arbitrary path
func LoadFile(path string) (*engine.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle file: %w", err)
	}
	return engine.ParseText(string(data))
}
