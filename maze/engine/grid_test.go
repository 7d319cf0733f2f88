package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var squareLoop = []string{
	".....",
	".S-7.",
	".|.|.",
	".L-J.",
	".....",
}

func TestGrid_FindAndGet(t *testing.T) {
	g := NewGrid(squareLoop)

	start, ok := g.Find(Start)
	require.True(t, ok)
	assert.Equal(t, Position{Row: 1, Col: 1}, start)

	tile, ok := g.Get(Position{Row: 3, Col: 3})
	require.True(t, ok)
	assert.Equal(t, NorthWest, tile)

	_, ok = g.Find(Inside)
	assert.False(t, ok)
}

func TestGrid_GetOutOfRange(t *testing.T) {
	g := NewGrid(squareLoop)

	outside := []Position{
		{Row: -1, Col: 0},
		{Row: 0, Col: -1},
		{Row: 5, Col: 0},
		{Row: 0, Col: 5},
		{Row: 5, Col: 5},
		{Row: -1, Col: -1},
	}
	for _, pos := range outside {
		_, ok := g.Get(pos)
		assert.False(t, ok, "position %s", pos)
		assert.False(t, g.Set(pos, Inside), "position %s", pos)
	}
}

func TestGrid_RaggedRowsDegrade(t *testing.T) {
	g := NewGrid([]string{"S-7", "|", "L-J"})

	_, ok := g.Get(Position{Row: 1, Col: 2})
	assert.False(t, ok)

	tile, ok := g.Get(Position{Row: 2, Col: 2})
	require.True(t, ok)
	assert.Equal(t, NorthWest, tile)

	assert.Equal(t, 7, g.Cells())
}

func TestGrid_SetAndCount(t *testing.T) {
	g := BlankGrid(3, 4)
	assert.Equal(t, 12, g.Count(Ground))

	require.True(t, g.Set(Position{Row: 1, Col: 2}, Inside))
	require.True(t, g.Set(Position{Row: 2, Col: 3}, Inside))

	assert.Equal(t, 2, CountChar(g, Inside))
	assert.Equal(t, []string{"....", "..I.", "...I"}, g.Lines())
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := NewGrid(squareLoop)
	c := g.clone()
	c.Set(Position{Row: 0, Col: 0}, Inside)

	tile, _ := g.Get(Position{Row: 0, Col: 0})
	assert.Equal(t, Ground, tile)
	assert.Equal(t, 1, c.Count(Inside))
}

func TestBlankLike(t *testing.T) {
	g := NewGrid(squareLoop)
	out := BlankLike(g)

	assert.Equal(t, g.Rows(), out.Rows())
	assert.Equal(t, g.Cols(), out.Cols())
	assert.Equal(t, 25, out.Count(Ground))
}

func TestBlankLike_Ragged(t *testing.T) {
	out := BlankLike(NewGrid([]string{"S-7", "|", "L-J."}))
	assert.Equal(t, []string{"...", ".", "...."}, out.Lines())
}

func TestSolve_MarksOnBlankGrid(t *testing.T) {
	solution, err := SolveLines(squareLoop, Options{})
	require.NoError(t, err)
	assert.Equal(t, BlankGrid(5, 5).Count(Ground)-CountChar(NewGrid(solution.Marked), Ground),
		solution.Steps+solution.Interior)
}

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid([]string{".S-7.\r", ".|.|.", ".L-J.", "", ""})
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 5, g.Cols())
}

func TestValidateLayout(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		wantErr error
	}{
		{"valid", squareLoop, nil},
		{"empty", nil, ErrEmptyGrid},
		{"empty row", []string{""}, ErrEmptyGrid},
		{"ragged", []string{"S-7", "|.", "L-J"}, ErrRaggedGrid},
		{"invalid tile", []string{"S-7", "|x|", "L-J"}, ErrInvalidTile},
		{"no start", []string{"F-7", "|.|", "L-J"}, ErrNoStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayout(tt.lines)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	err := ValidateLayout([]string{"S-S"})
	assert.ErrorContains(t, err, "exactly one start")
}
