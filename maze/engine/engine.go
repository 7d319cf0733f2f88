package engine

import (
	"errors"
	"fmt"
)

// Strategy selects how interior cells are classified
type Strategy string

const (
	// StrategyEdge marks cells beside the loop on its interior side, then floods inward
	StrategyEdge Strategy = "edge"
	// StrategyScanline counts boundary crossings along each row
	StrategyScanline Strategy = "scanline"
)

// ErrUnknownStrategy is returned for strategy names other than edge and scanline
var ErrUnknownStrategy = errors.New("unknown strategy")

// ParseStrategy validates a strategy name; empty selects StrategyEdge
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyEdge:
		return StrategyEdge, nil
	case StrategyScanline:
		return StrategyScanline, nil
	}
	return "", fmt.Errorf("%w %q (want %q or %q)", ErrUnknownStrategy, name, StrategyEdge, StrategyScanline)
}

// Options control a solve
type Options struct {
	Strategy Strategy
}

// Solution is the outcome of solving one grid
type Solution struct {
	Start            Position    `json:"start"`
	StartTile        string      `json:"start_tile"`
	InitialDirection Direction   `json:"initial_direction"`
	Steps            int         `json:"steps"`
	Farthest         int         `json:"farthest"`
	Interior         int         `json:"interior"`
	JunkPipes        int         `json:"junk_pipes"`
	Orientation      Orientation `json:"orientation"`
	Strategy         Strategy    `json:"strategy"`
	Rows             int         `json:"rows"`
	Cols             int         `json:"cols"`
	// Marked is the output grid: loop cells keep their symbol, interior cells are I
	Marked []string `json:"marked"`
}

// Solve traces the loop through the start tile, marks it on a blank grid and classifies
// the remaining cells.
func Solve(g *Grid, opts Options) (*Solution, error) {
	strategy, err := ParseStrategy(string(opts.Strategy))
	if err != nil {
		return nil, err
	}

	loop, err := FindLoop(g)
	if err != nil {
		return nil, err
	}

	out := BlankLike(g)
	MarkTrail(g, loop, out)

	switch strategy {
	case StrategyScanline:
		ScanlineInterior(loop, out)
	default:
		MarkInterior(loop, out)
		FillInterior(out)
	}

	return &Solution{
		Start:            loop.Start.Pos,
		StartTile:        loop.StartTile().String(),
		InitialDirection: loop.Start.Dir,
		Steps:            loop.Steps(),
		Farthest:         loop.Farthest(),
		Interior:         CountChar(out, Inside),
		JunkPipes:        JunkPipes(g, loop),
		Orientation:      loop.Orientation(),
		Strategy:         strategy,
		Rows:             g.Rows(),
		Cols:             g.Cols(),
		Marked:           out.Lines(),
	}, nil
}

// SolveLines parses lines and solves the resulting grid
func SolveLines(lines []string, opts Options) (*Solution, error) {
	g, err := ParseGrid(lines)
	if err != nil {
		return nil, err
	}
	return Solve(g, opts)
}

// JunkPipes counts pipe tiles in g that are not part of the loop
func JunkPipes(g *Grid, loop *Loop) int {
	onLoop := make(map[Position]bool, len(loop.Path))
	for _, h := range loop.Path {
		onLoop[h.Pos] = true
	}

	junk := 0
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < len(g.rows[r]); c++ {
			pos := Position{Row: r, Col: c}
			if Tile(g.rows[r][c]).IsPipe() && !onLoop[pos] {
				junk++
			}
		}
	}
	return junk
}
