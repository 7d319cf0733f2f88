// Command validate checks puzzle files in the puzzles directory. It checks:
//   - Grid consistency: at least one row, all rows the same width
//   - Allowed characters (| - L J 7 F . S)
//   - Exactly one start tile (S)
//   - Closure: a loop leaves S and comes back to it
//
// Files may be named on the command line; otherwise every *.txt file in the
// puzzle directory is validated. The exit status is non-zero if any file is invalid.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/pipemaze/maze/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Errors lists the problems found; Info carries findings for valid files.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Info   []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validatePuzzle loads and validates a single puzzle file. Structural problems are
// all reported together; the loop is only traced once the grid is well formed.
func validatePuzzle(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r", ""), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		result.fail("Layout is empty")
		return result
	}

	width := len(lines[0])
	starts := []string{}
	for y, row := range lines {
		if len(row) != width {
			result.fail("Row %d has width %d, expected %d", y+1, len(row), width)
		}
		for x := 0; x < len(row); x++ {
			tile := engine.Tile(row[x])
			if !tile.IsValid() {
				result.fail("Invalid character '%c' at row %d, col %d", row[x], y+1, x+1)
			}
			if tile == engine.Start {
				starts = append(starts, engine.Position{Row: y, Col: x}.String())
			}
		}
	}

	switch len(starts) {
	case 0:
		result.fail("No start tile (S)")
	case 1:
	default:
		result.fail("Found %d start tiles at %s, expected exactly one", len(starts), strings.Join(starts, " "))
	}

	if !result.Valid {
		return result
	}

	grid, err := engine.ParseGrid(lines)
	if err != nil {
		// The checks above cover ValidateLayout; this catches size limits
		result.fail("%v", err)
		return result
	}

	loop, err := engine.FindLoop(grid)
	if err != nil {
		if errors.Is(err, engine.ErrNoLoop) {
			result.fail("No closed loop through the start tile at %s", starts[0])
		} else {
			result.fail("Loop error: %v", err)
		}
		return result
	}

	closing, err := engine.ClosingDirections(grid)
	if err == nil && len(closing) != 2 {
		// A simple cycle closes from exactly its two ends
		result.fail("Start tile closes %d loops, expected one loop with two ends", len(closing))
		return result
	}

	junk := engine.JunkPipes(grid, loop)
	result.Info = append(result.Info,
		fmt.Sprintf("✓ Grid: %dx%d", grid.Rows(), grid.Cols()),
		fmt.Sprintf("✓ Loop: %d steps heading %s, %s, S is %s", loop.Steps(), loop.Start.Dir, loop.Orientation(), loop.StartTile()),
		fmt.Sprintf("✓ Farthest: %d", loop.Farthest()),
		fmt.Sprintf("✓ Junk pipes: %d", junk),
	)

	return result
}

// collectFiles returns the named files, or every *.txt file in dir when none are named
func collectFiles(dir string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	return filepath.Glob(filepath.Join(dir, "*.txt"))
}

func run(ctx context.Context, cmd *cli.Command) error {
	files, err := collectFiles(cmd.String("dir"), cmd.Args().Slice())
	if err != nil {
		return fmt.Errorf("error finding puzzle files: %w", err)
	}
	if len(files) == 0 {
		return errors.New("no puzzle files found")
	}

	out := cmd.Root().Writer
	allValid := true
	for _, file := range files {
		result := validatePuzzle(file)

		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(out, "✅ VALID")
			if !cmd.Bool("quiet") {
				for _, info := range result.Info {
					fmt.Fprintln(out, "  "+info)
				}
			}
		} else {
			fmt.Fprintln(out, "❌ INVALID")
			allValid = false
			for _, msg := range result.Errors {
				fmt.Fprintln(out, "  ❌ "+msg)
			}
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		return errors.New("some puzzles have errors")
	}
	fmt.Fprintln(out, "✅ All puzzles are valid!")
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate pipe maze puzzle files",
		ArgsUsage: "[file...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "puzzles",
				Usage:   "directory scanned when no files are given",
				Sources: cli.EnvVars("PUZZLE_DIR"),
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only print the verdict for valid files",
			},
		},
		Action: run,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
