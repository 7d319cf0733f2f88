// Package engine provides the core pipe maze logic.
//
// The engine package implements:
//   - Grid lookup, search and in-place marking
//   - The direction transition table for pipe tiles
//   - Loop tracing from the start tile
//   - Boundary marking and interior classification
//
// Core Types:
//
// Grid holds the tiles. Position, Direction and Heading describe movement;
// Loop is the traced cycle and Solution the result of a full solve.
//
// Usage:
//
//	grid, err := engine.ParseGrid(lines)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	solution, err := engine.Solve(grid, engine.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(solution.Farthest)
//	fmt.Println(solution.Interior)
//
// Tiles:
//
// | and - are straight pipes. L, J, 7 and F are bends joining north-east,
// north-west, south-west and south-east. . is ground and S is the start,
// which sits on an unknown pipe shape that is resolved once the loop closes.
package engine
