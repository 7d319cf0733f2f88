// Package service provides the business logic layer for the pipe maze solver.
//
// The service package implements:
//   - Solving raw layouts and stored puzzles
//   - Puzzle listing, loading and saving
//   - Optional persistence of solve reports
//
// Core Interfaces:
//
// SolverService is the main service interface used by the HTTP, WebSocket and
// MCP transports. PuzzleManager loads puzzles from storage and ReportStore
// persists solve reports.
//
// Usage:
//
//	puzzles, err := config.NewManager("puzzles")
//	if err != nil {
//		log.Fatal(err)
//	}
//	reports, err := report.NewFileStore("reports")
//	if err != nil {
//		log.Fatal(err)
//	}
//	solver := service.NewSolverService(puzzles, reports)
//
//	result, err := solver.SolvePuzzle(ctx, "square", service.SolveOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Solution.Farthest, result.Solution.Interior)
package service
