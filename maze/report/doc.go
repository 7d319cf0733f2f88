// Package report persists solve reports for the pipe maze solver.
//
// A report records the layout that was solved, the full engine solution
// (farthest distance, interior count, orientation and the marked grid) and
// when the solve happened. Reports are written when a solve is requested with
// persistence enabled, and can be fetched later by ID over HTTP or MCP.
//
// Two Store implementations are provided:
//   - FileStore writes one indented JSON file per report
//   - MemoryStore keeps reports in a map for the lifetime of the process
//
// Usage:
//
//	store, err := report.NewFileStore("reports")
//	if err != nil {
//		log.Fatal(err)
//	}
//	solver := service.NewSolverService(puzzles, store)
package report
