// Package api provides HTTP REST API handlers for the pipe maze solver.
//
// The api package implements:
//   - Solving raw layouts and stored puzzles
//   - Puzzle listing, retrieval and upload
//   - Access to persisted solve reports
//   - WebSocket upgrade handling for live solve events
//
// Endpoints:
//
// Solving:
//   - POST /api/solve - Solve a layout given in the request body
//   - POST /api/puzzles/{name}/solve - Solve a stored puzzle
//
// Puzzles:
//   - GET /api/puzzles - List stored puzzles
//   - POST /api/puzzles - Store a new puzzle
//   - GET /api/puzzles/{name} - Get a stored puzzle
//
// Reports:
//   - GET /api/reports - List reports, newest first (?puzzle=, ?limit=)
//   - GET /api/reports/{id} - Get a report
//
// Other:
//   - GET /ws?puzzle=<name> - Subscribe to solved events ("*" for all)
//   - GET /health - Liveness check
//
// Request/Response Format:
//
// Solve requests accept the layout as rows or as newline separated text:
//
//	{
//	  "layout": [".....", ".S-7.", ".|.|.", ".L-J.", "....."],
//	  "strategy": "edge|scanline",
//	  "persist": true
//	}
//
// The strategy and persist query parameters override the body.
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status code derived from the error:
//
//	{"error": "puzzle not found: 'nope'. Available puzzles: [large square]"}
//
// 400 for malformed layouts, 404 for unknown puzzles and reports, 422 when
// the grid holds no closed loop through the start tile.
package api
