// Package mcp provides a Model Context Protocol server for the pipe maze solver.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions proxying the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//   - solve_layout: Solve a layout passed as text
//   - solve_puzzle: Solve a stored puzzle by ID
//   - list_puzzles: List stored puzzles
//   - get_report: Fetch a persisted solve report
//   - tile_legend: Describe tile symbols
//
// The client holds no solver state of its own. Every tool except tile_legend
// is a call against the REST API at the configured base URL.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	response := client.GetMCPServer().HandleMessage(ctx, body)
package mcp
