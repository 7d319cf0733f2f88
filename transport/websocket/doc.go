// Package websocket provides WebSocket transport for the pipe maze solver.
//
// The websocket package implements:
//   - Topic-aware WebSocket connections, one topic per puzzle
//   - Broadcasting of solve results as they complete
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a reader and a
// writer goroutine; the hub goroutine owns registration and fan-out.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//
//	{"topic": "square", "event": "solved", "result": {...SolveResult...}}
//
// Clients pick a topic with the puzzle query parameter (?puzzle=square).
// Solves of ad-hoc layouts are published on the "layout" topic, and clients
// subscribed to "*" receive every solve.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	hub.ServeWS(w, r, "square")
//	hub.BroadcastSolved("square", result)
package websocket
