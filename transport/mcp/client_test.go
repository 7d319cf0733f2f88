package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/pipemaze/maze/engine"
	"github.com/wricardo/pipemaze/maze/service"
)

func squareResult(puzzleID string) service.SolveResult {
	return service.SolveResult{
		PuzzleID:  puzzleID,
		JunkPipes: 2,
		Solution: &engine.Solution{
			Start:            engine.Position{Row: 1, Col: 1},
			StartTile:        "F",
			InitialDirection: engine.South,
			Steps:            8,
			Farthest:         4,
			Interior:         1,
			Orientation:      engine.CounterClockwise,
			Strategy:         engine.StrategyEdge,
			Rows:             5,
			Cols:             5,
			Marked:           []string{".....", ".S-7.", ".|I|.", ".L-J.", "....."},
		},
	}
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "healthy"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall(context.Background(), "GET", "/health", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %v", response["status"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall(context.Background(), "GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall(context.Background(), "GET", "/api", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_solveLayout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/solve" {
			t.Errorf("Expected POST /api/solve, got %s %s", r.Method, r.URL.Path)
		}

		var body struct {
			Layout   []string `json:"layout"`
			Strategy string   `json:"strategy"`
			Persist  bool     `json:"persist"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if len(body.Layout) != 5 || body.Layout[1] != ".S-7." {
			t.Errorf("Unexpected layout %v", body.Layout)
		}
		if body.Strategy != "scanline" || !body.Persist {
			t.Errorf("Expected scanline with persist, got %s %v", body.Strategy, body.Persist)
		}

		result := squareResult("")
		result.ReportID = "rep-1"
		json.NewEncoder(w).Encode(result)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleSolveLayout(context.Background(), callRequest("solve_layout", map[string]interface{}{
		"layout":    ".....\n.S-7.\n.|.|.\n.L-J.\n.....\n",
		"strategy":  "scanline",
		"persist":   true,
		"show_grid": true,
	}))
	if err != nil {
		t.Fatalf("solveLayout failed: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{
		"Farthest: 4",
		"Interior: 1",
		"8 steps from (1,1) heading south, counter-clockwise (S is F)",
		"2 junk pipes",
		"Report: rep-1",
		".|I|.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_solveLayout_Rows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Layout []string `json:"layout"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if len(body.Layout) != 2 {
			t.Errorf("Expected 2 rows, got %v", body.Layout)
		}
		json.NewEncoder(w).Encode(squareResult(""))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleSolveLayout(context.Background(), callRequest("solve_layout", map[string]interface{}{
		"layout": []interface{}{"S7", "LJ"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, result); strings.Contains(text, ".|I|.") {
		t.Errorf("Grid should only be shown on request, got: %s", text)
	}
}

func TestClient_solveLayout_MissingLayout(t *testing.T) {
	client := NewClient("http://localhost:0")

	result, err := client.handleSolveLayout(context.Background(), callRequest("solve_layout", nil))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("Expected error result")
	}
}

func TestClient_solvePuzzle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/puzzles/missing/solve" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "puzzle not found: 'missing'"})
			return
		}
		if r.Method != "POST" || r.URL.Path != "/api/puzzles/square/solve" {
			t.Errorf("Expected POST /api/puzzles/square/solve, got %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(squareResult("square"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handleSolvePuzzle(ctx, callRequest("solve_puzzle", map[string]interface{}{"puzzle_id": "square"}))
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, result); !strings.Contains(text, "Puzzle: square") {
		t.Errorf("Expected puzzle name in result, got: %s", text)
	}

	result, err = client.handleSolvePuzzle(ctx, callRequest("solve_puzzle", map[string]interface{}{"puzzle_id": "missing"}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("Expected error result for missing puzzle")
	}
	if text := resultText(t, result); !strings.Contains(text, "puzzle not found") {
		t.Errorf("Expected API error message, got: %s", text)
	}
}

func TestClient_listPuzzles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 2,
			"puzzles": []service.PuzzleInfo{
				{PuzzleID: "large", Rows: 10, Cols: 20, Pipes: 150},
				{PuzzleID: "square", Rows: 5, Cols: 5, Pipes: 7},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleListPuzzles(context.Background(), callRequest("list_puzzles", nil))
	if err != nil {
		t.Fatal(err)
	}

	text := resultText(t, result)
	for _, want := range []string{"Available Puzzles (2)", "- large (10x20, 150 pipes)", "- square (5x5, 7 pipes)"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_getReport(t *testing.T) {
	created := time.Date(2024, 12, 10, 8, 30, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reports/rep-1" {
			t.Errorf("Expected /api/reports/rep-1, got %s", r.URL.Path)
		}
		res := squareResult("square")
		json.NewEncoder(w).Encode(service.Report{
			ID:        "rep-1",
			PuzzleID:  "square",
			CreatedAt: created,
			Solution:  res.Solution,
			JunkPipes: 2,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleGetReport(context.Background(), callRequest("get_report", map[string]interface{}{"report_id": "rep-1"}))
	if err != nil {
		t.Fatal(err)
	}

	text := resultText(t, result)
	for _, want := range []string{"Report rep-1 (created 2024-12-10T08:30:00Z)", "Puzzle: square", "Interior: 1", "2 junk pipes"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_tileLegend(t *testing.T) {
	client := NewClient("http://localhost:0")

	result, err := client.handleTileLegend(context.Background(), callRequest("tile_legend", nil))
	if err != nil {
		t.Fatal(err)
	}

	text := resultText(t, result)
	for _, tile := range []string{"|", "-", "L", "J", "7", "F", ".", "S", "I"} {
		if !strings.Contains(text, "• "+tile+" - ") {
			t.Errorf("Expected legend entry for %s", tile)
		}
	}
}

func TestLayoutArg(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want int
	}{
		{"text", map[string]interface{}{"layout": "S7\nLJ"}, 2},
		{"text with trailing newline", map[string]interface{}{"layout": "S7\nLJ\n"}, 2},
		{"rows", map[string]interface{}{"layout": []interface{}{"S7", "LJ", 3}}, 2},
		{"missing", map[string]interface{}{}, 0},
		{"wrong type", map[string]interface{}{"layout": 42}, 0},
	}

	for _, tt := range tests {
		if got := layoutArg(tt.args); len(got) != tt.want {
			t.Errorf("%s: expected %d rows, got %v", tt.name, tt.want, got)
		}
	}
}
