package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/pipemaze/maze/render"
	"github.com/wricardo/pipemaze/maze/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Pipe Maze Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Pipe Maze Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A pipe maze is a grid of pipe tiles. One tile, S, is the start of a single closed
loop of pipes. The solver traces that loop and reports:
- farthest: the number of steps from S to the point of the loop farthest away along it
- interior: the number of cells enclosed by the loop

AVAILABLE TOOLS:
- solve_layout: Solve a layout given as text
- solve_puzzle: Solve a stored puzzle by ID
- list_puzzles: List stored puzzles
- get_report: Fetch a persisted solve report
- tile_legend: Explain the tile symbols

Use tile_legend first if the symbols are unfamiliar.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	strategyProp := map[string]interface{}{
		"type":        "string",
		"description": "Interior classification strategy: edge (default) or scanline",
		"enum":        []string{"edge", "scanline"},
	}
	persistProp := map[string]interface{}{
		"type":        "boolean",
		"description": "Store a report of the solve and return its ID",
	}
	showGridProp := map[string]interface{}{
		"type":        "boolean",
		"description": "Include the marked grid (loop tiles plus I for interior cells)",
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_layout",
		Description: "Solve a pipe maze layout and return the farthest loop distance and the interior cell count",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"layout": map[string]interface{}{
					"type":        "string",
					"description": "Grid rows separated by newlines, using | - L J 7 F . S",
				},
				"strategy":  strategyProp,
				"persist":   persistProp,
				"show_grid": showGridProp,
			},
			Required: []string{"layout"},
		},
	}, c.handleSolveLayout)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Solve a stored puzzle by ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle ID as returned by list_puzzles",
				},
				"strategy":  strategyProp,
				"persist":   persistProp,
				"show_grid": showGridProp,
			},
			Required: []string{"puzzle_id"},
		},
	}, c.handleSolvePuzzle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List stored puzzles with their sizes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_report",
		Description: "Get a persisted solve report",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"report_id": map[string]interface{}{
					"type":        "string",
					"description": "Report ID returned by a solve with persist=true",
				},
				"show_grid": showGridProp,
			},
			Required: []string{"report_id"},
		},
	}, c.handleGetReport)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tile_legend",
		Description: "Describe the tile symbols used in layouts and solved grids",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleTileLegend)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool call arguments, or an empty map when none were sent
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// layoutArg accepts the layout as newline separated text or as a list of rows
func layoutArg(args map[string]interface{}) []string {
	switch v := args["layout"].(type) {
	case string:
		return strings.Split(strings.TrimRight(v, "\n"), "\n")
	case []interface{}:
		rows := make([]string, 0, len(v))
		for _, row := range v {
			if s, ok := row.(string); ok {
				rows = append(rows, s)
			}
		}
		return rows
	}
	return nil
}

func solveBody(args map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{}
	if strategy, _ := args["strategy"].(string); strategy != "" {
		body["strategy"] = strategy
	}
	if persist, _ := args["persist"].(bool); persist {
		body["persist"] = true
	}
	return body
}

// Tool handlers

func (c *Client) handleSolveLayout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	layout := layoutArg(args)
	if len(layout) == 0 {
		return mcp.NewToolResultError("layout is required"), nil
	}
	showGrid, _ := args["show_grid"].(bool)

	body := solveBody(args)
	body["layout"] = layout

	var result service.SolveResult
	if err := c.apiCall(ctx, "POST", "/api/solve", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(&result, showGrid)), nil
}

func (c *Client) handleSolvePuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	puzzleID, _ := args["puzzle_id"].(string)
	if puzzleID == "" {
		return mcp.NewToolResultError("puzzle_id is required"), nil
	}
	showGrid, _ := args["show_grid"].(bool)

	var result service.SolveResult
	path := fmt.Sprintf("/api/puzzles/%s/solve", url.PathEscape(puzzleID))
	if err := c.apiCall(ctx, "POST", path, solveBody(args), &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(&result, showGrid)), nil
}

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                  `json:"count"`
		Puzzles []service.PuzzleInfo `json:"puzzles"`
	}

	if err := c.apiCall(ctx, "GET", "/api/puzzles", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Available Puzzles (%d):\n\n", response.Count)
	for _, p := range response.Puzzles {
		result += fmt.Sprintf("- %s (%dx%d, %d pipes)\n", p.PuzzleID, p.Rows, p.Cols, p.Pipes)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	reportID, _ := args["report_id"].(string)
	if reportID == "" {
		return mcp.NewToolResultError("report_id is required"), nil
	}
	showGrid, _ := args["show_grid"].(bool)

	var report service.Report
	if err := c.apiCall(ctx, "GET", "/api/reports/"+url.PathEscape(reportID), nil, &report); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatReport(&report, showGrid)), nil
}

func (c *Client) handleTileLegend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(tileLegend), nil
}

const tileLegend = `Pipe Maze Tiles

LAYOUT SYMBOLS:
• | - vertical pipe, connects north and south
• - - horizontal pipe, connects east and west
• L - bend connecting north and east
• J - bend connecting north and west
• 7 - bend connecting south and west
• F - bend connecting south and east
• . - ground, no pipe
• S - start; a pipe of unknown shape that is part of the loop

SOLVED GRID SYMBOLS:
• Loop tiles keep their symbol; S stays S
• I - a cell enclosed by the loop
• . - a cell outside the loop, including pipes that are not part of it

RULES:
• Rows grow downward, columns grow to the right
• Exactly one S per layout; all rows must have the same length
• Movement is only north, south, east and west
• Squeezing between two adjacent pipes does not leave the loop: a cell
  counts as interior if it is enclosed, however narrow the gap`

func formatSolveResult(result *service.SolveResult, showGrid bool) string {
	s := result.Solution
	var b strings.Builder

	if result.PuzzleID != "" {
		fmt.Fprintf(&b, "Puzzle: %s\n", result.PuzzleID)
	}
	fmt.Fprintf(&b, "Farthest: %d\n", s.Farthest)
	fmt.Fprintf(&b, "Interior: %d\n", s.Interior)
	fmt.Fprintf(&b, "Loop: %d steps from %s heading %s, %s (S is %s)\n",
		s.Steps, s.Start, s.InitialDirection, s.Orientation, s.StartTile)
	fmt.Fprintf(&b, "Grid: %dx%d, strategy %s, %d junk pipes\n", s.Rows, s.Cols, s.Strategy, result.JunkPipes)
	if result.ReportID != "" {
		fmt.Fprintf(&b, "Report: %s\n", result.ReportID)
	}
	if showGrid {
		fmt.Fprintf(&b, "\n%s\n", render.Plain(s.Marked))
	}
	return b.String()
}

func formatReport(report *service.Report, showGrid bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Report %s (created %s)\n", report.ID, report.CreatedAt.Format(time.RFC3339))
	b.WriteString(formatSolveResult(&service.SolveResult{
		PuzzleID:  report.PuzzleID,
		Solution:  report.Solution,
		JunkPipes: report.JunkPipes,
	}, showGrid))
	return b.String()
}
