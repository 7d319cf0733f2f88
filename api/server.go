package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/wricardo/pipemaze/maze/config"
	"github.com/wricardo/pipemaze/maze/engine"
	"github.com/wricardo/pipemaze/maze/service"
	"github.com/wricardo/pipemaze/transport/websocket"
)

// maxBodyBytes bounds request bodies; a MaxGridSize square layout fits comfortably
const maxBodyBytes = 4 << 20

// Server represents the REST API server
type Server struct {
	service service.SolverService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil, in which case solves are not broadcast.
func NewServer(solverService service.SolverService, hub *websocket.Hub) *Server {
	s := &Server{
		service: solverService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Routes live on the root router so a known path with the wrong method answers 405
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Solving
	s.router.HandleFunc("/api/solve", s.handleSolve).Methods("POST")

	// Puzzles
	s.router.HandleFunc("/api/puzzles", s.handleListPuzzles).Methods("GET")
	s.router.HandleFunc("/api/puzzles", s.handleSavePuzzle).Methods("POST")
	s.router.HandleFunc("/api/puzzles/{name}", s.handleGetPuzzle).Methods("GET")
	s.router.HandleFunc("/api/puzzles/{name}/solve", s.handleSolvePuzzle).Methods("POST")

	// Reports
	s.router.HandleFunc("/api/reports", s.handleListReports).Methods("GET")
	s.router.HandleFunc("/api/reports/{id}", s.handleGetReport).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service and engine errors onto HTTP status codes
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrPuzzleNotFound), errors.Is(err, service.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidLayout),
		errors.Is(err, config.ErrInvalidPuzzle),
		errors.Is(err, engine.ErrUnknownStrategy):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNoStart), errors.Is(err, engine.ErrNoLoop):
		// Well-formed grid without a closed loop through the start tile
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrReportsDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// solveRequest is accepted by both solve endpoints. Layout rows may be given as a list or
// as newline separated text.
type solveRequest struct {
	Layout   []string `json:"layout,omitempty"`
	Text     string   `json:"text,omitempty"`
	Strategy string   `json:"strategy,omitempty"`
	Persist  bool     `json:"persist,omitempty"`
}

func (req *solveRequest) lines() []string {
	if len(req.Layout) > 0 {
		return req.Layout
	}
	if req.Text == "" {
		return nil
	}
	return strings.Split(req.Text, "\n")
}

func (req *solveRequest) options(r *http.Request) service.SolveOptions {
	opts := service.SolveOptions{Strategy: req.Strategy, Persist: req.Persist}
	// Query parameters override the body
	query := r.URL.Query()
	if strategy := query.Get("strategy"); strategy != "" {
		opts.Strategy = strategy
	}
	if persist := query.Get("persist"); persist != "" {
		if v, err := strconv.ParseBool(persist); err == nil {
			opts.Persist = v
		}
	}
	return opts
}

// decodeBody decodes an optional JSON body into dst
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// Solve Handlers

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines := req.lines()
	if len(lines) == 0 {
		respondError(w, http.StatusBadRequest, "layout or text is required")
		return
	}

	result, err := s.service.SolveLayout(r.Context(), lines, req.options(r))
	if err != nil {
		log.Printf("[SOLVE] layout rows=%d failed: %v", len(lines), err)
		respondServiceError(w, err)
		return
	}

	s.logSolve(result)
	s.broadcast(result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSolvePuzzle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	puzzleName := vars["name"]

	var req solveRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.SolvePuzzle(r.Context(), puzzleName, req.options(r))
	if err != nil {
		log.Printf("[SOLVE] puzzle=%s failed: %v", puzzleName, err)
		respondServiceError(w, err)
		return
	}

	s.logSolve(result)
	s.broadcast(result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) logSolve(result *service.SolveResult) {
	puzzle := result.PuzzleID
	if puzzle == "" {
		puzzle = "-"
	}
	log.Printf("[SOLVE] puzzle=%s strategy=%s steps=%d farthest=%d interior=%d junk=%d (%.2fms)",
		puzzle, result.Solution.Strategy, result.Solution.Steps, result.Solution.Farthest,
		result.Solution.Interior, result.JunkPipes, result.DurationMS)
}

func (s *Server) broadcast(result *service.SolveResult) {
	if s.hub != nil {
		s.hub.BroadcastSolved(result.PuzzleID, result)
	}
}

// Puzzle Handlers

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := s.service.ListPuzzles(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if puzzles == nil {
		puzzles = []*service.PuzzleInfo{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(puzzles),
		"puzzles": puzzles,
	})
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	puzzleName := vars["name"]

	puzzle, err := s.service.LoadPuzzle(r.Context(), puzzleName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, puzzle)
}

func (s *Server) handleSavePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string   `json:"name"`
		Layout []string `json:"layout,omitempty"`
		Text   string   `json:"text,omitempty"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	layout := (&solveRequest{Layout: req.Layout, Text: req.Text}).lines()
	if len(layout) == 0 {
		respondError(w, http.StatusBadRequest, "layout or text is required")
		return
	}

	info, err := s.service.SavePuzzle(r.Context(), req.Name, layout)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[PUZZLE] saved %s (%dx%d, %d pipes)", info.PuzzleID, info.Rows, info.Cols, info.Pipes)
	respondJSON(w, http.StatusCreated, info)
}

// Report Handlers

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.service.ListReports(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	if puzzle := query.Get("puzzle"); puzzle != "" {
		filtered := reports[:0]
		for _, report := range reports {
			if report.PuzzleID == puzzle {
				filtered = append(filtered, report)
			}
		}
		reports = filtered
	}

	total := len(reports)
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(reports) {
			reports = reports[:l]
		}
	}
	if reports == nil {
		reports = []*service.Report{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(reports),
		"total":   total,
		"reports": reports,
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reportID := vars["id"]

	report, err := s.service.GetReport(r.Context(), reportID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "WebSocket not available", http.StatusServiceUnavailable)
		return
	}

	topic := r.URL.Query().Get("puzzle")
	if topic == "" {
		http.Error(w, "puzzle parameter required", http.StatusBadRequest)
		return
	}

	// Verify puzzle exists unless subscribing to a wildcard topic
	if topic != websocket.AllTopics && topic != websocket.LayoutTopic {
		if _, err := s.service.LoadPuzzle(r.Context(), topic); err != nil {
			http.Error(w, "Invalid puzzle", http.StatusNotFound)
			return
		}
	}

	// Upgrade to WebSocket
	s.hub.ServeWS(w, r, topic)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
