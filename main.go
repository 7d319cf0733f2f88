// Command pipemaze solves pipe maze puzzles.
//
// By default it reads a puzzle file, traces the closed loop through the start
// tile and prints two lines: the farthest distance along the loop and the
// number of cells the loop encloses. With --grid it prints the marked grid
// between the two answers.
//
// It also has two server modes:
//  1. "serve": runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp": runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, puzzle and report directories, debug logging, and
// optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/pipemaze/api"
	"github.com/wricardo/pipemaze/maze/config"
	"github.com/wricardo/pipemaze/maze/engine"
	"github.com/wricardo/pipemaze/maze/render"
	"github.com/wricardo/pipemaze/maze/report"
	"github.com/wricardo/pipemaze/maze/service"
	"github.com/wricardo/pipemaze/transport/mcp"
	"github.com/wricardo/pipemaze/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Pipe Maze Solver"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:      "pipemaze",
		Usage:     "trace the pipe loop through S and count the cells it encloses",
		ArgsUsage: "<puzzle-file>",
		Version:   Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "grid",
				Usage: "print the marked grid between the two answers",
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "draw the marked grid with box-drawing glyphs and colour (implies --grid)",
			},
			&cli.StringFlag{
				Name:    "strategy",
				Value:   string(engine.StrategyEdge),
				Usage:   "interior classification: edge or scanline",
				Sources: cli.EnvVars("PIPEMAZE_STRATEGY"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: setup,
		Action: solveFile,
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
		},
	}
}

// serverFlags are shared by the serve and mcp commands
func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "HTTP server port",
			Sources: cli.EnvVars("PORT"),
		},
		&cli.StringFlag{
			Name:  "host",
			Value: "localhost",
			Usage: "HTTP server host",
		},
		&cli.StringFlag{
			Name:    "puzzle-dir",
			Value:   "puzzles",
			Usage:   "directory containing puzzle files",
			Sources: cli.EnvVars("PUZZLE_DIR"),
		},
		&cli.StringFlag{
			Name:    "report-dir",
			Value:   "reports",
			Usage:   "directory for persisted solve reports; empty keeps reports in memory",
			Sources: cli.EnvVars("REPORT_DIR"),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server with REST API, WebSocket, and MCP endpoint",
		Flags: append(serverFlags(),
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			solver, err := initializeServices(cmd.String("puzzle-dir"), cmd.String("report-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			runHTTPServer(solver, serverOptions{
				Host:        cmd.String("host"),
				Port:        cmd.Int("port"),
				Ngrok:       cmd.Bool("ngrok"),
				NgrokAuth:   cmd.String("ngrok-auth"),
				NgrokDomain: cmd.String("ngrok-domain"),
			})
			return nil
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "run an MCP stdio server backed by the HTTP API",
		Flags:   serverFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			solver, err := initializeServices(cmd.String("puzzle-dir"), cmd.String("report-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			externalURL := fmt.Sprintf("http://%s:%d", cmd.String("host"), cmd.Int("port"))
			return runStdioMCPWithInternalServer(solver, externalURL)
		},
	}
}

// setup loads .env and configures logging before any command runs
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else if cmd.Bool("debug") {
		log.Println("Loaded environment variables from .env file")
	}

	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
	return ctx, nil
}

// solveFile is the default action: answer both questions for one puzzle file
func solveFile(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one puzzle file, got %d arguments (see --help)", cmd.Args().Len())
	}

	strategy, err := engine.ParseStrategy(cmd.String("strategy"))
	if err != nil {
		return err
	}

	path := cmd.Args().First()
	grid, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	solution, err := engine.Solve(grid, engine.Options{Strategy: strategy})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if cmd.Bool("debug") {
		log.Printf("Loop of %d steps from %s heading %s (%s, S is %s)",
			solution.Steps, solution.Start, solution.InitialDirection, solution.Orientation, solution.StartTile)
	}

	writeAnswers(cmd.Root().Writer, solution, cmd.Bool("grid"), cmd.Bool("color"))
	return nil
}

// writeAnswers prints the farthest distance, the optional grid, then the interior count
func writeAnswers(w io.Writer, solution *engine.Solution, grid, color bool) {
	fmt.Fprintln(w, solution.Farthest)
	switch {
	case color:
		fmt.Fprintln(w, render.PrettySolution(solution))
	case grid:
		fmt.Fprintln(w, render.Plain(solution.Marked))
	}
	fmt.Fprintln(w, solution.Interior)
}

// serverOptions collects the serve command flags
type serverOptions struct {
	Host        string
	Port        int
	Ngrok       bool
	NgrokAuth   string
	NgrokDomain string
}

// newHTTPHandler combines the API server with the /mcp proxy endpoint
func newHTTPHandler(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()

	// Mount API server at root
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func runHTTPServer(solver service.SolverService, opts serverOptions) {
	log.Printf("Starting %s v%s (mode: serve)", AppName, Version)

	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(solver, hub)

	addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	mainRouter := newHTTPHandler(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?puzzle=<puzzle_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if opts.Ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter, opts)
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is cancelled
func runNgrokTunnel(ctx context.Context, handler http.Handler, opts serverOptions) {
	if opts.NgrokAuth == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if opts.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.NgrokDomain))
		log.Printf("Using custom ngrok domain: %s", opts.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(opts.NgrokAuth),
	)
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	// Closing the listener unblocks http.Serve on shutdown
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?puzzle=<puzzle_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// initializeServices wires the puzzle manager, report store and solver service.
// An empty reportDir keeps reports in memory.
func initializeServices(puzzleDir, reportDir string) (service.SolverService, error) {
	puzzles, err := config.NewManager(puzzleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create puzzle manager: %w", err)
	}

	var reports service.ReportStore
	if reportDir == "" {
		reports = report.NewMemoryStore()
	} else {
		store, err := report.NewFileStore(reportDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create report store: %w", err)
		}
		reports = store
	}

	return service.NewSolverService(puzzles, reports), nil
}

// apiAvailable reports whether baseURL answers /health without a server error
func apiAvailable(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at externalURL; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(solver service.SolverService, externalURL string) error {
	var baseURL string

	log.Printf("Checking for external API server at %s...", externalURL)

	if apiAvailable(&http.Client{Timeout: 2 * time.Second}, externalURL) {
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		// Start internal HTTP server on a random available port
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{
			Handler: api.NewServer(solver, hub),
		}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
