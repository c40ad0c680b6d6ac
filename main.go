// Command shiftingmaze starts the shifting maze game server.
//
// It runs an HTTP server exposing the REST API and a WebSocket state feed.
// Flags control host/port, config and session directories, debug logging,
// and version output.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/openmaze/shiftingmaze/api"
	"github.com/openmaze/shiftingmaze/game/config"
	"github.com/openmaze/shiftingmaze/game/service"
	"github.com/openmaze/shiftingmaze/game/session"
	"github.com/openmaze/shiftingmaze/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Shifting Maze Game Server"
)

// Configuration flags control how the server starts.
var (
	port        = flag.Int("port", 8080, "HTTP server port")
	host        = flag.String("host", "localhost", "HTTP server host")
	configDir   = flag.String("config-dir", getConfigDirDefault(), "Directory containing game configurations")
	sessionsDir = flag.String("sessions-dir", getSessionsDirDefault(), "Directory for persisted sessions")
	debug       = flag.Bool("debug", false, "Enable debug logging")
	version     = flag.Bool("version", false, "Show version information")
)

// getConfigDirDefault returns the default configuration directory.
// It first honors the CONFIG_DIR environment variable, then falls back to "configs".
func getConfigDirDefault() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return "configs"
}

// getSessionsDirDefault returns the default sessions directory.
// It first honors the SESSIONS_DIR environment variable, then falls back to "sessions".
func getSessionsDirDefault() string {
	if dir := os.Getenv("SESSIONS_DIR"); dir != "" {
		return dir
	}
	return "sessions"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090         # Run HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -debug             # Run with debug logging\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the HTTP server.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("error loading .env file")
		}
	} else {
		log.Info("loaded environment variables from .env file")
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	// Setup logging
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	}

	log.WithField("version", Version).Infof("starting %s", AppName)

	gameService, sessionManager, err := initializeServices()
	if err != nil {
		log.WithError(err).Fatal("failed to initialize services")
	}

	runHTTPServer(gameService, sessionManager)
}

// runHTTPServer starts the HTTP server with the REST API and WebSocket hub,
// then blocks until a shutdown signal arrives.
func runHTTPServer(gameService service.GameService, sessionManager *session.Manager) {
	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Create API server
	apiServer := api.NewServer(gameService, hub)

	addr := fmt.Sprintf("%s:%d", *host, *port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      apiServer,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.WithField("addr", addr).Info("HTTP server listening")
		log.Infof("REST API: http://%s/api", addr)
		log.Infof("WebSocket: ws://%s/ws?session=<session_id>", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	sig := <-stop
	log.WithField("signal", sig.String()).Info("shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}

	// Flush game snapshots before exit
	if err := sessionManager.SaveAllSessions(); err != nil {
		log.WithError(err).Warn("failed to save sessions on shutdown")
	}

	wg.Wait()
	log.Info("server stopped")
}

// initializeServices wires session/config managers and the game service.
// It also starts a background routine that prunes stale sessions.
func initializeServices() (service.GameService, *session.Manager, error) {
	// Create config manager first (needed for persistence)
	configManager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	// Create session persistence
	persistence, err := session.NewFilePersistence(*sessionsDir, configManager)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	// Create session manager with persistence
	sessionManager := session.NewManagerWithPersistence(persistence)

	// Load persisted sessions on startup
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.WithError(err).Warn("failed to load persisted sessions")
	}

	gameService := service.NewGameService(sessionManager, configManager)

	// Start session cleanup routine
	go sessionCleanupRoutine(sessionManager)

	return gameService, sessionManager, nil
}

// sessionCleanupRoutine periodically evicts sessions that have not been
// accessed within the retention window. Persisted sessions reload lazily on
// the next access.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.WithField("count", removed).Info("cleaned up expired sessions")
		}
	}
}
