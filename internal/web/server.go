// Package web serves the maze over HTTP: a JSON API with one engine per
// session and a WebSocket stream of state changes.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/gridmaze/internal/config"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

// RunStore records and lists completed runs. *storage.Store implements it.
type RunStore interface {
	SaveRun(run storage.Run) (int64, error)
	TopRuns(difficulty string, limit int) ([]storage.Run, error)
}

// Config holds configuration for the HTTP server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	Maze config.MazeConfig

	// Seed fixes session seeds for reproducible mazes. Zero uses time.
	Seed int64

	// SessionTTL drops sessions idle for longer than this. Zero keeps them.
	SessionTTL time.Duration

	// Logger receives access and session logs. Nil creates a stderr logger.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:    ":8080",
		Maze:       config.DefaultMazeConfig(),
		SessionTTL: time.Hour,
	}
}

// Server is the maze HTTP API.
type Server struct {
	config   Config
	engine   *gin.Engine
	srv      *http.Server
	sessions *Sessions
	hub      *Hub
	store    RunStore
	logger   *log.Logger
}

// NewServer builds the router. store may be nil, in which case runs are not
// recorded and the records endpoint reports 503.
func NewServer(cfg Config, store RunStore) (*Server, error) {
	if err := cfg.Maze.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gridmaze-web",
		})
	}

	sessions, err := NewSessions(cfg.Maze, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(accessLog(logger))

	s := &Server{
		config:   cfg,
		engine:   engine,
		sessions: sessions,
		hub:      NewHub(logger),
		store:    store,
		logger:   logger,
	}
	s.routes()

	s.srv = &http.Server{
		Addr:              cfg.Address,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
	})

	api := s.engine.Group("/api")
	api.GET("/records", s.handleRecords)

	games := api.Group("/games")
	games.POST("", s.handleCreate)
	games.GET("/:id", s.handleGet)
	games.DELETE("/:id", s.handleDelete)
	games.POST("/:id/move", s.handleMove)
	games.POST("/:id/difficulty", s.handleDifficulty)
	games.POST("/:id/restart", s.handleRestart)
	games.GET("/:id/ws", s.handleWebSocket)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Sessions returns the session registry.
func (s *Server) Sessions() *Sessions {
	return s.sessions
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting HTTP server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if s.config.SessionTTL > 0 {
		go s.pruneLoop(ctx)
	}

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(s.config.SessionTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, id := range s.sessions.Prune(s.config.SessionTTL, now) {
				s.hub.CloseSession(id)
				s.logger.Info("session expired", "session", id)
			}
		}
	}
}

// accessLog logs one line per request.
func accessLog(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", route,
			"status", status,
			"latency", time.Since(start),
			"client", c.ClientIP(),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", kv...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", kv...)
		default:
			logger.Info("request", kv...)
		}
	}
}
