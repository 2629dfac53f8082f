package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridmaze/internal/web"
)

var (
	flagHTTPAddr   string
	flagSessionTTL time.Duration
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the maze HTTP/WebSocket API",
	Long: `Start an HTTP server exposing the maze as a JSON API.

Routes:
  GET    /healthz
  POST   /api/games                   {"difficulty": "easy", "player": "me"}
  GET    /api/games/:id
  POST   /api/games/:id/move          {"direction": "up|down|left|right"}
  POST   /api/games/:id/difficulty    {"difficulty": "easy|medium|hard"}
  POST   /api/games/:id/restart
  DELETE /api/games/:id
  GET    /api/games/:id/ws            WebSocket state stream
  GET    /api/records?difficulty=&limit=

Examples:
  gridmaze web
  gridmaze web --http 127.0.0.1:9000 --show-walls`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().DurationVar(&flagSessionTTL, "session-ttl", time.Hour, "Drop sessions idle for this long (0 keeps them)")
	addMazeFlags(webCmd)
}

func runWeb(cmd *cobra.Command, _ []string) error {
	mazeCfg, err := loadMazeConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger("gridmaze-web")
	if err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)

	cfg := web.Config{
		Address:    flagHTTPAddr,
		Maze:       mazeCfg,
		Seed:       flagSeed,
		SessionTTL: flagSessionTTL,
		Logger:     logger,
	}

	var store web.RunStore
	if s := openStore(); s != nil {
		defer s.Close()
		store = s
	}

	server, err := web.NewServer(cfg, store)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting maze HTTP server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe(ctx)
}
