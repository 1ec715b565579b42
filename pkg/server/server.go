// Package server exposes the stair pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/chazu/stairway/pkg/app"
)

// MaxImageSize bounds the pixel size a client may request.
const MaxImageSize = 8192

// Options configures a Server.
type Options struct {
	AllowedOrigins []string // "*" allows any origin
	PNGWidth       int
	PNGHeight      int
	Logger         *slog.Logger
}

// Server routes HTTP requests to an App.
type Server struct {
	app    *app.App
	opts   Options
	log    *slog.Logger
	router *gin.Engine
}

// New builds the router for a.
func New(a *app.App, opts Options) *Server {
	if opts.PNGWidth <= 0 {
		opts.PNGWidth = 1024
	}
	if opts.PNGHeight <= 0 {
		opts.PNGHeight = 1024
	}
	s := &Server{app: a, opts: opts, log: opts.Logger}
	if s.log == nil {
		s.log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	r.GET("/healthz", s.Health)
	api := r.Group("/api")
	{
		api.GET("/defaults", s.Defaults)
		api.POST("/evaluate", s.Evaluate)
		api.POST("/compute", s.Compute)
		api.POST("/plan.png", s.PlanPNG)
		api.POST("/plan.svg", s.PlanSVG)
		api.POST("/plan.dxf", s.PlanDXF)
	}
	s.router = r
	return s
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// requestLog logs each request at debug level.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}
