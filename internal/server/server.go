// Package server exposes the chat, history and account operations over
// HTTP with gin.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/edubot/edubot/internal/auth"
	"github.com/edubot/edubot/internal/chat"
	"github.com/edubot/edubot/internal/history"
	"github.com/edubot/edubot/internal/logger"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures middleware.
type Options struct {
	Mode           string
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
}

// Deps are the services the handlers call.
type Deps struct {
	Chat    *chat.Controller
	History *history.Service
	Auth    *auth.Service
	Store   Pinger
	Log     *logger.Logger
}

// Server owns the gin engine.
type Server struct {
	engine *gin.Engine
	deps   Deps
	log    *logger.Logger
}

// New builds the router and its middleware chain.
func New(opts Options, deps Deps) *Server {
	switch opts.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	log := deps.Log.With("component", "http")

	r := gin.New()
	r.Use(requestID())
	r.Use(accessLog(log))
	r.Use(recovery(log))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	if opts.RateLimit > 0 {
		r.Use(newIPLimiter(opts.RateLimit, opts.RateBurst).middleware())
	}

	s := &Server{engine: r, deps: deps, log: log}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.POST("/register", s.register)
		api.POST("/login", s.login)
	}

	// Tokens are optional: a valid one attaches the user, a bad one is
	// rejected.
	authed := api.Group("")
	authed.Use(optionalAuth(s.deps.Auth))
	{
		authed.POST("/chat", s.chat)

		authed.POST("/history", s.saveMessage)
		authed.GET("/history", s.listHistory)
		authed.DELETE("/history/:id", s.deleteHistory)
		authed.PATCH("/history/:id", s.renameHistory)
		authed.PATCH("/history/:id/message/:messageId", s.editMessage)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (s *Server) health(c *gin.Context) {
	if s.deps.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.Store.Ping(ctx); err != nil {
			s.log.Warn("health check failed", "error", err)
			respondError(c, &apiError{Status: http.StatusServiceUnavailable, Code: "store_unavailable", Err: err})
			return
		}
	}
	c.String(http.StatusOK, "ok")
}
