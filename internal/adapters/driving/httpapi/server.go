package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/foodshare/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Options configures the HTTP server.
type Options struct {
	// AllowedOrigins lists origins allowed by CORS. "*" allows any origin.
	// Empty disables CORS handling.
	AllowedOrigins []string

	// Mount adds extra handlers under their path, e.g. the MCP endpoint.
	Mount map[string]http.Handler
}

// Server is the HTTP JSON API for the dashboard.
type Server struct {
	ports  *Ports
	engine *gin.Engine
}

// NewServer creates the gin engine and registers every route.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	if len(opts.AllowedOrigins) > 0 {
		engine.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	}

	s := &Server{ports: ports, engine: engine}
	s.registerRoutes()
	for path, h := range opts.Mount {
		engine.Any(path, gin.WrapH(h))
	}
	return s, nil
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.healthz)

	api := s.engine.Group("/api/v1")
	api.GET("/options", s.options)
	api.GET("/dashboard", s.dashboard)
	api.GET("/views/:view", s.view)
	api.GET("/providers/ids", s.providerIDs)
	api.POST("/listings", s.addListing)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http: shutdown: %v", err)
		}
	}()

	logger.Info("http: serving on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// requestLogger logs each request through the verbose logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), time.Since(start))
	}
}
