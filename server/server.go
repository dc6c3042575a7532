package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/problemkit/logger"
	"github.com/kbukum/problemkit/server/middleware"
)

// Server is a unified HTTP server backed by Gin with optional support for
// additional handler mounts on the same port. All of it sits behind the
// error translation middleware.
type Server struct {
	httpServer   *http.Server
	engine       *gin.Engine
	mux          *http.ServeMux
	handler      http.Handler
	errorHandler func(middleware.Handler) http.Handler
	config       Config
	log          *logger.Logger
}

// New creates a new Server. Extra options are applied after the ones derived
// from cfg.Errors.
func New(cfg Config, log *logger.Logger, opts ...middleware.ErrorHandlerOption) *Server {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	errOpts := append(cfg.Errors.Options(), opts...)

	engine := gin.New()
	engine.Use(middleware.GinErrorHandler(log, errOpts...))

	mux := http.NewServeMux()
	// Mount Gin as the fallback handler on the root mux.
	mux.Handle("/", engine)

	// The error handler is the topmost layer so nothing escapes it.
	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.Errors(log, errOpts...),
	)(mux)

	// Wrap with h2c for HTTP/2 cleartext.
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h2c.NewHandler(handler, h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return &Server{
		httpServer:   httpServer,
		engine:       engine,
		mux:          mux,
		handler:      handler,
		errorHandler: middleware.ErrorHandler(log, errOpts...),
		config:       cfg,
		log:          log.WithComponent("server"),
	}
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the full handler tree without the h2c wrapper.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Handle mounts an http.Handler at the given pattern on the root ServeMux.
// Panics inside it are still translated by the topmost error handler.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", map[string]interface{}{
		"pattern": pattern,
	})
}

// HandleE mounts an error-returning handler. Returned errors are translated
// with the server's error handler settings.
func (s *Server) HandleE(pattern string, handler middleware.Handler) {
	s.Handle(pattern, s.errorHandler(handler))
}

// RegisterHealth registers GET /health.
func (s *Server) RegisterHealth(serviceName string) {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
