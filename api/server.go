package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Surya-sourav/glass/factory"
	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/logger"
)

const defaultMaxBodySize = 25 << 20

// OptionsFunc returns backend options for a provider id.
type OptionsFunc func(id string) map[string]any

// Server serves the provider API.
type Server struct {
	dispatcher     *factory.Dispatcher
	engine         *gin.Engine
	log            *logger.Logger
	serviceName    string
	providerOpts   OptionsFunc
	llmMiddleware  llm.Middleware
	allowedOrigins []string
	maxBodySize    int64

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and panic logging.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithServiceName sets the name reported by /health.
func WithServiceName(name string) Option {
	return func(s *Server) { s.serviceName = name }
}

// WithProviderOptions sets the source of configured backend options.
func WithProviderOptions(fn OptionsFunc) Option {
	return func(s *Server) { s.providerOpts = fn }
}

// WithLLMMiddleware wraps every non-streaming LLM client created by the API.
func WithLLMMiddleware(mw llm.Middleware) Option {
	return func(s *Server) { s.llmMiddleware = mw }
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// WithMaxBodySize caps request bodies. Defaults to 25MB for audio uploads.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) { s.maxBodySize = n }
}

// New creates a Server with its middleware and routes registered.
func New(d *factory.Dispatcher, opts ...Option) *Server {
	s := &Server{
		dispatcher:   d,
		serviceName:  "glass",
		providerOpts: func(string) map[string]any { return nil },
		maxBodySize:  defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get(logger.ComponentAPI)
	}

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.engine = gin.New()
	s.engine.Use(Recovery(s.log), RequestID())
	if len(s.allowedOrigins) > 0 {
		s.engine.Use(CORS(s.allowedOrigins))
	}
	s.engine.Use(BodySizeLimit(s.maxBodySize), RequestLogger(s.log))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)

	v1 := s.engine.Group("/v1/providers")
	v1.GET("", s.listProviders)
	v1.GET("/available", s.availableProviders)
	v1.POST("/:id/validate", s.validateKey)
	v1.POST("/:id/complete", s.complete)
	v1.POST("/:id/transcribe", s.transcribe)
}

// Engine returns the Gin engine for additional routes.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Handler returns the root handler with HTTP/2 cleartext support.
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(s.engine, &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	})
}

// Start binds addr and serves in the background. It returns once the
// listener is bound.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", addr, err)
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]any{logger.FieldError: err.Error()})
		}
	}()

	s.log.Info("HTTP server started", map[string]any{"addr": listener.Addr().String()})
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("HTTP server shut down")
	return nil
}
