package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apperrors "github.com/kbukum/endpoints/errors"
	"github.com/kbukum/endpoints/logger"
	"github.com/kbukum/endpoints/observability"
	"github.com/kbukum/endpoints/server/endpoint"
	"github.com/kbukum/endpoints/server/middleware"
)

// Server is the HTTP host for a provider: Gin routes behind server-level
// middleware, served over HTTP/1.1 and h2c.
type Server struct {
	httpServer  *http.Server
	engine      *gin.Engine
	middlewares []middleware.Middleware
	config      Config
	log         *logger.Logger
	listener    net.Listener
}

// New creates a Server. Call ApplyMiddleware and RegisterRoutes before Start.
func New(cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	s := &Server{
		engine: engine,
		config: cfg,
		log:    log.WithComponent("server"),
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Engine returns the Gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Use appends server-level middleware. The first added is the outermost.
func (s *Server) Use(mws ...middleware.Middleware) {
	s.middlewares = append(s.middlewares, mws...)
}

// ApplyMiddleware installs the standard stack: request id, recovery,
// tracing, CORS, body-size limit, and request logging. Metrics are added
// when m is non-nil.
func (s *Server) ApplyMiddleware(m *observability.Metrics) {
	s.Use(
		middleware.RequestID(),
		middleware.Recovery(s.log),
		middleware.Tracing(),
	)
	if m != nil {
		s.Use(middleware.Metrics(m))
	}
	s.Use(
		middleware.CORS(s.config.CORS),
		middleware.BodySizeLimit(s.config.MaxBodySize),
		middleware.RequestLogger(s.log),
	)
}

// Handler returns the engine wrapped in the server-level middleware.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.middlewares...)(s.engine)
}

// RegisterRoutes registers the invocation API and the system endpoints.
func (s *Server) RegisterRoutes(serviceName string, inv Invoker, checkers ...observability.HealthChecker) {
	s.engine.POST(InvokePath, InvokeHandler(inv))
	s.engine.GET("/health", endpoint.Health(serviceName, checkers...))
	s.engine.GET("/version", endpoint.Version())
	s.engine.NoRoute(func(c *gin.Context) {
		RespondWithError(c, apperrors.NotFound(c.Request.URL.Path))
	})
}

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.listener = listener
	s.httpServer.Handler = h2c.NewHandler(s.Handler(), &http2.Server{
		IdleTimeout: s.config.IdleTimeout,
	})

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", logger.ErrorFields("serve", err))
		}
	}()

	s.log.Info("HTTP server started", logger.Fields("addr", listener.Addr().String()))
	return nil
}

// Stop drains in-flight requests for at most Config.ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("HTTP server shut down")
	return nil
}

// Name identifies the server in lifecycle logs.
func (s *Server) Name() string { return "http-server" }

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}
