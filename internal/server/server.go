// Package server provides the HTTP REST API for the job matching service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Liam-Hayes8/Job-Matcher/internal/aggregate"
	"github.com/Liam-Hayes8/Job-Matcher/internal/config"
	"github.com/Liam-Hayes8/Job-Matcher/internal/embedding"
	"github.com/Liam-Hayes8/Job-Matcher/internal/server/middleware"
)

// Server is the HTTP server around one Aggregator.
type Server struct {
	httpServer     *http.Server
	aggregator     *aggregate.Aggregator
	embedder       embedding.Provider
	validate       *validator.Validate
	logger         *zap.Logger
	requestTimeout time.Duration
	jwtSecret      string
}

// Deps are the collaborators the server needs.
type Deps struct {
	Config     *config.Config
	Aggregator *aggregate.Aggregator
	Embedder   embedding.Provider
	Logger     *zap.Logger
}

// New creates a server. When the config carries a JWT secret, every /api
// route requires a valid bearer token.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		aggregator:     deps.Aggregator,
		embedder:       deps.Embedder,
		validate:       validator.New(),
		logger:         logger,
		requestTimeout: time.Duration(deps.Config.RequestTimeoutSeconds) * time.Second,
		jwtSecret:      deps.Config.JWTSecret,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the route table. Exposed for handler tests.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/v1/jobs/live", s.handleLiveJobs)
	api.HandleFunc("POST /api/v1/jobs/refresh", s.handleRefresh)
	api.HandleFunc("GET /api/v1/jobs/{id}", s.handleGetJob)

	var apiHandler http.Handler = api
	if s.jwtSecret != "" {
		apiHandler = middleware.Auth(s.jwtSecret)(api)
	}
	mux.Handle("/api/", apiHandler)

	return mux
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
