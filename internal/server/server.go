// Package server exposes one quiz session over HTTP as JSON. All requests
// share a single controller; fetches run in the background and are applied
// through the controller's stale-response guard.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/littlemath/internal/metrics"
	"github.com/abhisek/littlemath/internal/quiz"
)

const shutdownTimeout = 5 * time.Second

// Pinger checks a dependency for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	// AllowedOrigins lists CORS origins. Empty or "*" allows all.
	AllowedOrigins []string

	// Metrics adds request instrumentation and the /metrics route.
	Metrics *metrics.Metrics

	// DB is pinged by /api/health when set.
	DB Pinger

	Logger *zap.Logger
}

// Server is the HTTP rendering boundary for a quiz.Controller.
type Server struct {
	ctrl   *quiz.Controller
	opts   Options
	logger *zap.Logger
	engine *gin.Engine

	// ctx scopes background fetches; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds the router. It fails only on an invalid CORS configuration.
func New(ctrl *quiz.Controller, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		ctrl:   ctrl,
		opts:   opts,
		logger: logger.Named("server"),
		ctx:    ctx,
		cancel: cancel,
	}

	corsCfg := corsConfig(opts.AllowedOrigins)
	if err := corsCfg.Validate(); err != nil {
		cancel()
		return nil, fmt.Errorf("cors: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	r.Use(cors.New(corsCfg))
	s.routes(r)
	s.engine = r
	return s, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (s *Server) routes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/health", s.health)
	api.GET("/categories", s.categories)
	api.GET("/state", s.state)
	api.POST("/category", s.selectCategory)
	api.POST("/answer", s.submitAnswer)
	api.POST("/explanation", s.intent(quiz.RevealExplanation{}))
	api.POST("/next", s.intent(quiz.RequestNext{}))
	api.POST("/retry", s.intent(quiz.Retry{}))
	api.POST("/reset", s.intent(quiz.Reset{}))

	if s.opts.Metrics != nil {
		r.GET("/metrics", s.opts.Metrics.GinHandler())
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// dispatch applies in and starts the resulting fetch in the background.
func (s *Server) dispatch(in quiz.Intent) {
	f := s.ctrl.Dispatch(in)
	if f == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.ctrl.Dispatch(s.ctrl.Run(s.ctx, f))
	}()
}

// Wait blocks until background fetches have been applied.
func (s *Server) Wait() {
	s.wg.Wait()
}

// Close cancels outstanding fetches and waits for them to finish.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.Close()
		if ok {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func requestLogger(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
