// Package server exposes bylaw validation and storage over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/bylaw"
	"github.com/reoring/bylawkit/config"
	echomw "github.com/reoring/bylawkit/middleware/echo"
	"github.com/reoring/bylawkit/store"
)

// Options wires a Server. Store is required; the rest have defaults.
type Options struct {
	Store     store.Store
	Validator *bylaw.Validator
	Logger    *zap.Logger
	Parse     bylawkit.ParseOpt
	// Registry receives the server's collectors. A fresh registry with the
	// Go and process collectors is used when nil.
	Registry *prometheus.Registry
}

// Server is the HTTP front of a bylaw store.
type Server struct {
	e         *echo.Echo
	store     store.Store
	validator *bylaw.Validator
	log       *zap.Logger
	parse     bylawkit.ParseOpt
	metrics   *metrics
}

// New builds the router. It panics when o.Store is nil.
func New(o Options) *Server {
	if o.Store == nil {
		panic("server: nil store")
	}
	if o.Validator == nil {
		o.Validator = bylaw.NewValidator()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Parse == (bylawkit.ParseOpt{}) {
		o.Parse = bylawkit.DefaultParseOpt()
	}
	if o.Registry == nil {
		o.Registry = prometheus.NewRegistry()
		o.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	s := &Server{
		e:         echo.New(),
		store:     o.Store,
		validator: o.Validator,
		log:       o.Logger,
		parse:     o.Parse,
		metrics:   newMetrics(o.Registry),
	}
	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.JSONSerializer = goJSONSerializer{}
	s.e.HTTPErrorHandler = s.handleError
	s.e.Use(s.requestID, s.accessLog, emw.RecoverWithConfig(emw.RecoverConfig{
		LogErrorFunc: s.logPanic,
	}))
	s.routes(o.Registry)
	return s
}

func (s *Server) routes(reg *prometheus.Registry) {
	decode := echomw.DecodeJSON(s.parse)

	s.e.GET("/healthz", s.healthz)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	api := s.e.Group("/api/v1")
	api.GET("/municipalities", s.listBylaws)
	api.GET("/municipalities/:id/bylaw", s.getBylaw)
	api.POST("/municipalities/:id/bylaw", s.createBylaw, decode)
	api.PUT("/municipalities/:id/bylaw", s.updateBylaw, decode)
	api.POST("/validate", s.dryRun, decode)
	api.GET("/enums", s.enums)
	api.GET("/schema/bylaw", s.schema)
}

// Handler returns the router for use with an http.Server or httptest.
func (s *Server) Handler() http.Handler { return s.e }

// Run serves on cfg.Addr until ctx is done, then shuts down within
// cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
