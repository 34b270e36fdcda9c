// Package httpapi exposes the service over HTTP: the entry insert endpoint
// and the liveness probe.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/entrycounter/internal/logging"
	"github.com/dmitrijs2005/entrycounter/internal/server/config"
	"github.com/dmitrijs2005/entrycounter/internal/server/services"
	"github.com/gin-gonic/gin"
)

// EntryAdder is the part of services.EntryService the handlers need.
type EntryAdder interface {
	Add(ctx context.Context) (*services.AddResult, error)
}

type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

type HTTPServer struct {
	address string
	cfg     *config.Config
	entries EntryAdder
	logger  logging.Logger
	engine  *gin.Engine
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, es EntryAdder) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	s := &HTTPServer{
		address: cfg.ListenAddr,
		cfg:     cfg,
		entries: es,
		logger:  l.With("module", "http_server"),
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(s.accessLog(), s.recovery())

	for _, rt := range s.routes() {
		r.Handle(rt.method, rt.path, rt.handler)
	}

	s.engine = r
	return s
}

func (s *HTTPServer) routes() []route {
	return []route{
		{method: http.MethodGet, path: "/", handler: s.addEntry},
		{method: http.MethodGet, path: "/status", handler: s.status},
	}
}

// Handler returns the router, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on listen until ctx is cancelled, then shuts down gracefully
// within the configured shutdown timeout. A clean shutdown returns nil.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout())
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}

func (s *HTTPServer) shutdownTimeout() time.Duration {
	if s.cfg.ShutdownTimeout > 0 {
		return s.cfg.ShutdownTimeout
	}
	return 10 * time.Second
}
