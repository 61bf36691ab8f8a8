// Package server is the staffdesk web console: a Gin engine that maps
// the console routes onto server-rendered views and drives the injected
// employee store.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vesaa/staffdesk/internal/intl"
	"github.com/vesaa/staffdesk/internal/store"
	"github.com/vesaa/staffdesk/internal/theme"
)

// Deps is everything the console needs; all of it is built in main.
type Deps struct {
	Store  *store.Store
	Bundle *intl.Bundle
	Logger *logrus.Logger

	// Locale is the console default language, used when the browser's
	// Accept-Language matches no catalog.
	Locale string
	// ConsoleTheme holds the console-wide default theme, consulted when a
	// browser has neither a theme cookie nor a color-scheme hint. May be nil.
	ConsoleTheme theme.Storage
	// SessionSecret seeds the flash-cookie signing key.
	SessionSecret string
	// BackendURL is only reported by /healthz.
	BackendURL string
}

// Server owns the Gin engine of the console.
type Server struct {
	deps   Deps
	engine *gin.Engine
	views  *viewSet
	flash  *flasher
	start  time.Time
}

// New builds the engine and registers every route.
func New(d Deps) (*Server, error) {
	if d.Store == nil || d.Bundle == nil {
		return nil, errors.New("server: store and bundle are required")
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	fl, err := newFlasher(d.SessionSecret)
	if err != nil {
		return nil, fmt.Errorf("flash key: %w", err)
	}

	s := &Server{
		deps:   d,
		engine: gin.New(),
		views:  newViewSet(),
		flash:  fl,
		start:  time.Now(),
	}
	s.engine.Use(gin.Recovery(), requestLogger(d.Logger), s.localizer())
	s.registerRoutes()
	return s, nil
}

// Handler exposes the engine, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.deps.Logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
