// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the scrape-and-generate pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yakirbe/lyricdeck/internal/images"
	"github.com/yakirbe/lyricdeck/internal/scrape"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

// Server wires the HTTP API: song search and deck generation.
type Server struct {
	source  scrape.Source
	imgs    *images.Fetcher
	cfg     types.ServerConfig
	deckCfg types.DeckConfig
	version string
	logger  *slog.Logger
}

// Options holds the collaborators a Server needs.
type Options struct {
	// Source scrapes the lyric site.
	Source scrape.Source

	// Images fetches slide backgrounds; nil disables background images.
	Images *images.Fetcher

	// Deck controls generated deck rendering.
	Deck types.DeckConfig

	// Version is reported on the root endpoint.
	Version string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// New constructs a Server.
func New(cfg types.ServerConfig, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		source:  opts.Source,
		imgs:    opts.Images,
		cfg:     cfg,
		deckCfg: opts.Deck,
		version: opts.Version,
		logger:  logger,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	return chain(s.logger, mux)
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP API listening", "addr", s.cfg.Addr)
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

	timeout := s.cfg.ShutdownTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
