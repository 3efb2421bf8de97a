// Package server assembles the gin engine, wires every handler and exposes
// the configured *http.Server.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/events"
	"inkwell/internal/quote"
	"inkwell/internal/storage"
)

// Deps are the external resources the server is built on. Cache, Events and
// Storage may be nil; the features behind them are then disabled.
type Deps struct {
	DB      database.Service
	Cache   cache.Cache
	Events  events.Publisher
	Storage storage.Service
	Quotes  quote.Fetcher
	Logger  *slog.Logger
}

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	deps   Deps
	tokens *auth.TokenManager
}

func New(cfg *config.Config, deps Deps) *Server {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}
	if deps.Events == nil {
		deps.Events = events.Noop{}
	}
	if deps.Quotes == nil {
		deps.Quotes = quote.NewClient(quote.Config{
			PrimaryURL:  cfg.Quote.PrimaryURL,
			FallbackURL: cfg.Quote.FallbackURL,
			Timeout:     cfg.Quote.Timeout,
		}, nil)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		deps:   deps,
		tokens: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL),
	}
}

// HTTPServer returns the listener-ready server with timeouts from config.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       s.cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
