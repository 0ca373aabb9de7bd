// Package server exposes the Haneul HTTP surface.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/haneul-ai/haneul/internal/composer"
	"github.com/haneul-ai/haneul/internal/config"
)

// Server serves the health, streaming query, and direct tool endpoints.
// Requests share no mutable state: every pipeline value is owned by its
// request and discarded on completion.
type Server struct {
	cfg      *config.Config
	composer *composer.Composer
	weather  composer.WeatherGateway
	provider string
	log      *zap.Logger
}

// New creates a new server. provider is the configured LLM backend name,
// reported by the health endpoint.
func New(cfg *config.Config, comp *composer.Composer, weather composer.WeatherGateway, provider string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		composer: comp,
		weather:  weather,
		provider: provider,
		log:      log,
	}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/query", s.handleQuery)
	mux.HandleFunc("/api/get_forecast", s.handleForecast)
	mux.HandleFunc("/api/get_alerts", s.handleAlerts)
	mux.HandleFunc("/api/tools", s.handleTools)
	if s.cfg.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		// No WriteTimeout: the query stream stays open for the full
		// weather + LLM pipeline.
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info("server listening", zap.String("addr", addr), zap.String("provider", s.provider))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
