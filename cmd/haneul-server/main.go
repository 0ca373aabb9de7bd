// Command haneul-server runs the weather assistant HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/haneul-ai/haneul/internal/composer"
	"github.com/haneul-ai/haneul/internal/config"
	"github.com/haneul-ai/haneul/internal/logging"
	"github.com/haneul-ai/haneul/internal/model"
	"github.com/haneul-ai/haneul/internal/server"
	"github.com/haneul-ai/haneul/internal/weather"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	provider, err := model.NewProvider(&cfg.LLM, log.Named("llm"))
	if err != nil {
		log.Fatal("failed to build LLM provider", zap.Error(err))
	}

	nws := weather.NewClient(&weather.Config{
		BaseURL:   cfg.Weather.BaseURL,
		UserAgent: cfg.Weather.UserAgent,
		Timeout:   weather.DefaultConfig().Timeout,
	}, log.Named("weather"))

	comp := composer.New(nws, provider, log.Named("composer"))
	srv := server.New(cfg, comp, nws, provider.Name(), log.Named("server"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
