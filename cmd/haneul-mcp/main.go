// Command haneul-mcp exposes the weather tools over the model context
// protocol on stdio, for MCP-capable clients such as editors. The
// get_forecast and get_alerts tools hit the NWS gateway directly;
// process_weather_query runs the full assistant pipeline in-process.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/haneul-ai/haneul/internal/composer"
	"github.com/haneul-ai/haneul/internal/config"
	"github.com/haneul-ai/haneul/internal/logging"
	"github.com/haneul-ai/haneul/internal/model"
	"github.com/haneul-ai/haneul/internal/weather"
)

const serverVersion = "1.0.0"

type forecastInput struct {
	Latitude  float64 `json:"latitude" jsonschema:"Latitude of the location"`
	Longitude float64 `json:"longitude" jsonschema:"Longitude of the location"`
}

type alertsInput struct {
	State string `json:"state" jsonschema:"Two-letter US state code (e.g. CA, NY)"`
}

type queryInput struct {
	Query string `json:"query" jsonschema:"Natural language weather query (Korean or English)"`
}

type toolset struct {
	weather  *weather.Client
	composer *composer.Composer
}

func (t *toolset) getForecast(ctx context.Context, _ *mcp.CallToolRequest, in forecastInput) (*mcp.CallToolResult, any, error) {
	text, err := t.weather.Forecast(ctx, in.Latitude, in.Longitude)
	if err != nil {
		text = "Unable to fetch forecast data."
	}
	return textResult(text), nil, nil
}

func (t *toolset) getAlerts(ctx context.Context, _ *mcp.CallToolRequest, in alertsInput) (*mcp.CallToolResult, any, error) {
	blocks, err := t.weather.Alerts(ctx, in.State)
	if err != nil {
		return textResult("Unable to fetch alerts data."), nil, nil
	}
	if len(blocks) == 0 {
		return textResult(fmt.Sprintf("No active alerts for %s.", in.State)), nil, nil
	}
	return textResult(weather.Join(blocks)), nil, nil
}

func (t *toolset) processQuery(ctx context.Context, _ *mcp.CallToolRequest, in queryInput) (*mcp.CallToolResult, any, error) {
	text, err := t.composer.ProcessQuery(ctx, in.Query)
	if err != nil {
		// Tool callers get the user-facing message as plain text, not
		// a protocol error.
		return textResult(err.Error()), nil, nil
	}
	return textResult(text), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout belongs to the MCP transport; logs must go to stderr only,
	// which zap's default error output already does for console format.
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

	tools := &toolset{
		weather:  nws,
		composer: composer.New(nws, provider, log.Named("composer")),
	}

	srv := mcp.NewServer(&mcp.Implementation{Name: "weather-mcp", Version: serverVersion}, nil)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_forecast",
		Description: "Get weather forecast for a location",
	}, tools.getForecast)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_alerts",
		Description: "Get weather alerts for a US state",
	}, tools.getAlerts)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "process_weather_query",
		Description: "Process a natural language weather query with AI assistance",
	}, tools.processQuery)

	log.Info("MCP server starting", zap.String("provider", provider.Name()))

	if err := srv.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal("MCP server exited", zap.Error(err))
	}
}
