// Command haneul-bridge exposes the same MCP tools as haneul-mcp, but
// backed by a running HTTP server instead of in-process gateways. Each
// tool is phrased as a natural-language query and sent through the
// server's streaming endpoint; the joined result text is returned to the
// MCP caller.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/haneul-ai/haneul/internal/client"
	"github.com/haneul-ai/haneul/internal/logging"
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

type bridge struct {
	client *client.Client
	log    *zap.Logger
}

// forward sends a query to the HTTP server and returns the aggregated
// reply as tool text. Server-side errors come back as text too - the
// bridge never escalates them into protocol errors.
func (b *bridge) forward(ctx context.Context, query string) *mcp.CallToolResult {
	text, err := b.client.Query(ctx, query)
	if err != nil {
		b.log.Warn("bridge query failed", zap.Error(err))
		text = fmt.Sprintf("오류: %v", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func (b *bridge) getForecast(ctx context.Context, _ *mcp.CallToolRequest, in forecastInput) (*mcp.CallToolResult, any, error) {
	query := fmt.Sprintf("위도 %v, 경도 %v 위치의 날씨 예보를 알려줘", in.Latitude, in.Longitude)
	return b.forward(ctx, query), nil, nil
}

func (b *bridge) getAlerts(ctx context.Context, _ *mcp.CallToolRequest, in alertsInput) (*mcp.CallToolResult, any, error) {
	query := fmt.Sprintf("%s 주의 날씨 경보를 알려줘", in.State)
	return b.forward(ctx, query), nil, nil
}

func (b *bridge) processQuery(ctx context.Context, _ *mcp.CallToolRequest, in queryInput) (*mcp.CallToolResult, any, error) {
	return b.forward(ctx, in.Query), nil, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8000", "HTTP server URL")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logging.New(*logLevel, "console")
	defer log.Sync()

	b := &bridge{
		client: client.New(*serverURL),
		log:    log,
	}

	srv := mcp.NewServer(&mcp.Implementation{Name: "weather-mcp-bridge", Version: serverVersion}, nil)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_forecast",
		Description: "Get weather forecast for a location",
	}, b.getForecast)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_alerts",
		Description: "Get weather alerts for a US state",
	}, b.getAlerts)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "process_weather_query",
		Description: "Process a natural language weather query with AI assistance",
	}, b.processQuery)

	log.Info("MCP bridge starting", zap.String("server_url", *serverURL))

	if err := srv.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		fmt.Fprintf(os.Stderr, "MCP bridge exited: %v\n", err)
		os.Exit(1)
	}
}
