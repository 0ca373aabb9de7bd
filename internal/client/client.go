// Package client talks to a running Haneul server over HTTP, consuming
// the streamed query responses incrementally. It backs both the terminal
// shell and the MCP bridge.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/haneul-ai/haneul/pkg/api"
)

// dataPrefix marks a stream record; anything else on the wire is ignored.
const dataPrefix = "data: "

// Client is an HTTP client for the Haneul server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL. The timeout covers the
// whole streamed response, so it matches the LLM call budget.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Health checks the server and returns its reported state.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, err
	}
	return &health, nil
}

// StreamQuery sends a query and invokes onEvent for each stream record in
// arrival order. Blank lines and unparseable records are skipped, matching
// the forgiving line protocol. Returns after the stream closes.
func (c *Client) StreamQuery(ctx context.Context, query string, onEvent func(api.StreamEvent)) error {
	body, err := json.Marshal(api.QueryRequest{Query: query})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/query", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("query returned status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		var event api.StreamEvent
		if err := json.Unmarshal([]byte(line[len(dataPrefix):]), &event); err != nil {
			continue
		}
		onEvent(event)
	}
	return scanner.Err()
}

// Query sends a query and aggregates the stream into a single text reply:
// result contents joined by newlines, or an error for an error event.
func (c *Client) Query(ctx context.Context, query string) (string, error) {
	var results []string
	var errMsg string

	err := c.StreamQuery(ctx, query, func(event api.StreamEvent) {
		switch event.Type {
		case api.EventResult:
			results = append(results, event.Content)
		case api.EventError:
			errMsg = event.Message
		}
	})
	if err != nil {
		return "", err
	}
	if errMsg != "" {
		return "", fmt.Errorf("%s", errMsg)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no result received from server")
	}
	return strings.Join(results, "\n"), nil
}
