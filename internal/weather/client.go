// Package weather provides the National Weather Service gateway.
//
// The gateway wraps two read-only NWS lookups - point forecasts and active
// state alerts - and renders them as human-readable text blocks. Every
// failure mode (transport error, non-2xx status, missing JSON field) is
// collapsed into a single unavailable error; callers choose the
// user-facing sentinel string for their surface. No retries.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/haneul-ai/haneul/internal/errors"
	"github.com/haneul-ai/haneul/internal/metrics"
)

// Separator joins formatted forecast periods and alert blocks.
const Separator = "\n---\n"

// maxForecastPeriods caps how many periods a forecast renders.
const maxForecastPeriods = 5

// Config configures the NWS client.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// DefaultConfig returns the default NWS configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "https://api.weather.gov",
		UserAgent: "weather-app/1.0",
		Timeout:   30 * time.Second,
	}
}

// Client calls the National Weather Service REST API.
type Client struct {
	cfg    *Config
	client *http.Client
	log    *zap.Logger
}

// NewClient creates a new NWS client.
func NewClient(cfg *Config, log *zap.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// ============================================================
// NWS response shapes
// ============================================================

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		// Pointer distinguishes a missing periods field (unavailable)
		// from an upstream forecast with zero periods.
		Periods *[]forecastPeriod `json:"periods"`
	} `json:"properties"`
}

type forecastPeriod struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	DetailedForecast string `json:"detailedForecast"`
}

type alertsResponse struct {
	// Pointer distinguishes a missing features field (unavailable) from
	// an empty feature list (success, no active alerts).
	Features *[]alertFeature `json:"features"`
}

type alertFeature struct {
	Properties map[string]any `json:"properties"`
}

// ============================================================
// Operations
// ============================================================

// Forecast fetches and formats the forecast for a coordinate. The points
// lookup and the forecast fetch are two sequential GETs, each with its own
// timeout. Only the first five periods are rendered, in upstream order.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (string, error) {
	pointsURL := fmt.Sprintf("%s/points/%v,%v", c.cfg.BaseURL, latitude, longitude)

	var points pointsResponse
	if err := c.get(ctx, pointsURL, "points", &points); err != nil {
		return "", err
	}
	if points.Properties.Forecast == "" {
		return "", apperrors.Upstream(apperrors.CodeWeatherUnavailable, "points response missing forecast URL")
	}

	var forecast forecastResponse
	if err := c.get(ctx, points.Properties.Forecast, "forecast", &forecast); err != nil {
		return "", err
	}
	if forecast.Properties.Periods == nil {
		return "", apperrors.Upstream(apperrors.CodeWeatherUnavailable, "forecast response missing periods")
	}

	periods := *forecast.Properties.Periods
	if len(periods) > maxForecastPeriods {
		periods = periods[:maxForecastPeriods]
	}

	blocks := make([]string, 0, len(periods))
	for _, p := range periods {
		blocks = append(blocks, formatPeriod(p))
	}

	c.log.Debug("forecast fetched",
		zap.Float64("latitude", latitude),
		zap.Float64("longitude", longitude),
		zap.Int("periods", len(periods)))

	return Join(blocks), nil
}

// Alerts fetches active alerts for a US state and formats each one. A nil
// error with an empty slice means the call succeeded and no alerts are
// active - callers must not conflate that with the unavailable case.
func (c *Client) Alerts(ctx context.Context, state string) ([]string, error) {
	url := fmt.Sprintf("%s/alerts/active/area/%s", c.cfg.BaseURL, state)

	var alerts alertsResponse
	if err := c.get(ctx, url, "alerts", &alerts); err != nil {
		return nil, err
	}
	if alerts.Features == nil {
		return nil, apperrors.Upstream(apperrors.CodeWeatherUnavailable, "alerts response missing features")
	}

	blocks := make([]string, 0, len(*alerts.Features))
	for _, f := range *alerts.Features {
		blocks = append(blocks, FormatAlert(f.Properties))
	}

	c.log.Debug("alerts fetched", zap.String("state", state), zap.Int("count", len(blocks)))
	return blocks, nil
}

// get performs one NWS GET and decodes the body into out.
func (c *Client) get(ctx context.Context, url, operation string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.NWSRequestsTotal.WithLabelValues(operation, metrics.StatusError).Inc()
		return apperrors.Wrap(err, apperrors.CodeWeatherUnavailable, "failed to create NWS request", apperrors.CategoryUpstream)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.NWSRequestsTotal.WithLabelValues(operation, metrics.StatusError).Inc()
		c.log.Warn("NWS request failed", zap.String("url", url), zap.Error(err))
		return apperrors.Wrap(err, apperrors.CodeWeatherUnavailable, "NWS request failed", apperrors.CategoryUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.NWSRequestsTotal.WithLabelValues(operation, metrics.StatusError).Inc()
		c.log.Warn("NWS returned error status", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return apperrors.Upstream(apperrors.CodeWeatherUnavailable, fmt.Sprintf("NWS returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.NWSRequestsTotal.WithLabelValues(operation, metrics.StatusError).Inc()
		return apperrors.Wrap(err, apperrors.CodeWeatherUnavailable, "failed to decode NWS response", apperrors.CategoryUpstream)
	}

	metrics.NWSRequestsTotal.WithLabelValues(operation, metrics.StatusOK).Inc()
	return nil
}
