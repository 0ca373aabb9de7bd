package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/haneul-ai/haneul/internal/weather"
	"github.com/haneul-ai/haneul/pkg/api"
)

// English sentinels for the direct tool endpoints.
const (
	forecastUnavailableMsg = "Unable to fetch forecast data for this location."
	alertsUnavailableMsg   = "Unable to fetch alerts or no alerts found."
	noActiveAlertsMsg      = "No active alerts for this state."
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:   "healthy",
		Provider: s.provider,
	})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	var req api.ForecastRequest
	if !decodeBody(w, r, &req) {
		return
	}

	text, err := s.weather.Forecast(r.Context(), req.Latitude, req.Longitude)
	if err != nil {
		s.log.Warn("forecast endpoint failed",
			zap.Float64("latitude", req.Latitude),
			zap.Float64("longitude", req.Longitude),
			zap.Error(err))
		writeJSON(w, http.StatusOK, api.WeatherResponse{
			Success: false,
			Error:   forecastUnavailableMsg,
		})
		return
	}

	writeJSON(w, http.StatusOK, api.WeatherResponse{
		Success: true,
		Data:    text,
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	var req api.AlertsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	blocks, err := s.weather.Alerts(r.Context(), req.State)
	if err != nil {
		s.log.Warn("alerts endpoint failed", zap.String("state", req.State), zap.Error(err))
		writeJSON(w, http.StatusOK, api.WeatherResponse{
			Success: false,
			Error:   alertsUnavailableMsg,
		})
		return
	}

	if len(blocks) == 0 {
		writeJSON(w, http.StatusOK, api.WeatherResponse{
			Success: true,
			Data:    noActiveAlertsMsg,
		})
		return
	}

	writeJSON(w, http.StatusOK, api.WeatherResponse{
		Success: true,
		Data:    weather.Join(blocks),
	})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.ToolList{
		Tools: []api.ToolSchema{
			{
				Name:        "get_forecast",
				Description: "Get weather forecast for a location",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"latitude":  map[string]any{"type": "number", "description": "Latitude of the location"},
						"longitude": map[string]any{"type": "number", "description": "Longitude of the location"},
					},
					"required": []string{"latitude", "longitude"},
				},
			},
			{
				Name:        "get_alerts",
				Description: "Get weather alerts for a US state",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"state": map[string]any{"type": "string", "description": "Two-letter US state code (e.g. CA, NY)"},
					},
					"required": []string{"state"},
				},
			},
		},
	})
}

// decodeBody parses a JSON request body, rejecting malformed input at the
// boundary with a 400.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
