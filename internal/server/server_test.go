package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneul-ai/haneul/internal/composer"
	"github.com/haneul-ai/haneul/internal/config"
	"github.com/haneul-ai/haneul/internal/model"
	"github.com/haneul-ai/haneul/pkg/api"
)

type fakeGateway struct {
	forecastText string
	forecastErr  error
	alertBlocks  []string
	alertsErr    error
}

func (f *fakeGateway) Forecast(context.Context, float64, float64) (string, error) {
	return f.forecastText, f.forecastErr
}

func (f *fakeGateway) Alerts(context.Context, string) ([]string, error) {
	return f.alertBlocks, f.alertsErr
}

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Complete(context.Context, []model.Message, int) (string, error) {
	return f.reply, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

func newTestServer(t *testing.T, gw *fakeGateway, llm *fakeProvider) *httptest.Server {
	t.Helper()
	comp := composer.New(gw, llm, nil)
	s := New(config.Default(), comp, gw, llm.Name(), nil)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", strings.NewReader(string(payload)))
	require.NoError(t, err)
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeGateway{}, &fakeProvider{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var health api.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "fake", health.Provider)
}

func TestForecastEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeGateway{forecastText: "Tonight: clear"}, &fakeProvider{})

	resp := postJSON(t, srv.URL+"/api/get_forecast", api.ForecastRequest{Latitude: 34.0522, Longitude: -118.2437})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.WeatherResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "Tonight: clear", body.Data)
}

// Gateway failures surface as success=false with a 200, never a 5xx.
func TestForecastEndpointUnavailable(t *testing.T) {
	srv := newTestServer(t, &fakeGateway{forecastErr: fmt.Errorf("nws down")}, &fakeProvider{})

	resp := postJSON(t, srv.URL+"/api/get_forecast", api.ForecastRequest{Latitude: 1, Longitude: 2})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.WeatherResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, forecastUnavailableMsg, body.Error)
}

func TestAlertsEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		gateway  *fakeGateway
		success  bool
		wantData string
		wantErr  string
	}{
		{
			name:     "active alerts",
			gateway:  &fakeGateway{alertBlocks: []string{"Event: Flood", "Event: Heat"}},
			success:  true,
			wantData: "Event: Flood\n---\nEvent: Heat",
		},
		{
			name:     "no active alerts",
			gateway:  &fakeGateway{alertBlocks: []string{}},
			success:  true,
			wantData: noActiveAlertsMsg,
		},
		{
			name:    "gateway failure",
			gateway: &fakeGateway{alertsErr: fmt.Errorf("nws down")},
			success: false,
			wantErr: alertsUnavailableMsg,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.gateway, &fakeProvider{})

			resp := postJSON(t, srv.URL+"/api/get_alerts", api.AlertsRequest{State: "TX"})
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)

			var body api.WeatherResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.success, body.Success)
			assert.Equal(t, tt.wantData, body.Data)
			assert.Equal(t, tt.wantErr, body.Error)
		})
	}
}

func TestToolsEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeGateway{}, &fakeProvider{})

	resp, err := http.Get(srv.URL + "/api/tools")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list api.ToolList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Tools, 2)
	assert.Equal(t, "get_forecast", list.Tools[0].Name)
	assert.Equal(t, "get_alerts", list.Tools[1].Name)

	params := list.Tools[0].Parameters
	assert.Equal(t, "object", params["type"])
	props, ok := params["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "latitude")
	assert.Contains(t, props, "longitude")
}

func TestBodyValidation(t *testing.T) {
	srv := newTestServer(t, &fakeGateway{}, &fakeProvider{})

	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/get_forecast")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/query", "application/json", strings.NewReader("{not json"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestQueryStream(t *testing.T) {
	gw := &fakeGateway{forecastText: "Tonight: clear"}
	llm := &fakeProvider{reply: "오늘 밤: 맑음"}
	srv := newTestServer(t, gw, llm)

	resp := postJSON(t, srv.URL+"/api/query", api.QueryRequest{Query: "weather in los angeles"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := readStream(t, resp.Body)
	require.Len(t, events, 3)
	assert.Equal(t, api.EventStatus, events[0].Type)
	assert.Equal(t, api.EventStatus, events[1].Type)
	assert.Equal(t, api.EventResult, events[2].Type)
	assert.Equal(t, "오늘 밤: 맑음", events[2].Content)
}

func TestQueryStreamChatError(t *testing.T) {
	srv := newTestServer(t, &fakeGateway{}, &fakeProvider{err: fmt.Errorf("backend unreachable")})

	resp := postJSON(t, srv.URL+"/api/query", api.QueryRequest{Query: "tell me a joke"})
	defer resp.Body.Close()

	events := readStream(t, resp.Body)
	require.Len(t, events, 3)
	assert.Equal(t, api.EventError, events[2].Type)
	assert.Contains(t, events[2].Message, "backend unreachable")
}

// Metrics stay off the mux unless enabled in config.
func TestMetricsDisabled(t *testing.T) {
	srv := newTestServer(t, &fakeGateway{}, &fakeProvider{})

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func readStream(t *testing.T, body io.Reader) []api.StreamEvent {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)

	var events []api.StreamEvent
	for _, line := range strings.Split(string(raw), "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var event api.StreamEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event))
		events = append(events, event)
	}
	return events
}
