package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyNonWeatherQuery(t *testing.T) {
	queries := []string{
		"hello there",
		"write me a poem",
		"안녕하세요",
		"",
	}

	for _, q := range queries {
		_, isWeather := Classify(q)
		assert.False(t, isWeather, "query %q should not be weather-related", q)
	}
}

func TestClassifyDefaultLocation(t *testing.T) {
	sel, isWeather := Classify("what is the weather like today")

	require.True(t, isWeather)
	assert.Equal(t, ToolForecast, sel.Tool)
	assert.Equal(t, LosAngelesLat, sel.Latitude)
	assert.Equal(t, LosAngelesLon, sel.Longitude)
}

func TestClassifyForecastLocations(t *testing.T) {
	tests := []struct {
		name  string
		query string
		lat   float64
		lon   float64
	}{
		{"los angeles english", "weather in los angeles", LosAngelesLat, LosAngelesLon},
		{"new york english", "new york forecast please", NewYorkLat, NewYorkLon},
		{"new york korean", "뉴욕 날씨 알려줘", NewYorkLat, NewYorkLon},
		{"uppercase input", "WEATHER IN NEW YORK", NewYorkLat, NewYorkLon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, isWeather := Classify(tt.query)

			require.True(t, isWeather)
			assert.Equal(t, ToolForecast, sel.Tool)
			assert.Equal(t, tt.lat, sel.Latitude)
			assert.Equal(t, tt.lon, sel.Longitude)
			assert.Empty(t, sel.State)
		})
	}
}

func TestClassifyAlertLocations(t *testing.T) {
	tests := []struct {
		name  string
		query string
		state string
	}{
		{"texas english", "weather alerts in texas", "TX"},
		{"texas korean", "텍사스 기온 어때", "TX"},
		{"california english", "california weather alerts", "CA"},
		{"california korean", "캘리포니아 날씨 경보", "CA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, isWeather := Classify(tt.query)

			require.True(t, isWeather)
			assert.Equal(t, ToolAlerts, sel.Tool)
			assert.Equal(t, tt.state, sel.State)
		})
	}
}

// A query naming both Los Angeles and California routes to the LA forecast:
// the earlier rule wins regardless of phrase order in the query.
func TestClassifyRuleOrderPrecedence(t *testing.T) {
	sel, isWeather := Classify("weather in los angeles, california")

	require.True(t, isWeather)
	assert.Equal(t, ToolForecast, sel.Tool)
	assert.Equal(t, LosAngelesLat, sel.Latitude)
}

// A location mention without any weather keyword is still a chat query.
func TestClassifyLocationWithoutKeyword(t *testing.T) {
	_, isWeather := Classify("tell me about los angeles")
	assert.False(t, isWeather)
}
