// Package router provides keyword-based routing for weather queries.
//
// Classification is intentionally literal: a fixed keyword set decides
// whether a query is weather-related at all, and a fixed, ordered list of
// location phrases decides which tool fires. The declared order of the
// location rules is load-bearing - the first substring match wins.
package router

import "strings"

// Tool identifies which weather gateway operation to invoke.
type Tool string

const (
	// ToolForecast fetches a point forecast by coordinate.
	ToolForecast Tool = "get_forecast"
	// ToolAlerts fetches active alerts for a US state.
	ToolAlerts Tool = "get_alerts"
)

// Selection is the tool choice for a query. Immutable once returned.
// Forecast selections carry Latitude/Longitude; alert selections carry State.
type Selection struct {
	Tool      Tool
	Latitude  float64
	Longitude float64
	State     string
}

// Default coordinates used when no location phrase matches.
const (
	LosAngelesLat = 34.0522
	LosAngelesLon = -118.2437

	NewYorkLat = 40.7128
	NewYorkLon = -74.0060
)

// weatherKeywords gates the weather path: a query matching none of these is
// routed to the general chat path.
var weatherKeywords = []string{"weather", "forecast", "temperature", "날씨", "예보", "기온"}

// locationRule maps a set of location phrases to a tool selection.
type locationRule struct {
	phrases   []string
	selection Selection
}

// locationRules is scanned in order; keep "los angeles" ahead of
// "california" so queries mentioning both route to the LA forecast, while
// "california" alone still routes to the CA alerts.
var locationRules = []locationRule{
	{
		phrases:   []string{"los angeles", "la"},
		selection: Selection{Tool: ToolForecast, Latitude: LosAngelesLat, Longitude: LosAngelesLon},
	},
	{
		phrases:   []string{"new york", "뉴욕", "ny"},
		selection: Selection{Tool: ToolForecast, Latitude: NewYorkLat, Longitude: NewYorkLon},
	},
	{
		phrases:   []string{"texas", "텍사스", "tx"},
		selection: Selection{Tool: ToolAlerts, State: "TX"},
	},
	{
		phrases:   []string{"california", "캘리포니아", "ca"},
		selection: Selection{Tool: ToolAlerts, State: "CA"},
	},
}

// defaultSelection is the Los Angeles forecast, used when the query is
// weather-related but names no recognized location.
var defaultSelection = Selection{Tool: ToolForecast, Latitude: LosAngelesLat, Longitude: LosAngelesLon}

// Classify inspects a natural-language query and returns the tool selection
// for it. The second return is false when the query is not weather-related.
// Classify has no side effects and never fails.
func Classify(query string) (Selection, bool) {
	q := strings.ToLower(query)

	if !containsAny(q, weatherKeywords) {
		return Selection{}, false
	}

	for _, rule := range locationRules {
		if containsAny(q, rule.phrases) {
			return rule.selection, true
		}
	}

	return defaultSelection, true
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
