// Package api provides the wire types shared by the Haneul server, the
// terminal client, and the MCP bridge. These types can be imported by
// external tools that talk to the HTTP surface.
package api

// EventType tags a single record on the /api/query stream.
type EventType string

const (
	// EventStatus is an intermediate progress update.
	EventStatus EventType = "status"
	// EventResult carries the final content. At most one per stream.
	EventResult EventType = "result"
	// EventError terminates the stream with a user-facing message.
	EventError EventType = "error"
)

// StreamEvent is one record of the server-sent-event-style query stream.
// Status and error events populate Message; result events populate Content.
type StreamEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message,omitempty"`
	Content string    `json:"content,omitempty"`
}

// Status builds a status event.
func Status(message string) StreamEvent {
	return StreamEvent{Type: EventStatus, Message: message}
}

// Result builds a result event.
func Result(content string) StreamEvent {
	return StreamEvent{Type: EventResult, Content: content}
}

// Error builds an error event.
func Error(message string) StreamEvent {
	return StreamEvent{Type: EventError, Message: message}
}

// Terminal reports whether the event ends the stream.
func (e StreamEvent) Terminal() bool {
	return e.Type == EventResult || e.Type == EventError
}

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// ForecastRequest is the body of POST /api/get_forecast.
type ForecastRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AlertsRequest is the body of POST /api/get_alerts.
type AlertsRequest struct {
	State string `json:"state"`
}

// WeatherResponse is the shared response shape of the direct tool endpoints.
type WeatherResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
}

// ToolSchema describes one tool in the GET /api/tools listing, using a
// JSON-Schema-style parameter object.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolList is the body of GET /api/tools.
type ToolList struct {
	Tools []ToolSchema `json:"tools"`
}
