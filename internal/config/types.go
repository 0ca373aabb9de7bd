// Package config provides configuration types for Haneul.
package config

// Config represents the main Haneul configuration. It is constructed once
// at process start and passed by reference into the router, gateways, and
// composer; core logic never reads ambient global state.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	LLM     LLMConfig     `toml:"llm"`
	Weather WeatherConfig `toml:"weather"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LLMConfig selects and configures the text-completion backend.
type LLMConfig struct {
	Provider string       `toml:"provider"` // "ollama" or "groq"
	Ollama   OllamaConfig `toml:"ollama"`
	Groq     GroqConfig   `toml:"groq"`
}

// OllamaConfig configures the local generate-style backend.
type OllamaConfig struct {
	URL   string `toml:"url"`
	Model string `toml:"model"`
}

// GroqConfig configures the hosted chat-completions backend.
type GroqConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// WeatherConfig configures the NWS gateway.
type WeatherConfig struct {
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, console
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}
