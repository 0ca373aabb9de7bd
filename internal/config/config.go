// Package config handles Haneul configuration loading and management.
package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Provider names accepted by LLMConfig.Provider.
const (
	ProviderOllama = "ollama"
	ProviderGroq   = "groq"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		LLM: LLMConfig{
			Provider: ProviderOllama,
			Ollama: OllamaConfig{
				URL:   "http://localhost:11434",
				Model: "llama3:8b",
			},
			Groq: GroqConfig{
				BaseURL: "https://api.groq.com/openai/v1",
				Model:   "llama-3.1-8b-instant",
			},
		},
		Weather: WeatherConfig{
			BaseURL:   "https://api.weather.gov",
			UserAgent: "weather-app/1.0",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, returns defaults. Environment variables
// (loaded from .env when present) override file values.
func Load(configPath string) (*Config, error) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overrides config values from the environment.
func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "HANEUL_HOST")
	setInt(&cfg.Server.Port, "HANEUL_PORT")

	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	setString(&cfg.LLM.Ollama.URL, "OLLAMA_URL")
	setString(&cfg.LLM.Ollama.Model, "OLLAMA_MODEL")
	setString(&cfg.LLM.Groq.APIKey, "GROQ_API_KEY")
	setString(&cfg.LLM.Groq.BaseURL, "GROQ_BASE_URL")
	setString(&cfg.LLM.Groq.Model, "GROQ_MODEL")

	setString(&cfg.Weather.BaseURL, "NWS_API_BASE")
	setString(&cfg.Weather.UserAgent, "NWS_USER_AGENT")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")

	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = v == "true" || v == "1"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
