// Package composer sequences the query pipeline and streams its events.
//
// For each request the composer drives a small state machine: emit a
// processing status, route the query, optionally fetch weather data, make
// at most one LLM call, and emit exactly one terminal event (result or
// error). Events are emitted strictly in order and the composer issues no
// concurrent sub-requests.
package composer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/haneul-ai/haneul/internal/metrics"
	"github.com/haneul-ai/haneul/internal/model"
	"github.com/haneul-ai/haneul/internal/router"
	"github.com/haneul-ai/haneul/internal/weather"
	"github.com/haneul-ai/haneul/pkg/api"
)

// Token budgets differ by call purpose: translation output is expected to
// be longer than a plain chat answer.
const (
	maxTokensChat      = 512
	maxTokensTranslate = 1024
)

// User-facing Korean strings, matching what the assistant presents.
const (
	statusProcessing   = "쿼리를 처리하고 있습니다..."
	statusFetching     = "날씨 정보를 가져오고 있습니다..."
	statusCallingModel = "AI 모델을 호출하고 있습니다..."

	// ForecastUnavailable replaces forecast text when the NWS lookup fails.
	ForecastUnavailable = "날씨 데이터를 가져올 수 없습니다."
	// AlertsUnavailable replaces alert text when the NWS lookup fails.
	AlertsUnavailable = "경보 데이터를 가져올 수 없습니다."
	// NoActiveAlerts is the success sentinel for an empty alert list.
	NoActiveAlerts = "이 지역에 활성화된 경보가 없습니다."

	errorPrefix = "오류가 발생했습니다: "
)

const chatSystemPrompt = `
You are a helpful assistant with access to weather tools.
Available tools: ['get_alerts', 'get_forecast']
When asked about weather, I will automatically call the appropriate weather tool.
답변은 한국어로 해주세요.
`

const translationSystemPrompt = `
당신은 도움이 되는 어시스턴트입니다.
다음 날씨 정보를 한국어로 번역하고, 단위를 한국에서 사용하는 단위로 변경해주세요:

1. 화씨(°F) → 섭씨(°C)로 변환
2. 마일(mph) → 킬로미터(km/h)로 변환
3. 모든 텍스트를 자연스러운 한국어로 번역
4. 날씨 상태를 한국어로 표현 (예: sunny → 맑음, cloudy → 흐림)

답변은 반드시 한국어로만 작성해주세요.
`

const translationUserPrefix = "다음 날씨 정보를 한국어로 번역하고 단위를 변환해주세요:\n\n"

// WeatherGateway is the weather capability the composer depends on.
type WeatherGateway interface {
	Forecast(ctx context.Context, latitude, longitude float64) (string, error)
	Alerts(ctx context.Context, state string) ([]string, error)
}

// EmitFunc receives each stream event in order. A non-nil return aborts
// the pipeline (the consumer has gone away).
type EmitFunc func(api.StreamEvent) error

// Composer orchestrates router, weather gateway, and LLM gateway.
type Composer struct {
	weather WeatherGateway
	llm     model.Provider
	log     *zap.Logger
}

// New creates a new composer.
func New(weather WeatherGateway, llm model.Provider, log *zap.Logger) *Composer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Composer{
		weather: weather,
		llm:     llm,
		log:     log,
	}
}

// Run processes one query, emitting status events followed by exactly one
// terminal event. Unexpected panics are converted to a terminal error
// event; the stream always ends with a terminal event unless the emitter
// itself fails.
func (c *Composer) Run(ctx context.Context, query string, emit EmitFunc) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("query pipeline panicked", zap.Any("panic", r))
			metrics.QueriesTotal.WithLabelValues(metrics.OutcomeError).Inc()
			_ = emit(api.Error(fmt.Sprintf("%s%v", errorPrefix, r)))
		}
	}()

	if err := emit(api.Status(statusProcessing)); err != nil {
		return
	}

	selection, isWeather := router.Classify(query)
	if isWeather {
		c.runWeatherPath(ctx, selection, emit)
		return
	}
	c.runChatPath(ctx, query, emit)
}

// runWeatherPath fetches weather data and translates it. A failed LLM call
// falls back to the untranslated weather text - the weather path never
// ends in an error event once routing has selected a tool.
func (c *Composer) runWeatherPath(ctx context.Context, selection router.Selection, emit EmitFunc) {
	if err := emit(api.Status(statusFetching)); err != nil {
		return
	}

	weatherText := c.fetchWeather(ctx, selection)

	final, err := c.llm.Complete(ctx, []model.Message{
		model.SystemMessage(translationSystemPrompt),
		model.UserMessage(translationUserPrefix + weatherText),
	}, maxTokensTranslate)
	if err != nil || final == "" {
		if err != nil {
			c.log.Warn("translation failed, returning untranslated text", zap.Error(err))
		}
		final = weatherText
	}

	metrics.QueriesTotal.WithLabelValues(metrics.OutcomeResult).Inc()
	_ = emit(api.Result(final))
}

// runChatPath answers a non-weather query with a single LLM call. Gateway
// failures here are terminal.
func (c *Composer) runChatPath(ctx context.Context, query string, emit EmitFunc) {
	if err := emit(api.Status(statusCallingModel)); err != nil {
		return
	}

	text, err := c.llm.Complete(ctx, []model.Message{
		model.SystemMessage(chatSystemPrompt),
		model.UserMessage(query),
	}, maxTokensChat)
	if err != nil {
		c.log.Error("chat completion failed", zap.Error(err))
		metrics.QueriesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		_ = emit(api.Error(errorPrefix + err.Error()))
		return
	}

	metrics.QueriesTotal.WithLabelValues(metrics.OutcomeResult).Inc()
	_ = emit(api.Result(text))
}

// fetchWeather invokes the selected tool and renders its text, downgrading
// every gateway failure to the fixed unavailable sentinel.
func (c *Composer) fetchWeather(ctx context.Context, selection router.Selection) string {
	switch selection.Tool {
	case router.ToolForecast:
		text, err := c.weather.Forecast(ctx, selection.Latitude, selection.Longitude)
		if err != nil {
			c.log.Warn("forecast unavailable", zap.Error(err))
			return ForecastUnavailable
		}
		return text

	case router.ToolAlerts:
		blocks, err := c.weather.Alerts(ctx, selection.State)
		if err != nil {
			c.log.Warn("alerts unavailable", zap.String("state", selection.State), zap.Error(err))
			return AlertsUnavailable
		}
		if len(blocks) == 0 {
			return NoActiveAlerts
		}
		return weather.Join(blocks)

	default:
		return ForecastUnavailable
	}
}

// ProcessQuery runs the pipeline without a stream, returning the terminal
// content. Status events are dropped; an error event becomes an error.
// Used by the in-process MCP tool surface.
func (c *Composer) ProcessQuery(ctx context.Context, query string) (string, error) {
	var content string
	var errMsg string

	c.Run(ctx, query, func(event api.StreamEvent) error {
		switch event.Type {
		case api.EventResult:
			content = event.Content
		case api.EventError:
			errMsg = event.Message
		}
		return nil
	})

	if errMsg != "" {
		return "", fmt.Errorf("%s", errMsg)
	}
	return content, nil
}
