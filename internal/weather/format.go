package weather

import (
	"fmt"
	"strings"
)

// formatPeriod renders one forecast period as a text block, mirroring the
// name / temperature+unit / wind / detail layout the assistant presents.
func formatPeriod(p forecastPeriod) string {
	return fmt.Sprintf("\n%s:\nTemperature: %d°%s\nWind: %s %s\nForecast: %s\n",
		p.Name, p.Temperature, p.TemperatureUnit, p.WindSpeed, p.WindDirection, p.DetailedForecast)
}

// FormatAlert renders one alert feature's properties as a text block.
// Missing properties fall back to "Unknown", except description and
// instructions which carry their own placeholder text.
func FormatAlert(props map[string]any) string {
	return fmt.Sprintf("\nEvent: %s\nArea: %s\nSeverity: %s\nDescription: %s\nInstructions: %s\n",
		stringProp(props, "event", "Unknown"),
		stringProp(props, "areaDesc", "Unknown"),
		stringProp(props, "severity", "Unknown"),
		stringProp(props, "description", "No description available"),
		stringProp(props, "instruction", "No specific instructions provided"),
	)
}

// Join concatenates formatted text blocks with the standard separator.
func Join(blocks []string) string {
	return strings.Join(blocks, Separator)
}

func stringProp(props map[string]any, key, fallback string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
