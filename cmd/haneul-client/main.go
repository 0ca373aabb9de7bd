// Command haneul-client is an interactive terminal shell for the weather
// assistant. It streams events from the server and renders them as they
// arrive, so status lines show up before the final answer.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haneul-ai/haneul/internal/client"
	"github.com/haneul-ai/haneul/pkg/api"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func render(event api.StreamEvent) {
	switch event.Type {
	case api.EventStatus:
		fmt.Println(statusStyle.Render("[상태] " + event.Message))
	case api.EventResult:
		fmt.Println(resultStyle.Render("[결과]"))
		fmt.Println(resultStyle.Render(event.Content))
	case api.EventError:
		fmt.Println(errorStyle.Render("[오류] " + event.Message))
	}
}

func main() {
	serverURL := flag.String("url", "http://localhost:8000", "HTTP server URL")
	flag.Parse()

	c := client.New(*serverURL)
	ctx := context.Background()

	fmt.Println(titleStyle.Render("Haneul Weather Assistant"))

	health, err := c.Health(ctx)
	if err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Cannot reach server at %s: %v", *serverURL, err)))
		os.Exit(1)
	}
	fmt.Println(hintStyle.Render(fmt.Sprintf("Connected (provider: %s)", health.Provider)))
	fmt.Println(hintStyle.Render("Try asking about weather in Los Angeles, New York, or Texas!"))
	fmt.Println(hintStyle.Render("Type 'quit' to exit."))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("> ") + " ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "quit" || query == "exit" {
			break
		}

		if err := c.StreamQuery(ctx, query, render); err != nil {
			fmt.Println(errorStyle.Render("[오류] " + err.Error()))
		}
		fmt.Println()
	}
}
