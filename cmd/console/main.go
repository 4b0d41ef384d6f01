package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ConsoleConfig holds the console's connection settings, read from the
// environment so the same binary can point at a local or staged server.
type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

func main() {
	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:3000"),
		Timeout:    30 * time.Second,
	}

	client := &http.Client{Timeout: cfg.Timeout}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to %s. Is the server running?\n", cfg.APIBaseURL)
		os.Exit(1)
	}

	fmt.Print("Describe the world to generate (blank for a random seed): ")
	reader := bufio.NewReader(os.Stdin)
	prompt, _ := reader.ReadString('\n')
	prompt = strings.TrimSpace(prompt)

	sessionID, opening, err := initWorld(client, cfg.APIBaseURL, prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate world: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(cfg, client, sessionID, opening),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
