package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"lessoncast/config"
	"lessoncast/tui"
)

func main() {
	_ = godotenv.Load()

	chapter := flag.Int("chapter", 1, "chapter number to preview")
	server := flag.String("server", "", "content API base URL")
	flag.Parse()

	baseURL := *server
	if baseURL == "" {
		baseURL = config.GetEnvOrDefault("LESSONCAST_API", "http://localhost:8080")
	}

	model := tui.NewModel(tui.NewClient(baseURL), *chapter)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("preview player error: %v", err)
	}
}
