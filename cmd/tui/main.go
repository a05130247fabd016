package main

import (
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"todolist/client"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}

	baseURL := os.Getenv("TODO_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	prefs := &client.FileKV{Path: filepath.Join(home, ".todolist.json")}

	ctrl := client.NewController(client.NewAPIClient(baseURL))
	m := client.NewTUIModel(ctrl, prefs)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
