package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"waymark/internal/adapters/editor"
	"waymark/internal/adapters/host"
	"waymark/internal/adapters/ignore"
	"waymark/internal/adapters/journal"
	"waymark/internal/adapters/tui"
	"waymark/internal/application"
	"waymark/internal/config"
)

func main() {
	cfg, err := config.Load(config.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize adapters
	j := journal.New(
		config.JournalPath(cfg.DataDir),
		time.Duration(cfg.SaveDebounceMS)*time.Millisecond,
		slog.Default(),
	)
	editorOpener := editor.NewOpener()
	h := host.NewHeadless(editorOpener)

	session, err := application.Open(cfg, h, ignore.NewGlobs(cfg.Ignore), j)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	// Create and run TUI app
	app := tui.NewApp(session, editorOpener, j)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
