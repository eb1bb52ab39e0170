package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"waymark/internal/adapters/editor"
	"waymark/internal/adapters/host"
	"waymark/internal/adapters/ignore"
	"waymark/internal/adapters/journal"
	mcpadapter "waymark/internal/adapters/mcp"
	"waymark/internal/application"
	"waymark/internal/config"
)

func main() {
	dataFlag := flag.String("data", config.DataDir(), "path to the data directory")
	flag.Parse()

	cfg, err := config.Load(*dataFlag)
	if err != nil {
		log.Fatalf("waymark-mcp: %v", err)
	}

	j := journal.New(
		config.JournalPath(cfg.DataDir),
		time.Duration(cfg.SaveDebounceMS)*time.Millisecond,
		slog.Default(),
	)
	h := host.NewHeadless(editor.NewOpener())

	session, err := application.Open(cfg, h, ignore.NewGlobs(cfg.Ignore), j)
	if err != nil {
		log.Fatalf("waymark-mcp: %v", err)
	}
	defer session.Close()

	mcpServer := server.NewMCPServer(
		"waymark-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, session)
	mcpadapter.RegisterWriteTools(mcpServer, session)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("waymark-mcp: %v", err)
	}
}
