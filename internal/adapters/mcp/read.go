package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"waymark/internal/application"
	"waymark/internal/domain"
)

// RegisterReadTools adds all read-only mark tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, session *application.Session) {
	s.AddTool(listTool(), listHandler(session))
	s.AddTool(timelineTool(), timelineHandler(session))
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_marks",
		mcp.WithDescription("List position marks. kind selects bookmarks (persistent, user-placed) or automarks (session-only, recorded automatically)."),
		mcp.WithString("kind",
			mcp.Description("Which list: 'bookmarks' or 'automarks'. Omit for both."),
		),
	)
}

func listHandler(session *application.Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind := req.GetString("kind", "")

		var sb strings.Builder
		if kind == "" || kind == "bookmarks" {
			books := session.Bookmarks().Marks()
			fmt.Fprintf(&sb, "bookmarks (%d, newest first):\n", len(books))
			for _, m := range books {
				fmt.Fprintf(&sb, "  #%d  %s:%d:%d  %s\n",
					m.ID, m.File, m.Row, m.Col, time.Unix(m.Stamp, 0).Format(time.RFC3339))
			}
		}
		if kind == "" || kind == "automarks" {
			autos := session.Tracker().Marks()
			fmt.Fprintf(&sb, "automarks (%d, oldest first):\n", len(autos))
			for _, m := range autos {
				fmt.Fprintf(&sb, "  #%d  %s:%d:%d\n", m.ID, m.File, m.Row, m.Col)
			}
		}
		if kind != "" && kind != "bookmarks" && kind != "automarks" {
			return toolError(fmt.Errorf("invalid kind: %s (expected bookmarks or automarks)", kind))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- timeline ---

func timelineTool() mcp.Tool {
	return mcp.NewTool("timeline",
		mcp.WithDescription("Show the merged chronological timeline of bookmarks and automarks, oldest first."),
	)
}

func timelineHandler(session *application.Session) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		view := session.Timeline().View()
		if len(view) == 0 {
			return mcp.NewToolResultText("No marks."), nil
		}
		var sb strings.Builder
		for _, m := range view {
			glyph := "auto"
			if m.Kind == domain.KindBookmark {
				glyph = "book"
			}
			fmt.Fprintf(&sb, "#%d  [%s]  %s:%d:%d  %s\n",
				m.ID, glyph, m.File, m.Row, m.Col,
				time.Unix(int64(m.SortTime), 0).Format(time.RFC3339))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
