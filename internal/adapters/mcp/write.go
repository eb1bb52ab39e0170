package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"waymark/internal/application"
)

// RegisterWriteTools adds all mutating mark tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, session *application.Session) {
	s.AddTool(addBookmarkTool(), addBookmarkHandler(session))
	s.AddTool(toggleTool(), toggleHandler(session))
	s.AddTool(deleteTool(), deleteHandler(session))
	s.AddTool(cleanTool(), cleanHandler(session))
	s.AddTool(clearTool(), clearHandler(session))
}

// --- add_bookmark ---

func addBookmarkTool() mcp.Tool {
	return mcp.NewTool("add_bookmark",
		mcp.WithDescription("Place a persistent bookmark at a position."),
		mcp.WithString("file",
			mcp.Description("Absolute path to the file"),
			mcp.Required(),
		),
		mcp.WithNumber("row",
			mcp.Description("1-based line number"),
			mcp.Required(),
		),
		mcp.WithNumber("col",
			mcp.Description("1-based column, defaults to 1"),
		),
	)
}

func addBookmarkHandler(session *application.Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")
		row := req.GetInt("row", 0)
		col := req.GetInt("col", 1)

		mark, err := session.Bookmarks().Add(file, row, col)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Bookmarked %s:%d (#%d)", mark.File, mark.Row, mark.ID)), nil
	}
}

// --- toggle_bookmark ---

func toggleTool() mcp.Tool {
	return mcp.NewTool("toggle_bookmark",
		mcp.WithDescription("Toggle marks at a position: removes any mark of either kind on the line, or places a bookmark when the line is unmarked."),
		mcp.WithString("file",
			mcp.Description("Absolute path to the file"),
			mcp.Required(),
		),
		mcp.WithNumber("row",
			mcp.Description("1-based line number"),
			mcp.Required(),
		),
	)
}

func toggleHandler(session *application.Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")
		row := req.GetInt("row", 0)

		added, err := session.Bookmarks().Toggle(file, row, 1)
		if err != nil {
			return toolError(err)
		}
		if added {
			return mcp.NewToolResultText(fmt.Sprintf("Bookmarked %s:%d", file, row)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Removed marks at %s:%d", file, row)), nil
	}
}

// --- delete_mark ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_mark",
		mcp.WithDescription("Delete a mark by its ID (see list_marks or timeline)."),
		mcp.WithNumber("id",
			mcp.Description("Mark ID"),
			mcp.Required(),
		),
	)
}

func deleteHandler(session *application.Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))

		if err := session.Bookmarks().Remove(id); err == nil {
			return mcp.NewToolResultText(fmt.Sprintf("Deleted bookmark #%d", id)), nil
		}
		if err := session.Tracker().Remove(id); err != nil {
			return toolError(fmt.Errorf("no mark with id %d", id))
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted automark #%d", id)), nil
	}
}

// --- clean ---

func cleanTool() mcp.Tool {
	return mcp.NewTool("clean",
		mcp.WithDescription("Drop marks pointing at files that no longer exist. Bookmarks on unmounted volumes are kept."),
	)
}

func cleanHandler(session *application.Session) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		books := session.Bookmarks().Clean()
		autos := session.Tracker().Purge()
		return mcp.NewToolResultText(fmt.Sprintf("Removed %d bookmarks and %d automarks", books, autos)), nil
	}
}

// --- clear_marks ---

func clearTool() mcp.Tool {
	return mcp.NewTool("clear_marks",
		mcp.WithDescription("Remove every mark of the given kind."),
		mcp.WithString("kind",
			mcp.Description("Which list: 'bookmarks' or 'automarks'"),
			mcp.Required(),
		),
	)
}

func clearHandler(session *application.Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		switch kind := req.GetString("kind", ""); kind {
		case "bookmarks":
			session.Bookmarks().Clear()
			return mcp.NewToolResultText("Cleared all bookmarks"), nil
		case "automarks":
			session.Tracker().Clear()
			return mcp.NewToolResultText("Cleared all automarks"), nil
		default:
			return toolError(fmt.Errorf("invalid kind: %s (expected bookmarks or automarks)", kind))
		}
	}
}
