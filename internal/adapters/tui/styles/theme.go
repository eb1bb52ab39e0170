package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Mark rows
	RowBookmark = lipgloss.NewStyle().
			Foreground(Secondary)

	RowAutoMark = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowPosition = lipgloss.NewStyle().
			Foreground(Warning)

	RowAge = lipgloss.NewStyle().
		Foreground(Muted)

	// Kind glyphs
	GlyphBookmark = "● "
	GlyphAutoMark = "○ "

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	// Section labels
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)
