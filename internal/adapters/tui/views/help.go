package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"waymark/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// SwitchToMarksMsg asks the app to return to the mark list.
type SwitchToMarksMsg struct{}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToMarksMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Waymark Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Position marks across your files"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("Enter", "Open mark in $EDITOR"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpLine("b", "Toggle bookmark on the line"))
	b.WriteString(helpLine("d", "Delete mark"))
	b.WriteString(helpLine("y", "Yank file:row to clipboard"))
	b.WriteString(helpLine("f", "Cycle filter (all/bookmarks/automarks)"))
	b.WriteString(helpLine("r", "Reload"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Marks"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  " + styles.GlyphBookmark + "bookmark — yours, persisted"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  " + styles.GlyphAutoMark + "automark — recorded for you, this session only"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
