package views

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"waymark/internal/adapters/tui/styles"
	"waymark/internal/application"
	"waymark/internal/domain"
)

// MarksKeyMap defines key bindings for the marks view
type MarksKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Yank   key.Binding
	Filter key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var MarksKeys = MarksKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "toggle bookmark"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yank location"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter kind"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Filter selects which mark kinds the list shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterBookmarks
	FilterAutoMarks
)

func (f Filter) String() string {
	switch f {
	case FilterBookmarks:
		return "bookmarks"
	case FilterAutoMarks:
		return "automarks"
	default:
		return "all"
	}
}

// SwitchToHelpMsg asks the app to show the help view.
type SwitchToHelpMsg struct{}

// OpenMarkMsg asks the app to open a mark's file in the editor.
type OpenMarkMsg struct {
	File string
	Row  int
}

// MarksModel is the model for the mark list view. The list is the
// merged timeline, newest at the bottom, optionally filtered by kind.
type MarksModel struct {
	session *application.Session

	marks      []domain.MergedMark
	cursor     int
	filter     Filter
	width      int
	height     int
	message    string
	messageErr bool
}

// NewMarksModel creates a new marks view model
func NewMarksModel(session *application.Session) *MarksModel {
	return &MarksModel{session: session}
}

// Init initializes the marks view
func (m *MarksModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload rebuilds the merged view from the session.
func (m *MarksModel) Reload() tea.Cmd {
	return func() tea.Msg {
		return marksLoadedMsg{marks: m.session.Timeline().View()}
	}
}

type marksLoadedMsg struct {
	marks []domain.MergedMark
}

// Update handles messages for the marks view
func (m *MarksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case marksLoadedMsg:
		m.marks = msg.marks
		if m.cursor >= len(m.visible()) {
			m.cursor = max(0, len(m.visible())-1)
		}
		return m, nil

	case tea.KeyMsg:
		m.message = ""

		switch {
		case key.Matches(msg, MarksKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, MarksKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, MarksKeys.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, MarksKeys.Open):
			if mark, ok := m.selected(); ok {
				return m, func() tea.Msg {
					return OpenMarkMsg{File: mark.File, Row: mark.Row}
				}
			}
			return m, nil

		case key.Matches(msg, MarksKeys.Toggle):
			if mark, ok := m.selected(); ok {
				added, err := m.session.Bookmarks().Toggle(mark.File, mark.Row, mark.Col)
				if err != nil {
					m.setError(err)
					return m, nil
				}
				if added {
					m.message = "bookmarked"
				} else {
					m.message = "mark removed"
				}
				return m, m.Reload()
			}
			return m, nil

		case key.Matches(msg, MarksKeys.Delete):
			if mark, ok := m.selected(); ok {
				var err error
				if mark.Kind == domain.KindBookmark {
					err = m.session.Bookmarks().Remove(mark.ID)
				} else {
					err = m.session.Tracker().Remove(mark.ID)
				}
				if err != nil {
					m.setError(err)
					return m, nil
				}
				m.message = "deleted"
				return m, m.Reload()
			}
			return m, nil

		case key.Matches(msg, MarksKeys.Yank):
			if mark, ok := m.selected(); ok {
				loc := fmt.Sprintf("%s:%d", mark.File, mark.Row)
				if err := clipboard.WriteAll(loc); err != nil {
					m.setError(err)
					return m, nil
				}
				m.message = "yanked " + loc
			}
			return m, nil

		case key.Matches(msg, MarksKeys.Filter):
			m.filter = (m.filter + 1) % 3
			m.cursor = 0
			return m, nil

		case key.Matches(msg, MarksKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, MarksKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

// visible returns the marks passing the current filter.
func (m *MarksModel) visible() []domain.MergedMark {
	if m.filter == FilterAll {
		return m.marks
	}
	want := domain.KindBookmark
	if m.filter == FilterAutoMarks {
		want = domain.KindAutoMark
	}
	out := make([]domain.MergedMark, 0, len(m.marks))
	for _, mk := range m.marks {
		if mk.Kind == want {
			out = append(out, mk)
		}
	}
	return out
}

func (m *MarksModel) selected() (domain.MergedMark, bool) {
	marks := m.visible()
	if m.cursor < 0 || m.cursor >= len(marks) {
		return domain.MergedMark{}, false
	}
	return marks[m.cursor], true
}

func (m *MarksModel) setError(err error) {
	m.message = err.Error()
	m.messageErr = true
}

// View renders the marks view
func (m *MarksModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Waymark"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("showing %s", m.filter)))
	b.WriteString("\n\n")

	marks := m.visible()
	if len(marks) == 0 {
		b.WriteString(styles.MutedText.Render("no marks yet"))
		b.WriteString("\n")
	}

	for i, mark := range marks {
		b.WriteString(m.renderRow(mark, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.message != "" {
		if m.messageErr {
			b.WriteString(styles.ErrorMsg.Render(m.message))
		} else {
			b.WriteString(styles.Success.Render(m.message))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.StatusText.Render("enter open • b toggle • d delete • y yank • f filter • ? help • q quit"))

	return styles.App.Render(b.String())
}

func (m *MarksModel) renderRow(mark domain.MergedMark, selected bool) string {
	glyph := styles.GlyphAutoMark
	rowStyle := styles.RowAutoMark
	if mark.Kind == domain.KindBookmark {
		glyph = styles.GlyphBookmark
		rowStyle = styles.RowBookmark
	}

	name := shortenPath(mark.File, 48)
	pos := fmt.Sprintf("%d:%d", mark.Row, mark.Col)
	age := relativeAge(mark.SortTime)

	if selected {
		line := fmt.Sprintf("%s%-50s %8s  %s", glyph, name, pos, age)
		return styles.RowSelected.Render(line)
	}
	return rowStyle.Render(glyph+fmt.Sprintf("%-50s ", name)) +
		styles.RowPosition.Render(fmt.Sprintf("%8s", pos)) +
		styles.RowAge.Render("  "+age)
}

// shortenPath abbreviates a path to fit, preferring the trailing
// components and substituting ~ for the home directory.
func shortenPath(path string, limit int) string {
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(path, home) {
		path = "~" + path[len(home):]
	}
	if len(path) <= limit {
		return path
	}
	parts := strings.Split(path, string(filepath.Separator))
	for len(parts) > 2 && len(strings.Join(parts, "/")) > limit-2 {
		parts = parts[1:]
	}
	return "…/" + strings.Join(parts, "/")
}

// relativeAge renders an epoch-seconds stamp as a short age like "5m".
func relativeAge(sortTime float64) string {
	if sortTime <= 0 {
		return "-"
	}
	d := time.Since(time.Unix(int64(sortTime), 0))
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// SetSize updates the view dimensions
func (m *MarksModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
