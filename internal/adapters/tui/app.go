package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"waymark/internal/adapters/editor"
	"waymark/internal/adapters/tui/views"
	"waymark/internal/application"
	"waymark/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewMarks ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	session *application.Session
	editor  *editor.Opener
	journal ports.Journal

	state ViewState
	marks *views.MarksModel
	help  *views.HelpModel

	watch <-chan ports.JournalEvent

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(session *application.Session, ed *editor.Opener, journal ports.Journal) *App {
	return &App{
		session: session,
		editor:  ed,
		journal: journal,
		state:   ViewMarks,
		marks:   views.NewMarksModel(session),
		help:    views.NewHelpModel(),
	}
}

type journalChangedMsg struct{}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.marks.Init()}
	if a.journal != nil {
		if ch, err := a.journal.Watch(context.Background()); err == nil {
			a.watch = ch
			cmds = append(cmds, a.waitForJournal())
		}
	}
	return tea.Batch(cmds...)
}

// waitForJournal blocks on the next external journal change.
func (a *App) waitForJournal() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-a.watch; !ok {
			return nil
		}
		return journalChangedMsg{}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.marks.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case journalChangedMsg:
		// Another process replaced the journal; pick up its bookmarks.
		if err := a.session.Load(); err == nil {
			return a, tea.Batch(a.marks.Reload(), a.waitForJournal())
		}
		return a, a.waitForJournal()

	// View switching messages
	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToMarksMsg:
		a.state = ViewMarks
		return a, a.marks.Reload()

	case views.OpenMarkMsg:
		return a, a.openEditor(msg.File, msg.Row)

	case editorFinishedMsg:
		return a, a.marks.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewMarks:
		_, cmd = a.marks.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string, row int) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.CommandAt(path, row)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.marks.View()
	}
}
