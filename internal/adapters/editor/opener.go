package editor

import (
	"fmt"
	"os"
	"os/exec"
)

// Opener launches the user's preferred editor at a mark's position.
type Opener struct{}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{}
}

// OpenAt opens a file at the given 1-based row in the user's editor.
func (o *Opener) OpenAt(path string, row int) error {
	cmd, err := o.CommandAt(path, row)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// CommandAt returns an exec.Cmd for opening a file at a row.
// This is useful for integrating with bubbletea's ExecProcess.
// The +line convention is understood by the vi family, nano, and kak.
func (o *Opener) CommandAt(path string, row int) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	var cmd *exec.Cmd
	if row > 0 {
		cmd = exec.Command(editor, fmt.Sprintf("+%d", row), path)
	} else {
		cmd = exec.Command(editor, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	// Check $EDITOR first
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano", "code"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
