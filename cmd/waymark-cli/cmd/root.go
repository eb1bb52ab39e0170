package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"waymark/internal/adapters/editor"
	"waymark/internal/adapters/host"
	"waymark/internal/adapters/ignore"
	"waymark/internal/adapters/journal"
	"waymark/internal/application"
	"waymark/internal/config"
)

var (
	dataDir string
	session *application.Session
)

var rootCmd = &cobra.Command{
	Use:   "waymark-cli",
	Short: "CLI for managing waymark position marks",
	Long: `waymark-cli inspects and edits the marks waymark keeps for your files:
persistent bookmarks and the merged timeline they share with
session automarks.

Bookmarks live in a JSON journal under the data directory and are
written atomically, so it is safe to run this while an editor
session is open.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		cfg, err := config.Load(dataDir)
		if err != nil {
			return err
		}
		j := journal.New(
			config.JournalPath(cfg.DataDir),
			time.Duration(cfg.SaveDebounceMS)*time.Millisecond,
			slog.Default(),
		)
		h := host.NewHeadless(editor.NewOpener())
		session, err = application.Open(cfg, h, ignore.NewGlobs(cfg.Ignore), j)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if session == nil {
			return nil
		}
		return session.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", config.DataDir(), "path to the data directory")
}

// GetSession returns the initialized session
func GetSession() *application.Session {
	return session
}

// parseLocation splits "file:row" or "file:row:col" into its parts.
func parseLocation(arg string) (file string, row, col int, err error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 {
		return "", 0, 0, fmt.Errorf("invalid location %q (expected FILE:ROW[:COL])", arg)
	}
	col = 1
	if len(parts) >= 3 {
		col, err = strconv.Atoi(parts[len(parts)-1])
		if err == nil {
			row, err = strconv.Atoi(parts[len(parts)-2])
			if err == nil {
				file = strings.Join(parts[:len(parts)-2], ":")
				return file, row, col, nil
			}
		}
	}
	row, err = strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid location %q (expected FILE:ROW[:COL])", arg)
	}
	file = strings.Join(parts[:len(parts)-1], ":")
	return file, row, 1, nil
}
