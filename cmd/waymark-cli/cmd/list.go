package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [bookmarks|automarks]",
	Short: "List marks",
	Long: `List bookmarks or automarks.

Examples:
  waymark-cli list bookmarks
  waymark-cli list automarks`,
}

var listBookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List all bookmarks, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, m := range GetSession().Bookmarks().Marks() {
			fmt.Printf("#%-4d %s:%d:%d  %s\n",
				m.ID, m.File, m.Row, m.Col, time.Unix(m.Stamp, 0).Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var listAutoMarksCmd = &cobra.Command{
	Use:   "automarks",
	Short: "List all automarks, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, m := range GetSession().Tracker().Marks() {
			fmt.Printf("#%-4d %s:%d:%d\n", m.ID, m.File, m.Row, m.Col)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listBookmarksCmd)
	listCmd.AddCommand(listAutoMarksCmd)
}
