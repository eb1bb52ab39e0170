package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <file:row[:col]>",
	Short: "Place a bookmark",
	Long: `Place a persistent bookmark at a position.

Examples:
  waymark-cli add ~/src/app/main.go:42
  waymark-cli add notes.md:7:3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, row, col, err := parseLocation(args[0])
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}

		mark, err := GetSession().Bookmarks().Add(abs, row, col)
		if err != nil {
			return err
		}
		fmt.Printf("Bookmarked %s:%d (#%d)\n", mark.File, mark.Row, mark.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
