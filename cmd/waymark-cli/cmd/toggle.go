package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <file:row>",
	Short: "Toggle marks on a line",
	Long: `Remove every mark of either kind on the line, or place a bookmark
when the line is unmarked.`,
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

		added, err := GetSession().Bookmarks().Toggle(abs, row, col)
		if err != nil {
			return err
		}
		if added {
			fmt.Printf("Bookmarked %s:%d\n", abs, row)
		} else {
			fmt.Printf("Removed marks at %s:%d\n", abs, row)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
