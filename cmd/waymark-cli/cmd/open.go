package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [index]",
	Short: "Open a bookmark in $EDITOR",
	Long: `Open the i-th bookmark (1-based, newest first) at its recorded line.
Defaults to the newest bookmark.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		i := 1
		if len(args) == 1 {
			var err error
			if i, err = strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
		}

		m, err := GetSession().Bookmarks().JumpTo(i)
		if err != nil {
			return err
		}
		fmt.Printf("Opened %s:%d (#%d)\n", m.File, m.Row, m.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
