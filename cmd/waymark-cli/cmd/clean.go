package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop marks whose files are gone",
	Long: `Remove bookmarks pointing at deleted files. A bookmark whose whole
parent directory is missing is kept: its volume may just be
unmounted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed := GetSession().Bookmarks().Clean()
		fmt.Printf("Removed %d bookmarks\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
