package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a mark by ID",
	Long: `Delete a bookmark or automark by its ID, as shown by list or
timeline.

Examples:
  waymark-cli delete 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		s := GetSession()
		if err := s.Bookmarks().Remove(id); err == nil {
			fmt.Printf("Deleted bookmark #%d\n", id)
			return nil
		}
		if err := s.Tracker().Remove(id); err != nil {
			return fmt.Errorf("no mark with id %d", id)
		}
		fmt.Printf("Deleted automark #%d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
