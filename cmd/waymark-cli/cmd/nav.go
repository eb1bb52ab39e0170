package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	navCount    int
	navTimeline bool
)

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Jump to an older mark",
	Long: `Jump toward older marks and open the target in $EDITOR. Starts at the
newest bookmark; with --timeline it walks the merged view across both
mark kinds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := GetSession()
		if navTimeline {
			m, err := s.Timeline().Prev(navCount)
			if err != nil {
				return err
			}
			fmt.Printf("Opened %s:%d (#%d, %s)\n", m.File, m.Row, m.ID, m.Kind)
			return nil
		}
		m, err := s.Bookmarks().Prev(navCount)
		if err != nil {
			return err
		}
		fmt.Printf("Opened %s:%d (#%d)\n", m.File, m.Row, m.ID)
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Jump to a newer mark",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := GetSession()
		if navTimeline {
			m, err := s.Timeline().Next(navCount)
			if err != nil {
				return err
			}
			fmt.Printf("Opened %s:%d (#%d, %s)\n", m.File, m.Row, m.ID, m.Kind)
			return nil
		}
		m, err := s.Bookmarks().Next(navCount)
		if err != nil {
			return err
		}
		fmt.Printf("Opened %s:%d (#%d)\n", m.File, m.Row, m.ID)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{prevCmd, nextCmd} {
		c.Flags().IntVarP(&navCount, "count", "c", 1, "number of steps")
		c.Flags().BoolVar(&navTimeline, "timeline", false, "walk the merged timeline")
		rootCmd.AddCommand(c)
	}
}
