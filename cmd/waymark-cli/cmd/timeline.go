package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"waymark/internal/domain"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the merged mark timeline",
	Long: `Show bookmarks and automarks on one chronological axis, oldest
first. When both kinds sit on the same line, only the bookmark is
shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, m := range GetSession().Timeline().View() {
			kind := "auto"
			if m.Kind == domain.KindBookmark {
				kind = "book"
			}
			fmt.Printf("#%-4d [%s] %s:%d:%d  %s\n",
				m.ID, kind, m.File, m.Row, m.Col,
				time.Unix(int64(m.SortTime), 0).Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}
