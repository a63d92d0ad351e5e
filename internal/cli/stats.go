package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study progress and database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), cfg.DBPath, time.Now())
	if err != nil {
		exitErr("stats", err)
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(),
			"words %d  new %d  due %d  learning %d  mastered %d  favorites %d\n",
			stats.Words, stats.New, stats.Due, stats.Learning, stats.Mastered, stats.Favorites)
		if stats.Orphans > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "orphaned records %d\n", stats.Orphans)
		}
		return
	}
	printJSON(cmd, stats)
}
