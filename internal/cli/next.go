package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next batch of words",
		Long:  "Select the next batch (due reviews first, then new words) and count each word as viewed.",
		Run:   runNext,
	}

	cmd.Flags().IntP("count", "c", 0, "Batch size (default: the displayCount preference)")

	RootCmd.AddCommand(cmd)
}

func runNext(cmd *cobra.Command, args []string) {
	count, _ := cmd.Flags().GetInt("count")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sess, err := newSession(s)
	if err != nil {
		exitErr("engine", err)
	}
	cards, err := sess.Refresh(cmd.Context(), count)
	if err != nil {
		exitErr("next", err)
	}

	if textOutput() {
		prefs, err := s.Preferences(cmd.Context())
		if err != nil {
			exitErr("load preferences", err)
		}
		renderCards(cmd.OutOrStdout(), cards, prefs.VisibleFields)
		return
	}
	printJSON(cmd, cards)
}
