package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "fav <word-id>",
		Aliases: []string{"favorite"},
		Short:   "Toggle a word's favorite flag",
		Args:    cobra.ExactArgs(1),
		Run:     runFav,
	}

	RootCmd.AddCommand(cmd)
}

func runFav(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sess, err := newSession(s)
	if err != nil {
		exitErr("engine", err)
	}
	rec, err := sess.ToggleFavorite(cmd.Context(), args[0])
	if err != nil {
		exitErr("favorite", err)
	}
	printJSON(cmd, rec)
}
