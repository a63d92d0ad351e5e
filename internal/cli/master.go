package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "master <word-id>",
		Short: "Mark a word as mastered",
		Args:  cobra.ExactArgs(1),
		Run:   runMaster,
	}

	RootCmd.AddCommand(cmd)
}

func runMaster(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sess, err := newSession(s)
	if err != nil {
		exitErr("engine", err)
	}
	rec, err := sess.Master(cmd.Context(), args[0])
	if err != nil {
		exitErr("master", err)
	}
	printJSON(cmd, rec)
}
