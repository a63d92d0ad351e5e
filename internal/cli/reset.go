package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all learning progress",
		Long:  "Delete every learning record. The word list and preferences are kept.",
		Run:   runReset,
	}

	cmd.Flags().Bool("yes", false, "Confirm the reset")

	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		exitErr("reset", errors.New("refusing to clear progress without --yes"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.ResetRecords(cmd.Context()); err != nil {
		exitErr("reset", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
}
