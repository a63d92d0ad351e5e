package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/vocab-drill/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "restore [file]",
		Short: "Restore a snapshot produced by export",
		Long:  "Replace words, records and preferences with a JSON snapshot read from a file or stdin.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runRestore,
	}

	RootCmd.AddCommand(cmd)
}

func runRestore(cmd *cobra.Command, args []string) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open file", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		exitErr("read snapshot", err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		exitErr("parse json", err)
	}
	if snap.Preferences != nil {
		if err := snap.Preferences.Validate(); err != nil {
			exitErr("snapshot", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	words, records, err := s.Restore(cmd.Context(), snap)
	if err != nil {
		exitErr("restore", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"words":%d,"records":%d}`+"\n", words, records)
}
