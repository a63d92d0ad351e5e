package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/vocab-drill/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or update preferences",
		Long:  "Show preferences. Any flag given is merged into the stored preferences first.",
		Run:   runPrefs,
	}

	cmd.Flags().IntP("count", "c", 0, "Words per batch (1-5)")
	cmd.Flags().String("fields", "", "Visible fields, comma-separated: kanji,kana,type,meaning")
	cmd.Flags().StringP("sort", "s", "", "Record order: original, alphabetical or showCount")

	RootCmd.AddCommand(cmd)
}

func runPrefs(cmd *cobra.Command, args []string) {
	count, _ := cmd.Flags().GetInt("count")
	fieldsStr, _ := cmd.Flags().GetString("fields")
	sortMode, _ := cmd.Flags().GetString("sort")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	prefs, err := s.Preferences(cmd.Context())
	if err != nil {
		exitErr("load preferences", err)
	}

	patch := model.Preferences{DisplayCount: count, RecordSortMode: model.SortMode(sortMode)}
	if cmd.Flags().Changed("fields") {
		patch.VisibleFields = []string{}
		for _, f := range strings.Split(fieldsStr, ",") {
			if f = strings.TrimSpace(f); f != "" {
				patch.VisibleFields = append(patch.VisibleFields, f)
			}
		}
	}

	if count != 0 || sortMode != "" || patch.VisibleFields != nil {
		prefs = prefs.Merge(patch)
		if err := prefs.Validate(); err != nil {
			exitErr("preferences", err)
		}
		if err := s.SavePreferences(cmd.Context(), prefs); err != nil {
			exitErr("save preferences", err)
		}
	}

	printJSON(cmd, prefs)
}
