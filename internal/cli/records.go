package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/vocab-drill/internal/model"
	"github.com/rcliao/vocab-drill/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List words with their learning records",
		Run:   runRecords,
	}

	cmd.Flags().StringP("sort", "s", "", "Order: original, alphabetical or showCount (default: the recordSortMode preference)")
	cmd.Flags().Bool("favorites", false, "Only favorites")
	cmd.Flags().String("status", "", "Filter: new, learning or mastered")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 = all)")

	RootCmd.AddCommand(cmd)
}

func runRecords(cmd *cobra.Command, args []string) {
	sortMode, _ := cmd.Flags().GetString("sort")
	favorites, _ := cmd.Flags().GetBool("favorites")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	prefs, err := s.Preferences(cmd.Context())
	if err != nil {
		exitErr("load preferences", err)
	}
	mode := prefs.RecordSortMode
	if sortMode != "" {
		mode = model.SortMode(sortMode)
		if !model.ValidSortModes[mode] {
			exitErr("records", fmt.Errorf("unknown sort mode %q", sortMode))
		}
	}

	rows, err := s.ListRecords(cmd.Context(), store.ListParams{
		Sort:          mode,
		FavoritesOnly: favorites,
		Status:        status,
		Limit:         limit,
	})
	if err != nil {
		exitErr("records", err)
	}

	if textOutput() {
		renderRows(cmd.OutOrStdout(), rows, prefs.VisibleFields)
		return
	}
	if rows == nil {
		rows = []store.RecordRow{}
	}
	printJSON(cmd, rows)
}
