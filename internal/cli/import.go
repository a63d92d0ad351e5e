package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/vocab-drill/internal/importer"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a word list from xlsx, csv or tsv",
		Long: "Import a word list. The header row and the kanji/kana/type/meaning columns are\n" +
			"detected automatically; override any column by its header text.",
		Args: cobra.ExactArgs(1),
		Run:  runImport,
	}

	cmd.Flags().String("kanji", "", "Header of the kanji column")
	cmd.Flags().String("kana", "", "Header of the kana column")
	cmd.Flags().String("type", "", "Header of the part-of-speech column")
	cmd.Flags().String("meaning", "", "Header of the meaning column")
	cmd.Flags().Bool("reset", false, "Clear all learning records")
	cmd.Flags().Bool("fill-kana", false, "Fill blank kana cells from a morphological analyzer")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var m importer.Mapping
	m.Kanji, _ = cmd.Flags().GetString("kanji")
	m.Kana, _ = cmd.Flags().GetString("kana")
	m.Type, _ = cmd.Flags().GetString("type")
	m.Meaning, _ = cmd.Flags().GetString("meaning")
	reset, _ := cmd.Flags().GetBool("reset")
	fillKana, _ := cmd.Flags().GetBool("fill-kana")

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		exitErr("open file", err)
	}
	defer f.Close()

	opts := importer.Options{Mapping: m}
	if fillKana {
		if opts.Filler, err = importer.NewReadingFiller(); err != nil {
			exitErr("load dictionary", err)
		}
	}

	res, err := importer.Import(f, filepath.Base(path), opts)
	if err != nil {
		exitErr("import", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.ReplaceWords(ctx, res.Words, reset); err != nil {
		exitErr("save words", err)
	}

	prefs, err := s.Preferences(ctx)
	if err != nil {
		exitErr("load preferences", err)
	}
	prefs.LastFilename = filepath.Base(path)
	if err := s.SavePreferences(ctx, prefs); err != nil {
		exitErr("save preferences", err)
	}

	logger.Info("imported word list",
		zap.String("file", prefs.LastFilename),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
		zap.Bool("reset", reset),
	)

	printJSON(cmd, struct {
		OK    bool   `json:"ok"`
		File  string `json:"file"`
		Reset bool   `json:"reset"`
		*importer.Result
	}{true, prefs.LastFilename, reset, res})
}
