// Package cli implements the vocab-drill CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/vocab-drill/internal/config"
	"github.com/rcliao/vocab-drill/internal/session"
	"github.com/rcliao/vocab-drill/internal/srs"
	"github.com/rcliao/vocab-drill/internal/store"
)

var (
	dbPath     string
	formatFlag string
	configPath string

	cfg    *config.Config
	logger = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "vocab-drill",
	Short: "Spaced-repetition drill for Japanese vocabulary",
	Long: "Import a word list from a spreadsheet, then study it in small batches.\n" +
		"Due reviews come first, then new words. SQLite-backed, single binary.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $VOCAB_DRILL_DB or ~/.vocab-drill/vocab.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $VOCAB_DRILL_CONFIG or ~/.vocab-drill/config.yaml)")
}

func setup(cmd *cobra.Command, args []string) error {
	if formatFlag != "json" && formatFlag != "text" {
		return fmt.Errorf("unknown format %q (valid: json, text)", formatFlag)
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	cfg = c

	l, err := config.NewLogger(c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}
	logger = l.Named("vocab-drill")
	zap.ReplaceGlobals(logger)
	return nil
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DBPath)
}

func newEngine() (*srs.Engine, error) {
	iv, err := cfg.Intervals()
	if err != nil {
		return nil, err
	}
	return srs.NewEngine(iv, nil)
}

func newSession(st store.Store) (*session.Session, error) {
	engine, err := newEngine()
	if err != nil {
		return nil, err
	}
	return session.New(st, engine,
		session.WithCooldown(cfg.Cooldown),
		session.WithLogger(logger),
	), nil
}

func textOutput() bool { return formatFlag == "text" }

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func exitErr(msg string, err error) {
	logger.Debug("command failed", zap.String("step", msg), zap.Error(err))
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
