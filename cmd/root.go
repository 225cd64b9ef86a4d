package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/agentic-research/randgen/internal/config"
	"github.com/agentic-research/randgen/internal/logging"
	"github.com/agentic-research/randgen/internal/session"
	"github.com/agentic-research/randgen/internal/store"
	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

var (
	configPath string
	storePath  string
	verbose    bool

	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to HCL configuration")
	rootCmd.PersistentFlags().StringVarP(&storePath, "store", "s", "", "Template store (.json file or .db SQLite database); overrides the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

var rootCmd = &cobra.Command{
	Use:   "randgen",
	Short: "randgen: template-driven random data generator",
	Long: `randgen generates random integers, decimals, strings, words and UUIDs
from user-defined templates. Templates are concatenations of schemes, may
reference each other and are kept in a JSON file or SQLite database.

Examples:
  randgen list                     # Show templates and their status
  randgen generate Word -n 5       # Five random words
  randgen import records.json      # Infer a template from sample records
  randgen serve                    # Expose templates as MCP tools`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if storePath != "" {
			loaded.Store = storePath
		}
		level := loaded.Log.Level
		if verbose {
			level = "debug"
		}
		if err := logging.Initialize(level, loaded.Log.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openSession opens the configured store and a session over it. The caller
// closes the returned store.
func openSession(ctx context.Context) (*session.Session, store.Store, error) {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("open store %s: %w", cfg.Store, err)
	}
	sess, err := session.Open(ctx, st,
		session.WithTimeout(cfg.Timeout()),
		session.WithLogger(logging.Named("session")),
	)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return sess, st, nil
}
