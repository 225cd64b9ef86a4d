package cmd

import (
	"fmt"
	"os"

	"github.com/agentic-research/randgen/internal/config"
	"github.com/agentic-research/randgen/internal/logging"
	"github.com/agentic-research/randgen/internal/mcpserver"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve templates as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, st, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		return mcpserver.New(sess, Version, logging.Named("mcp")).ServeStdio()
	},
}

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file and template store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		if err := os.WriteFile(configPath, config.Encode(cfg), 0o644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		sess, st, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		if err := sess.Apply(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", configPath, cfg.Store)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
}
