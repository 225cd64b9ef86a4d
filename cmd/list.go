package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentic-research/randgen/internal/scheme"
	"github.com/agentic-research/randgen/internal/tree"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates and whether each can generate data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, st, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		list := sess.Canonical()
		env := scheme.NewEnv(context.Background(), list, 0)
		out := cmd.OutOrStdout()
		for i, t := range list.Templates {
			status := "ok"
			if problem := t.Validate(env); problem != nil {
				status = problem.Message
			}
			fmt.Fprintf(out, "%d\t%s\t%d schemes\t%s\n", i+1, t.Name, len(t.Schemes), status)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every template, failing on the first problem",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, st, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		list := sess.Canonical()
		if problem := list.Validate(scheme.NewEnv(context.Background(), list, 0)); problem != nil {
			return problem
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d templates are valid\n", len(list.Templates))
		return nil
	},
}

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Print the template tree with the row numbers used by move",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, st, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		out := cmd.OutOrStdout()
		for row, n := range tree.Rows(sess.Model()) {
			indent := strings.Repeat("  ", int(n.Level())-1)
			fmt.Fprintf(out, "%3d  %s%s\n", row, indent, n.Label())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rowsCmd)
}
