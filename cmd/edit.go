package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentic-research/randgen/internal/importer"
	"github.com/agentic-research/randgen/internal/logging"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move [from-row] [to-row]",
	Short: "Move a template or scheme to another row and save",
	Long: `Move relocates the node at from-row to to-row, using the rows printed by
"randgen rows". Templates only move onto template rows. A scheme moved onto a
template row moving down becomes that template's first scheme; moving up it
becomes the last scheme of the template above.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid from-row %q: %w", args[0], err)
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid to-row %q: %w", args[1], err)
		}

		sess, st, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		if !sess.Model().CanMove(from, to) {
			return fmt.Errorf("cannot move row %d to row %d", from, to)
		}
		if err := sess.Model().Move(from, to); err != nil {
			return err
		}
		return sess.Apply(cmd.Context())
	},
}

var (
	importSelector string
	importName     string
)

var importCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Import templates from a snapshot or infer one from sample records",
	Long: `Import reads a JSON document and selects objects with a JSONPath
expression. Objects shaped like saved templates are imported as-is; any other
objects are treated as sample records and a template producing similar
records is inferred. Names that are already taken get a numeric suffix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		name := importName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		templates, err := importer.Import(data, importer.Options{Selector: importSelector, Name: name})
		if err != nil {
			return err
		}

		sess, st, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		names := importer.Merge(sess.Working(), templates)
		sess.Model().Reload(sess.Working())
		if err := sess.Apply(cmd.Context()); err != nil {
			return err
		}
		logging.Named("import").Infow("imported templates", "file", args[0], "count", len(names))
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSelector, "selector", importer.DefaultSelector, "JSONPath selecting templates or sample records")
	importCmd.Flags().StringVar(&importName, "name", "", "Name of an inferred template (default: file name)")
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(importCmd)
}
