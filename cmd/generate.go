package cmd

import (
	"fmt"
	"time"

	"github.com/agentic-research/randgen/internal/random"
	"github.com/spf13/cobra"
)

var (
	genCount   int
	genSeed    uint64
	genTimeout time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate [template]",
	Short: "Generate random values from a template, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("timeout") {
			cfg.TimeoutMS = int(genTimeout / time.Millisecond)
		}
		sess, st, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		t := sess.Canonical().TemplateByName(args[0])
		if t == nil {
			return fmt.Errorf("no template named %q", args[0])
		}

		count := cfg.Count
		if cmd.Flags().Changed("count") {
			count = genCount
		}
		if count < 0 {
			return fmt.Errorf("count must be at least 0, got %d", count)
		}
		seed := genSeed
		if seed == 0 {
			seed = uint64(cfg.Seed)
		}
		if seed == 0 {
			seed = random.NewRandom().Seed()
		}

		values, err := sess.Generate(cmd.Context(), t.UUID, seed, count)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, v := range values {
			fmt.Fprintln(out, v)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 0, "Number of values (default from config)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "Seed for reproducible output (0 uses the config seed, then a random one)")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 0, "Abandon generation after this long (default from config)")
	rootCmd.AddCommand(generateCmd)
}
