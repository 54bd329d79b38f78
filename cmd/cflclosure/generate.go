package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cflclosure/internal/grammar"
	"cflclosure/internal/report"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "List the strings a grammar derives within the length and depth bounds",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	cmd.Flags().String("grammar", "l1", "grammar to expand (l1|l2|FILE)")
	cmd.Flags().Int("max-length", 0, "longest sentential form to expand (default from config sample_length)")
	cmd.Flags().Int("max-depth", 0, "rewrite budget per start production (default from config max_depth)")
	cmd.Flags().Int("limit", 0, "print at most N strings (0 prints all)")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	env, err := setupRun(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	name, err := cmd.Flags().GetString("grammar")
	if err != nil {
		return fmt.Errorf("failed to get grammar flag: %w", err)
	}
	g, err := resolveGrammar(name)
	if err != nil {
		return err
	}
	lim := grammar.Limits{MaxLength: env.cfg.Limits.SampleLength, MaxDepth: env.cfg.Limits.MaxDepth}
	if err := overrideInt(cmd, "max-length", &lim.MaxLength); err != nil {
		return err
	}
	if err := overrideInt(cmd, "max-depth", &lim.MaxDepth); err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("failed to get limit flag: %w", err)
	}
	if lim.MaxLength < 0 || lim.MaxDepth < 0 || limit < 0 {
		return fmt.Errorf("--max-length, --max-depth and --limit must not be negative")
	}

	idx := env.timer.Begin("generate")
	set, hit, err := env.cache.Generate(g, lim, func() grammar.Set {
		return g.GenerateContext(cmd.Context(), lim)
	})
	if err != nil {
		env.timer.End(idx, "error")
		return fmt.Errorf("generate %s: %w", g.Name(), err)
	}
	note := fmt.Sprintf("%d strings", len(set))
	if hit {
		note += ", cached"
	}
	env.timer.End(idx, note)

	strs := set.Sorted()
	if limit > 0 && limit < len(strs) {
		strs = strs[:limit]
	}
	title := fmt.Sprintf("Strings of %s (length ≤ %d, depth %d):", g.Name(), lim.MaxLength, lim.MaxDepth)
	if env.quiet {
		title = g.Name() + ":"
	}
	if err := report.Strings(cmd.OutOrStdout(), env.style, title, strs); err != nil {
		return err
	}
	if !env.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", note)
	}
	env.printTimings(cmd.ErrOrStderr())
	return nil
}

// overrideInt replaces *dst with the flag value when the flag was set.
func overrideInt(cmd *cobra.Command, name string, dst *int) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}
