package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cflclosure/internal/grammar"
	"cflclosure/internal/lang"
	"cflclosure/internal/report"
)

func newIntersectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intersect",
		Short: "Intersect the bounded languages of two grammars and verify the result",
		Args:  cobra.NoArgs,
		RunE:  runIntersect,
	}
	cmd.Flags().String("left", "l1", "left grammar (l1|l2|FILE)")
	cmd.Flags().String("right", "l2", "right grammar (l1|l2|FILE)")
	cmd.Flags().Int("max-length", 0, "longest sentential form to expand (default from config max_length)")
	cmd.Flags().Int("max-depth", 0, "rewrite budget per start production (default from config max_depth)")
	cmd.Flags().Int("examples", 0, "add a^n b^n c^n for n up to N (default from config examples, negative disables)")
	cmd.Flags().Int("jobs", 0, "generation goroutines (0 uses GOMAXPROCS, 1 is sequential)")
	return cmd
}

func runIntersect(cmd *cobra.Command, _ []string) error {
	env, err := setupRun(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	opts := lang.Options{
		Limits:   grammar.Limits{MaxLength: env.cfg.Limits.MaxLength, MaxDepth: env.cfg.Limits.MaxDepth},
		Examples: env.cfg.Limits.Examples,
		Cache:    env.cache,
	}
	for _, side := range []struct {
		flag string
		dst  **grammar.Grammar
	}{{"left", &opts.Left}, {"right", &opts.Right}} {
		name, err := cmd.Flags().GetString(side.flag)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", side.flag, err)
		}
		if *side.dst, err = resolveGrammar(name); err != nil {
			return err
		}
	}
	for name, dst := range map[string]*int{
		"max-length": &opts.Limits.MaxLength,
		"max-depth":  &opts.Limits.MaxDepth,
		"examples":   &opts.Examples,
		"jobs":       &opts.Jobs,
	} {
		if err := overrideInt(cmd, name, dst); err != nil {
			return err
		}
	}
	if opts.Limits.MaxLength < 0 || opts.Limits.MaxDepth < 0 {
		return fmt.Errorf("--max-length and --max-depth must not be negative")
	}

	idx := env.timer.Begin("intersect")
	in, err := lang.Intersect(cmd.Context(), opts)
	if err != nil {
		env.timer.End(idx, "error")
		return fmt.Errorf("intersect: %w", err)
	}
	env.timer.End(idx, fmt.Sprintf("%d members", len(in.Members)))

	out := cmd.OutOrStdout()
	if !env.quiet {
		title := fmt.Sprintf("%s ∩ %s from the grammars alone:", opts.Left.Name(), opts.Right.Name())
		if err := report.Strings(out, env.style, title, in.Common.Sorted()); err != nil {
			return err
		}
	}
	members := in.Members.Sorted()
	if err := report.Strings(out, env.style, "Intersection with direct examples:", members); err != nil {
		return err
	}
	if err := report.Verdicts(out, env.style, lang.Verify(members)); err != nil {
		return err
	}
	env.printTimings(cmd.ErrOrStderr())
	return nil
}
