package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cflclosure/internal/diag"
	"cflclosure/internal/grammar"
	"cflclosure/internal/lang"
	"cflclosure/internal/report"
)

const maxLintDiagnostics = 100

func newGrammarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar [l1|l2|FILE]",
		Short: "Print a grammar and its lint diagnostics",
		Long:  "Print the rules of a grammar and report undefined, unreachable or unproductive non-terminals. Without an argument both L1 and L2 are shown. Exits non-zero when a grammar has lint errors.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setupRun(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			names := []string{"l1", "l2"}
			if len(args) == 1 {
				names = args
			}
			var failed []string
			for _, name := range names {
				g, err := resolveGrammar(name)
				if err != nil {
					return err
				}
				bag := diag.NewBag(maxLintDiagnostics)
				grammar.Lint(g, diag.BagReporter{Bag: bag})
				bag.Dedup()
				bag.Sort()
				if err := report.Grammar(cmd.OutOrStdout(), env.style, grammarLabel(name), g, bag); err != nil {
					return err
				}
				if bag.HasErrors() {
					failed = append(failed, g.Name())
				}
			}
			if len(failed) > 0 {
				return fmt.Errorf("lint errors in %s", strings.Join(failed, ", "))
			}
			return nil
		},
	}
}

// resolveGrammar maps l1 and l2 to the built-in grammars and anything else
// to a TOML grammar file.
func resolveGrammar(name string) (*grammar.Grammar, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "l1":
		return lang.L1(), nil
	case "l2":
		return lang.L2(), nil
	case "":
		return nil, fmt.Errorf("empty grammar name (expected l1, l2 or a file)")
	}
	return grammar.LoadFile(name)
}

func grammarLabel(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "l1", "l2":
		return strings.ToUpper(name)
	}
	return "G"
}
