package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cflclosure/internal/version"
)

// newRootCmd builds the command tree. Without a subcommand the root runs the
// whole demonstration.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cflclosure",
		Short: "Show that context-free languages are not closed under intersection",
		Long: `cflclosure builds two context-free grammars, L1 = {a^i b^j c^k | i = j} and
L2 = {a^i b^j c^k | j = k}, intersects their bounded languages and checks that
every common string has the form a^n b^n c^n, a language the pumping lemma
rules out as context-free.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDemo,
	}
	root.Version = version.Version

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newIntersectCmd())
	root.AddCommand(newProofCmd())
	root.AddCommand(newGrammarCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("trace", "", "write trace events to PATH (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson); auto picks ndjson for .ndjson/.jsonl paths")
	flags.String("ui", "auto", "progress UI (auto|on|off)")
	flags.Bool("cache", false, "cache generated string sets on disk")
	flags.String("config", "", "path to cflclosure.toml (default: search upwards)")
	flags.String("cpu-profile", "", "write a CPU profile to PATH")
	flags.String("mem-profile", "", "write a heap profile to PATH on exit")
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("error:", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
