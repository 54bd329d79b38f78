package main

import (
	"github.com/spf13/cobra"

	"cflclosure/internal/report"
)

func newProofCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proof",
		Short: "Print the pumping-lemma argument that a^n b^n c^n is not context-free",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setupRun(cmd)
			if err != nil {
				return err
			}
			defer env.close()
			return report.Proof(cmd.OutOrStdout(), env.style)
		},
	}
}
