package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cflclosure/internal/lang"
	"cflclosure/internal/report"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check STRING...",
		Short: "Test strings for membership in {a^n b^n c^n | n ≥ 0}",
		Long:  `Test strings for membership in {a^n b^n c^n | n ≥ 0}. Pass '' to test the empty string.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setupRun(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			strict, err := cmd.Flags().GetBool("strict")
			if err != nil {
				return fmt.Errorf("failed to get strict flag: %w", err)
			}
			verdicts := lang.Verify(args)
			if err := report.Verdicts(cmd.OutOrStdout(), env.style, verdicts); err != nil {
				return err
			}
			if !strict {
				return nil
			}
			rejected := 0
			for _, v := range verdicts {
				if !v.Member {
					rejected++
				}
			}
			if rejected > 0 {
				return fmt.Errorf("%d of %d strings are not of the form a^n b^n c^n", rejected, len(verdicts))
			}
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "exit with an error when any string is rejected")
	return cmd
}
