package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cflclosure/internal/pipeline"
	"cflclosure/internal/report"
)

// runDemo prints the proof, runs the demonstration pipeline and prints the
// report. It is the root command's action.
func runDemo(cmd *cobra.Command, _ []string) error {
	env, err := setupRun(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	mode, err := uiModeFlag(cmd)
	if err != nil {
		return err
	}

	req := env.cfg.Request()
	req.Cache = env.cache
	req.Timer = env.timer

	out := cmd.OutOrStdout()
	var res pipeline.Result
	if !env.quiet && shouldUseTUI(mode, out) {
		res, err = runWithUI(cmd.Context(), out, "demonstration", &req)
	} else {
		res, err = pipeline.Run(cmd.Context(), &req)
	}
	if err != nil {
		return fmt.Errorf("demonstration failed: %w", err)
	}

	if env.quiet {
		if err := report.Demonstration(out, env.style, res); err != nil {
			return err
		}
		if err := report.Summary(out, env.style); err != nil {
			return err
		}
	} else if err := report.Full(out, env.style, res); err != nil {
		return err
	}
	env.printTimings(cmd.ErrOrStderr())
	return nil
}
