package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cflclosure/internal/cache"
	"cflclosure/internal/config"
	"cflclosure/internal/observ"
	"cflclosure/internal/prof"
	"cflclosure/internal/report"
)

const cacheApp = "cflclosure"

// runEnv is what every command needs after reading the persistent flags.
type runEnv struct {
	cfg     config.Config
	style   report.Style
	quiet   bool
	timings bool
	cache   *cache.Cache
	timer   *observ.Timer
	cleanup func()
}

// setupRun resolves the persistent flags, the config file and the tracer.
// The caller must defer env.close().
func setupRun(cmd *cobra.Command) (*runEnv, error) {
	root := cmd.Root()
	flags := root.PersistentFlags()

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	colored, err := resolveColor(colorFlag, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	color.NoColor = !colored

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	env := &runEnv{
		cfg:     cfg,
		style:   report.NewStyle(colored),
		quiet:   quiet,
		timings: timings,
		timer:   observ.NewTimer(),
		cleanup: func() {},
	}

	useCache := cfg.Cache.Enabled
	if flags.Changed("cache") {
		if useCache, err = flags.GetBool("cache"); err != nil {
			return nil, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if useCache {
		c, err := cache.Open(cacheApp)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		env.cache = c
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return nil, err
	}
	stopProfiles, err := setupProfiling(cmd)
	if err != nil {
		cleanup()
		return nil, err
	}
	env.cleanup = func() {
		stopProfiles()
		cleanup()
	}
	return env, nil
}

// setupProfiling starts the pprof session requested by --cpu-profile and
// --mem-profile.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	cpuProfile, err := flags.GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := flags.GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	session, err := prof.Start(cpuProfile, memProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}

func (e *runEnv) close() {
	if e != nil && e.cleanup != nil {
		e.cleanup()
	}
}

// printTimings writes the phase summary when --timings is set.
func (e *runEnv) printTimings(out io.Writer) {
	if !e.timings || out == nil || len(e.timer.Phases()) == 0 {
		return
	}
	fmt.Fprint(out, e.timer.Summary())
}

// loadConfig reads --config when given; a broken explicit file is fatal.
// A file found by searching upwards only warns and falls back to defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Discover(".")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring config: %v; using defaults\n", err)
	}
	return cfg, nil
}

func resolveColor(value string, out io.Writer) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		f, ok := out.(*os.File)
		return ok && isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}
