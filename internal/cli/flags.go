// Package cli builds the geoff command tree and its flag handling.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SimonPurdie/geoff/internal/agent"
	"github.com/SimonPurdie/geoff/internal/config"
)

// Options holds the persistent flags shared by every subcommand.
type Options struct {
	Dir          string
	GlobalConfig string
	Agent        string
	Verbose      bool
}

// BindPersistentFlags registers the global flags on the root command.
func BindPersistentFlags(cmd *cobra.Command, opts *Options) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Dir, "dir", ".", "Working directory the agent runs in")
	flags.StringVar(&opts.GlobalConfig, "global-config", "", "Path to the global config layer (default: ~/.geoff/geoff.yaml)")
	flags.StringVar(&opts.Agent, "agent", agent.DefaultCommand, "Agent executable to run")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug output")
}

// ValidateOptions checks the persistent flags and makes Dir absolute.
func ValidateOptions(opts *Options) error {
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return fmt.Errorf("--dir: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("--dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("--dir: %s is not a directory", dir)
	}
	opts.Dir = dir

	if opts.Agent == "" {
		return fmt.Errorf("--agent must not be empty")
	}
	return nil
}

// LoopOverrides are per-run limits given on the command line.
type LoopOverrides struct {
	MaxIterations int
	MaxStuck      int
	MaxFrozen     int
}

// BindLoopFlags registers the loop limit flags on cmd.
func BindLoopFlags(cmd *cobra.Command, ov *LoopOverrides) {
	flags := cmd.Flags()
	flags.IntVar(&ov.MaxIterations, "max-iterations", 0, "Maximum loop iterations, 0 for unbounded (default: from config)")
	flags.IntVar(&ov.MaxStuck, "max-stuck", 0, "Consecutive unchanged iterations before stopping (default: from config)")
	flags.IntVar(&ov.MaxFrozen, "max-frozen", 0, "Minutes without change before stopping, 0 to disable (default: from config)")
}

// ApplyLoopOverrides copies explicitly set loop flags onto cfg. Flags left
// at their defaults never mask configured values. Overrides are not saved.
func ApplyLoopOverrides(cmd *cobra.Command, cfg *config.Config, ov *LoopOverrides) {
	flags := cmd.Flags()
	if flags.Changed("max-iterations") {
		cfg.MaxIterations = ov.MaxIterations
	}
	if flags.Changed("max-stuck") {
		cfg.MaxStuck = ov.MaxStuck
	}
	if flags.Changed("max-frozen") {
		cfg.MaxFrozen = ov.MaxFrozen
	}
}
