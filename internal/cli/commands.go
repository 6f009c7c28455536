package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SimonPurdie/geoff/internal/agent"
	"github.com/SimonPurdie/geoff/internal/banner"
	"github.com/SimonPurdie/geoff/internal/config"
	"github.com/SimonPurdie/geoff/internal/exitcode"
	"github.com/SimonPurdie/geoff/internal/fingerprint"
	"github.com/SimonPurdie/geoff/internal/logging"
	"github.com/SimonPurdie/geoff/internal/loop"
	"github.com/SimonPurdie/geoff/internal/prompt"
	sighandler "github.com/SimonPurdie/geoff/internal/signal"
)

// ExitError carries a specific process exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// errInvalidConfig is reported after the validation banner has been shown.
var errInvalidConfig = errors.New("configuration is invalid")

// NewRootCommand returns the geoff command tree. version is shown by
// --version.
func NewRootCommand(version string) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:     "geoff",
		Short:   "Prompt builder and autonomous loop for coding agents",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetVerbose(opts.Verbose)
			return ValidateOptions(opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	BindPersistentFlags(root, opts)
	SetCustomHelp(root)

	root.AddCommand(
		newPromptCommand(opts),
		newRunCommand(opts),
		newLoopCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}

	var nf *agent.NotFoundError
	if errors.As(err, &nf) {
		banner.PrintAgentNotFoundBanner(nf.Command, nf.Missing(), nf.Err)
		logging.Error(err.Error())
		return exitcode.AgentNotFound
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code != exitcode.Invalid {
			logging.Error(exitErr.Error())
		}
		return exitErr.Code
	}

	logging.Error(err.Error())
	return exitcode.Error
}

func newManager(opts *Options) (*config.Manager, error) {
	return config.NewManager(opts.Dir, opts.GlobalConfig)
}

// preparePrompt resolves, validates and renders the configuration.
func preparePrompt(opts *Options, adjust func(*config.Config)) (*config.Config, string, error) {
	m, err := newManager(opts)
	if err != nil {
		return nil, "", err
	}
	cfg := m.Resolve()
	if adjust != nil {
		adjust(cfg)
	}
	if errs := config.Validate(cfg, opts.Dir); len(errs) > 0 {
		banner.PrintValidationBanner(errs)
		return nil, "", &ExitError{Code: exitcode.Invalid, Err: errInvalidConfig}
	}
	return cfg, prompt.Build(cfg), nil
}

func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return sighandler.Notify(cmd.Context(), func() {
		logging.Warn("Interrupt received, stopping after the current agent run...")
	})
}

func newPromptCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Validate the config and print the prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := preparePrompt(opts, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func newRunCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the agent once with the prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := preparePrompt(opts, nil)
			if err != nil {
				return err
			}
			ctx, stop := interruptible(cmd)
			defer stop()

			runner := agent.NewOpencodeRunner(opts.Agent, cfg.Model)
			if err := loop.RunOnce(ctx, runner, p, opts.Dir); err != nil {
				return err
			}
			logging.Success("Agent run finished")
			return nil
		},
	}
}

func newLoopCommand(opts *Options) *cobra.Command {
	ov := &LoopOverrides{}
	cmd := &cobra.Command{
		Use:   "loop",
		Short: "Run the agent until the repo stops changing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := preparePrompt(opts, func(c *config.Config) {
				ApplyLoopOverrides(cmd, c, ov)
			})
			if err != nil {
				return err
			}
			ctx, stop := interruptible(cmd)
			defer stop()

			l := &loop.Loop{
				RunID:         uuid.NewString(),
				Runner:        agent.NewOpencodeRunner(opts.Agent, cfg.Model),
				Fingerprinter: fingerprint.New(),
				Dir:           opts.Dir,
				MaxIterations: cfg.MaxIterations,
				MaxStuck:      cfg.MaxStuck,
				MaxFrozen:     cfg.MaxFrozen,
			}

			banner.PrintStartupBanner(banner.RunInfo{
				RunID:         l.RunID,
				Agent:         opts.Agent,
				AgentFound:    agent.CheckAvailability(opts.Agent)[opts.Agent],
				Model:         cfg.Model,
				Dir:           opts.Dir,
				MaxIterations: cfg.MaxIterations,
				MaxStuck:      cfg.MaxStuck,
				MaxFrozen:     cfg.MaxFrozen,
			})

			res, err := l.Run(ctx, p)
			if err != nil {
				return err
			}
			banner.PrintStopBanner(string(res.Reason), res.Iterations, logging.FormatDuration(res.Duration))
			return nil
		},
	}
	BindLoopFlags(cmd, ov)
	return cmd
}

func newConfigCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change the layered configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the resolved configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newManager(opts)
				if err != nil {
					return err
				}
				return writeConfig(cmd.OutOrStdout(), m.Resolve())
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config layer paths",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newManager(opts)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "global: %s\nrepo:   %s\n", m.GlobalPath, m.RepoPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>...",
			Short: "Set a configuration field",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newManager(opts)
				if err != nil {
					return err
				}
				if _, err := m.Set(args[0], args[1:]); err != nil {
					return err
				}
				f, _ := config.LookupField(args[0])
				target := m.RepoPath
				if f.Kind == config.BaseString {
					target = m.GlobalPath
				}
				fmt.Fprintf(cmd.OutOrStdout(), "set %s (%s) in %s\n", args[0], f.Kind, target)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Delete the repo layer and fall back to global and defaults",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newManager(opts)
				if err != nil {
					return err
				}
				if _, err := m.Reset(); err != nil {
					return err
				}
				logging.Success(fmt.Sprintf("Removed %s", m.RepoPath))
				return nil
			},
		},
	)
	return cmd
}

// writeConfig prints every field of cfg as YAML.
func writeConfig(w io.Writer, cfg *config.Config) error {
	data, err := yaml.Marshal(map[string]any(config.ToLayer(cfg)))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

