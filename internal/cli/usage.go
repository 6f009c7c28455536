package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `geoff - prompt builder and autonomous loop for coding agents

USAGE
  geoff <command> [flags]

COMMANDS
  prompt                                   Validate the config and print the prompt
  run                                      Run the agent once with the prompt
  loop                                     Run the agent until the repo stops changing
  config show                              Print the resolved configuration
  config path                              Print the config layer paths
  config set <key> <value>...              Set a field (base strings go to the global layer)
  config reset                             Delete the repo layer

GLOBAL FLAGS
  --dir <path>                             Working directory (default: .)
  --global-config <path>                   Global config layer (default: ~/.geoff/geoff.yaml)
  --agent <command>                        Agent executable (default: opencode)
  -v, --verbose                            Enable debug output

LOOP FLAGS
  --max-iterations <int>                   Maximum iterations, 0 for unbounded (default: config)
  --max-stuck <int>                        Unchanged iterations before stopping (default: config)
  --max-frozen <minutes>                   Minutes without change before stopping (default: config)

CONFIG LAYERS
  Ordinary fields: defaults < ~/.geoff/geoff.yaml < .geoff/geoff.yaml
  Prompt strings (prompt_*): the global file wins, and missing ones are
  written to it on every run.

EXIT CODES
  0   Success              Prompt printed, run finished, or loop stopped (limit, stuck, frozen, cancelled)
  1   Error                Invalid arguments or I/O failure
  2   Invalid              Configuration failed validation
  127 AgentNotFound        Agent executable missing or not launchable

EXAMPLES
  # Show the prompt for the current repo
  geoff prompt

  # Loop at most 10 times, stopping after 3 unchanged iterations
  geoff loop --max-iterations 10 --max-stuck 3

  # Switch to a one-off task
  geoff config set task_mode oneoff
  geoff config set oneoff_prompt fix the flaky login test
`

// SetCustomHelp configures the root command to use the geoff help text.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
