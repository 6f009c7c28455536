// Package banner prints the framed status blocks geoff shows at the start
// and end of a run.
package banner

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/SimonPurdie/geoff/internal/logging"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════"

// RunInfo describes a loop about to start.
type RunInfo struct {
	RunID         string
	Agent         string
	AgentFound    bool
	Model         string
	Dir           string
	MaxIterations int
	MaxStuck      int
	MaxFrozen     int
}

// PrintStartupBanner displays the run parameters.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  geoff - autonomous agent loop
//	═══════════════════════════════════════════════════
//	  Run:        4b6c...
//	  Agent:      opencode
//	  Model:      default
//	  Dir:        /src/project
//	  Limits:     iterations=unbounded stuck=2 frozen=off
//	═══════════════════════════════════════════════════
func PrintStartupBanner(info RunInfo) {
	sep := headerColor(rule)
	fmt.Println(sep)
	fmt.Println(headerColor("  geoff - autonomous agent loop"))
	fmt.Println(sep)
	fmt.Printf("  Run:        %s\n", info.RunID)
	agent := info.Agent
	if !info.AgentFound {
		agent += warnColor(" (not on PATH)")
	}
	fmt.Printf("  Agent:      %s\n", agent)
	fmt.Printf("  Model:      %s\n", info.Model)
	fmt.Printf("  Dir:        %s\n", info.Dir)
	fmt.Printf("  Limits:     %s\n", FormatLimits(info.MaxIterations, info.MaxStuck, info.MaxFrozen))
	fmt.Println(sep)
}

// FormatLimits renders loop limits, spelling out the disabled values.
func FormatLimits(maxIterations, maxStuck, maxFrozen int) string {
	iterations := "unbounded"
	if maxIterations > 0 {
		iterations = fmt.Sprintf("%d", maxIterations)
	}
	frozen := "off"
	if maxFrozen > 0 {
		frozen = fmt.Sprintf("%dm", maxFrozen)
	}
	return fmt.Sprintf("iterations=%s stuck=%d frozen=%s", iterations, maxStuck, frozen)
}

// PrintStopBanner displays why a loop ended.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ✓ Loop finished: stuck
//	  Iterations: 5
//	  Duration:   1h 23m 45s
//	═══════════════════════════════════════════════════
func PrintStopBanner(reason string, iterations int, duration string) {
	paint := successColor
	mark := "✓ Loop finished"
	if reason == "cancelled" {
		paint = warnColor
		mark = "⚠ Loop cancelled"
	}
	sep := paint(rule)
	fmt.Println(sep)
	fmt.Println(paint(fmt.Sprintf("  %s: %s", mark, reason)))
	fmt.Printf("  Iterations: %d\n", iterations)
	fmt.Printf("  Duration:   %s\n", duration)
	fmt.Println(sep)
}

// PrintValidationBanner lists the configuration problems that block a run.
func PrintValidationBanner(errs []string) {
	sep := errorColor(rule)
	fmt.Println(sep)
	fmt.Println(errorColor(fmt.Sprintf("  ✗ Configuration invalid (%s)", logging.Plural(len(errs), "problem"))))
	fmt.Println(sep)
	for _, e := range errs {
		fmt.Printf("    - %s\n", e)
	}
	fmt.Println(sep)
}

// PrintAgentNotFoundBanner explains an agent executable that could not be
// started. missing distinguishes an absent binary from other launch errors.
func PrintAgentNotFoundBanner(command string, missing bool, cause error) {
	sep := errorColor(rule)
	fmt.Println(sep)
	if missing {
		fmt.Println(errorColor(fmt.Sprintf("  ✗ '%s' command not found", command)))
	} else {
		fmt.Println(errorColor(fmt.Sprintf("  ✗ '%s' could not be launched", command)))
	}
	fmt.Println(sep)
	if cause != nil {
		fmt.Printf("  Cause: %v\n", cause)
	}
	if missing {
		fmt.Printf("  Ensure %s is installed and on PATH,\n", command)
		fmt.Println("  or pass --agent with the executable to run.")
	} else {
		fmt.Println("  Check the --dir working directory and the executable's permissions.")
	}
	fmt.Println(sep)
}
