// Package logging provides colored, leveled console output for the geoff CLI.
//
// Every function writes one prefixed line. Debug output is suppressed unless
// verbose mode is enabled via SetVerbose(true). Colors are dropped when
// stdout is not a terminal.
package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var verbose bool

var (
	infoPrefix      = color.New(color.FgBlue).SprintFunc()
	successPrefix   = color.New(color.FgGreen).SprintFunc()
	warnPrefix      = color.New(color.FgYellow).SprintFunc()
	errorPrefix     = color.New(color.FgRed).SprintFunc()
	iterationPrefix = color.New(color.FgCyan).SprintFunc()
	debugPrefix     = color.New(color.FgMagenta).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	verbose = v
}

// Verbose reports whether Debug output is enabled.
func Verbose() bool {
	return verbose
}

// ConfigureColor disables colored output unless f is a terminal.
func ConfigureColor(f *os.File) {
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		color.NoColor = true
	}
}

// Info prints an informational message to stdout.
func Info(msg string) {
	fmt.Println(infoPrefix("[INFO]") + " " + msg)
}

// Success prints a success message to stdout.
func Success(msg string) {
	fmt.Println(successPrefix("[OK]") + " " + msg)
}

// Warn prints a warning to stdout.
func Warn(msg string) {
	fmt.Println(warnPrefix("[WARN]") + " " + msg)
}

// Error prints an error message to stderr.
func Error(msg string) {
	fmt.Fprintln(os.Stderr, errorPrefix("[ERROR]")+" "+msg)
}

// Iteration prints the loop iteration header.
func Iteration(n int) {
	line := fmt.Sprintf("--- Iteration %d ---", n)
	fmt.Println()
	fmt.Println(iterationPrefix(line))
}

// Debug prints a debug message, only when verbose mode is enabled.
func Debug(msg string) {
	if !Verbose() {
		return
	}
	fmt.Println(debugPrefix("[DEBUG]") + " " + msg)
}

// FormatDuration renders d, truncated to whole seconds.
//
//	FormatDuration(0)                 => "0s"
//	FormatDuration(90 * time.Second)  => "1m 30s"
//	FormatDuration(3661 * time.Second) => "1h 1m 1s"
func FormatDuration(d time.Duration) string {
	seconds := int(d / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// Plural returns "n word" with a trailing s when n != 1.
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
