// Package agent runs the external coding agent that the loop drives.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultCommand is the agent executable used when none is configured.
const DefaultCommand = "opencode"

// ErrNotFound reports that the agent executable could not be located or
// launched. It is fatal for both the loop and single-shot runs.
var ErrNotFound = errors.New("agent executable not found")

// Runner invokes the agent once with a prompt inside dir and waits for it to
// exit. A non-zero exit code is not an error.
type Runner interface {
	Run(ctx context.Context, prompt string, dir string) (exitCode int, err error)
}

// NotFoundError is returned when the agent process cannot be started. Err
// holds the underlying cause, which is not always a missing executable.
type NotFoundError struct {
	Command string
	Err     error
}

func (e *NotFoundError) Error() string {
	if !e.Missing() {
		return fmt.Sprintf("'%s' could not be launched: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("'%s' command not found. Ensure it is installed and on PATH: %v", e.Command, e.Err)
}

// Missing reports whether the executable itself is absent, as opposed to a
// launch failure such as a bad working directory or a busy binary.
func (e *NotFoundError) Missing() bool {
	if errors.Is(e.Err, exec.ErrNotFound) {
		return true
	}
	if filepath.Base(e.Command) == e.Command {
		return false
	}
	_, err := os.Stat(e.Command)
	return errors.Is(err, fs.ErrNotExist)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotFound) true for every NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
