package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/SimonPurdie/geoff/internal/config"
	"github.com/SimonPurdie/geoff/internal/logging"
)

// OpencodeRunner implements Runner for the opencode CLI.
type OpencodeRunner struct {
	// Command is the executable to run; empty means DefaultCommand.
	Command string
	// Model is passed as --model unless it is empty or config.DefaultModel.
	Model string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewOpencodeRunner returns a runner wired to the process's stdio.
func NewOpencodeRunner(command, model string) *OpencodeRunner {
	return &OpencodeRunner{
		Command: command,
		Model:   model,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

func (r *OpencodeRunner) command() string {
	if r.Command == "" {
		return DefaultCommand
	}
	return r.Command
}

// BuildArgs constructs the argument list for the opencode command.
func (r *OpencodeRunner) BuildArgs(prompt string) []string {
	args := []string{"run", prompt, "--log-level", "INFO"}
	if r.Model != "" && r.Model != config.DefaultModel {
		args = append(args, "--model", r.Model)
	}
	return args
}

// Run starts the agent in dir and waits for it. The process is not tied to
// ctx: an interrupt lets the current invocation finish and the caller
// decides what to do next.
func (r *OpencodeRunner) Run(_ context.Context, prompt string, dir string) (int, error) {
	cmd := exec.Command(r.command(), r.BuildArgs(prompt)...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	logging.Debug(fmt.Sprintf("exec %s in %s", r.command(), dir))

	if err := cmd.Start(); err != nil {
		return -1, &NotFoundError{Command: r.command(), Err: err}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("%s command failed: %w", r.command(), err)
	}
	return 0, nil
}
