// Package loop drives the agent repeatedly until the working tree stops
// changing or a limit is reached.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SimonPurdie/geoff/internal/agent"
	"github.com/SimonPurdie/geoff/internal/logging"
)

// DefaultDelay is the pause between iterations.
const DefaultDelay = 2 * time.Second

// StopReason says why a loop ended normally.
type StopReason string

const (
	ReasonIterationLimit StopReason = "iteration limit"
	ReasonStuck          StopReason = "stuck"
	ReasonFrozen         StopReason = "frozen"
	ReasonCancelled      StopReason = "cancelled"
)

// Fingerprinter summarizes a directory's state. Equal results mean nothing
// changed.
type Fingerprinter interface {
	Fingerprint(ctx context.Context, dir string) string
}

// SleepFunc pauses for d and returns early with ctx's error on cancellation.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Result summarizes a finished loop.
type Result struct {
	RunID      string
	Reason     StopReason
	Iterations int
	Duration   time.Duration
}

// Loop runs an agent until a stop condition holds. Zero values of Delay,
// Sleep and Now fall back to DefaultDelay, Sleep and time.Now.
type Loop struct {
	// RunID labels the run; empty generates a random UUID.
	RunID string

	Runner        agent.Runner
	Fingerprinter Fingerprinter
	Dir           string

	// MaxIterations of 0 means unbounded.
	MaxIterations int
	// MaxStuck is the number of consecutive no-change iterations tolerated.
	MaxStuck int
	// MaxFrozen is in minutes since the last observed change; 0 disables it.
	MaxFrozen int

	Delay time.Duration
	Sleep SleepFunc
	Now   func() time.Time
}

// Run invokes the agent with prompt until a stop condition holds.
//
// Each iteration fingerprints Dir, runs the agent to completion and
// fingerprints again. After every iteration the limits are checked in order:
// iteration limit, stuck, frozen. Cancellation is observed once the agent
// returns and during the delay, and ends the loop without error. The only
// error returned wraps agent.ErrNotFound.
func (l *Loop) Run(ctx context.Context, prompt string) (Result, error) {
	now := l.Now
	if now == nil {
		now = time.Now
	}
	sleep := l.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	delay := l.Delay
	if delay == 0 {
		delay = DefaultDelay
	}

	res := Result{RunID: l.RunID}
	if res.RunID == "" {
		res.RunID = uuid.NewString()
	}
	start := now()
	lastChange := start
	stuck := 0

	logging.Info(fmt.Sprintf("Starting loop %s (max_iterations=%d, max_stuck=%d, max_frozen=%d)",
		res.RunID, l.MaxIterations, l.MaxStuck, l.MaxFrozen))

	for {
		if ctx.Err() != nil {
			res.Reason = ReasonCancelled
			break
		}

		res.Iterations++
		logging.Iteration(res.Iterations)

		before := l.Fingerprinter.Fingerprint(ctx, l.Dir)

		code, err := l.Runner.Run(ctx, prompt, l.Dir)
		if err != nil {
			if errors.Is(err, agent.ErrNotFound) {
				res.Duration = now().Sub(start)
				return res, err
			}
			logging.Warn(fmt.Sprintf("Agent failed: %v", err))
		} else if code != 0 {
			logging.Warn(fmt.Sprintf("Agent exited with code %d", code))
		}

		if ctx.Err() != nil {
			res.Reason = ReasonCancelled
			break
		}

		after := l.Fingerprinter.Fingerprint(ctx, l.Dir)
		if before == after {
			stuck++
			logging.Info(fmt.Sprintf("No changes detected (stuck: %d/%d)", stuck, l.MaxStuck))
		} else {
			stuck = 0
			lastChange = now()
			logging.Info("Changes detected")
		}

		if l.MaxIterations > 0 && res.Iterations >= l.MaxIterations {
			res.Reason = ReasonIterationLimit
			logging.Info(fmt.Sprintf("Reached max iterations (%d)", l.MaxIterations))
			break
		}
		if stuck > 0 && stuck >= l.MaxStuck {
			res.Reason = ReasonStuck
			logging.Info(fmt.Sprintf("Repo stuck for %s", logging.Plural(stuck, "consecutive iteration")))
			break
		}
		if l.MaxFrozen > 0 {
			if idle := now().Sub(lastChange); idle >= time.Duration(l.MaxFrozen)*time.Minute {
				res.Reason = ReasonFrozen
				logging.Info(fmt.Sprintf("No changes for %s", logging.FormatDuration(idle)))
				break
			}
		}

		if err := sleep(ctx, delay); err != nil {
			res.Reason = ReasonCancelled
			break
		}
	}

	res.Duration = now().Sub(start)
	if res.Reason == ReasonCancelled {
		logging.Warn("Loop cancelled by user")
	}
	logging.Info(fmt.Sprintf("Loop terminated after %s", logging.Plural(res.Iterations, "iteration")))
	return res, nil
}

// RunOnce invokes the agent a single time without fingerprinting. Only a
// launch failure is an error; a failed run is logged.
func RunOnce(ctx context.Context, runner agent.Runner, prompt, dir string) error {
	code, err := runner.Run(ctx, prompt, dir)
	if err != nil {
		if errors.Is(err, agent.ErrNotFound) {
			return err
		}
		logging.Warn(fmt.Sprintf("Agent failed: %v", err))
		return nil
	}
	if code != 0 {
		logging.Warn(fmt.Sprintf("Agent exited with code %d", code))
	}
	return nil
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
