// Package signal turns SIGINT and SIGTERM into context cancellation for the
// geoff run loop.
//
// The loop never kills an in-flight agent; it only observes the cancelled
// context once the current invocation has returned.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Notify returns a child of parent that is cancelled on the first SIGINT or
// SIGTERM. onInterrupt, when non-nil, runs before the cancellation.
//
// The returned stop function releases the signal registration and cancels the
// child context; callers should defer it.
func Notify(parent context.Context, onInterrupt func()) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
