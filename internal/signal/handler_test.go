package signal

import (
	"context"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_SIGINTCancelsAndCallsCallback(t *testing.T) {
	var called atomic.Bool
	ctx, stop := Notify(context.Background(), func() { called.Store(true) })
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
		assert.Equal(t, context.Canceled, ctx.Err())
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled after SIGINT")
	}
	assert.True(t, called.Load(), "onInterrupt should run before cancellation")
}

func TestNotify_SIGTERMCancels(t *testing.T) {
	ctx, stop := Notify(context.Background(), nil)
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled after SIGTERM")
	}
}

func TestNotify_StopDoesNotInvokeCallback(t *testing.T) {
	var called atomic.Bool
	ctx, stop := Notify(context.Background(), func() { called.Store(true) })

	stop()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("stop should cancel the context")
	}
	// Give the watcher goroutine a moment to exit.
	time.Sleep(20 * time.Millisecond)
	assert.False(t, called.Load(), "onInterrupt must not run when stopped without a signal")
}

func TestNotify_ParentCancellationPropagates(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, stop := Notify(parent, nil)
	defer stop()

	cancelParent()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("child context should follow its parent")
	}
}
