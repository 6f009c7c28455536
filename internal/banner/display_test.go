package banner

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout captures stdout output during function execution
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	old := os.Stdout
	defer func() { os.Stdout = old }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	w.Close()
	os.Stdout = old
	return <-outC
}

func TestPrintStartupBanner(t *testing.T) {
	out := captureStdout(t, func() {
		PrintStartupBanner(RunInfo{
			RunID:      "run-123",
			Agent:      "opencode",
			AgentFound: true,
			Model:      "default",
			Dir:        "/src/project",
			MaxStuck:   2,
		})
	})

	for _, want := range []string{"geoff", "run-123", "opencode", "default", "/src/project", "iterations=unbounded stuck=2 frozen=off"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "not on PATH")
}

func TestPrintStartupBanner_MissingAgent(t *testing.T) {
	out := captureStdout(t, func() {
		PrintStartupBanner(RunInfo{Agent: "opencode", AgentFound: false})
	})
	assert.Contains(t, out, "opencode (not on PATH)")
}

func TestFormatLimits(t *testing.T) {
	tests := []struct {
		iterations, stuck, frozen int
		want                      string
	}{
		{0, 2, 0, "iterations=unbounded stuck=2 frozen=off"},
		{10, 0, 15, "iterations=10 stuck=0 frozen=15m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLimits(tt.iterations, tt.stuck, tt.frozen))
	}
}

func TestPrintStopBanner(t *testing.T) {
	t.Run("normal stop", func(t *testing.T) {
		out := captureStdout(t, func() { PrintStopBanner("stuck", 5, "1m 30s") })
		assert.Contains(t, out, "Loop finished: stuck")
		assert.Contains(t, out, "Iterations: 5")
		assert.Contains(t, out, "Duration:   1m 30s")
	})

	t.Run("cancelled", func(t *testing.T) {
		out := captureStdout(t, func() { PrintStopBanner("cancelled", 2, "4s") })
		assert.Contains(t, out, "Loop cancelled: cancelled")
		assert.Contains(t, out, "Iterations: 2")
	})
}

func TestPrintValidationBanner(t *testing.T) {
	out := captureStdout(t, func() {
		PrintValidationBanner([]string{"Tasklist file not found: docs/PLAN.md", "Max stuck must be >= 0"})
	})
	assert.Contains(t, out, "Configuration invalid (2 problems)")
	assert.Contains(t, out, "    - Tasklist file not found: docs/PLAN.md")
	assert.Contains(t, out, "    - Max stuck must be >= 0")
}

func TestPrintAgentNotFoundBanner(t *testing.T) {
	out := captureStdout(t, func() {
		PrintAgentNotFoundBanner("opencode", true, errors.New(`exec: "opencode": executable file not found in $PATH`))
	})
	assert.Contains(t, out, "'opencode' command not found")
	assert.Contains(t, out, "Cause: exec: \"opencode\": executable file not found")
	assert.Contains(t, out, "--agent")
}

func TestPrintAgentNotFoundBanner_LaunchFailure(t *testing.T) {
	out := captureStdout(t, func() {
		PrintAgentNotFoundBanner("/usr/bin/opencode", false, errors.New("chdir /nope: no such file or directory"))
	})
	assert.Contains(t, out, "'/usr/bin/opencode' could not be launched")
	assert.Contains(t, out, "Cause: chdir /nope: no such file or directory")
	assert.NotContains(t, out, "command not found")
}
