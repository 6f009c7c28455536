package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonPurdie/geoff/internal/config"
)

// validRepo lays out the files the default configuration expects.
func validRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "docs/SPEC.md", "# spec\n")
	writeFile(t, dir, "docs/PLAN.md", "- [ ] task\n")
	return dir
}

func TestValidateDefaultsInPreparedRepo(t *testing.T) {
	dir := validRepo(t)
	assert.Empty(t, config.Validate(config.NewDefaultConfig(), dir))

	_, err := os.Stat(filepath.Join(dir, "docs", "BREADCRUMBS.md"))
	assert.NoError(t, err, "missing breadcrumbs file is created")
}

func TestValidateReportsProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "missing study doc",
			mutate: func(c *config.Config) { c.StudyDocs = []string{"nope.md"} },
			want:   "Study doc file not found: nope.md",
		},
		{
			name:   "blank study doc",
			mutate: func(c *config.Config) { c.StudyDocs = []string{"  "} },
			want:   "Study doc path cannot be empty",
		},
		{
			name:   "blank breadcrumbs path",
			mutate: func(c *config.Config) { c.BreadcrumbsFile = "" },
			want:   "Breadcrumbs file path cannot be empty when breadcrumb is enabled",
		},
		{
			name:   "missing tasklist",
			mutate: func(c *config.Config) { c.TasklistFile = "TODO.md" },
			want:   "Tasklist file not found: TODO.md",
		},
		{
			name:   "blank tasklist",
			mutate: func(c *config.Config) { c.TasklistFile = "" },
			want:   "Tasklist file path cannot be empty in tasklist mode",
		},
		{
			name: "blank one-off prompt",
			mutate: func(c *config.Config) {
				c.TaskMode = config.TaskModeOneOff
				c.OneOffPrompt = " "
			},
			want: "One-off prompt cannot be empty in one-off mode",
		},
		{
			name:   "unknown task mode",
			mutate: func(c *config.Config) { c.TaskMode = "batch" },
			want:   `Task mode must be "tasklist" or "oneoff", got "batch"`,
		},
		{
			name:   "negative iterations",
			mutate: func(c *config.Config) { c.MaxIterations = -1 },
			want:   "Max iterations must be >= 0",
		},
		{
			name:   "negative stuck",
			mutate: func(c *config.Config) { c.MaxStuck = -1 },
			want:   "Max stuck must be >= 0",
		},
		{
			name:   "negative frozen",
			mutate: func(c *config.Config) { c.MaxFrozen = -5 },
			want:   "Frozen must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			tt.mutate(cfg)
			errs := config.Validate(cfg, validRepo(t))
			require.Len(t, errs, 1, "%v", errs)
			assert.Equal(t, tt.want, errs[0])
		})
	}
}

func TestValidateSkipsDisabledSections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/SPEC.md", "")

	cfg := config.NewDefaultConfig()
	cfg.BreadcrumbEnabled = false
	cfg.BreadcrumbsFile = ""
	cfg.TaskMode = config.TaskModeOneOff
	cfg.OneOffPrompt = "fix the flaky test"
	cfg.TasklistFile = "missing.md"

	assert.Empty(t, config.Validate(cfg, dir))
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.MaxIterations = -1
	cfg.MaxStuck = -1

	errs := config.Validate(cfg, t.TempDir())
	assert.Contains(t, errs, "Study doc file not found: docs/SPEC.md")
	assert.Contains(t, errs, "Tasklist file not found: docs/PLAN.md")
	assert.Contains(t, errs, "Max iterations must be >= 0")
	assert.Contains(t, errs, "Max stuck must be >= 0")
}
