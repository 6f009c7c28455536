package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonPurdie/geoff/internal/config"
)

func TestNewDefaultConfigValues(t *testing.T) {
	cfg := config.NewDefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"docs/SPEC.md"}, cfg.StudyDocs)
	assert.Equal(t, "default", cfg.Model)
	assert.Equal(t, "docs/BREADCRUMBS.md", cfg.BreadcrumbsFile)
	assert.True(t, cfg.BreadcrumbEnabled)
	assert.Equal(t, config.TaskModeTasklist, cfg.TaskMode)
	assert.Equal(t, "docs/PLAN.md", cfg.TasklistFile)
	assert.Empty(t, cfg.OneOffPrompt)
	assert.True(t, cfg.BackpressureEnabled)
	assert.Equal(t, 0, cfg.MaxIterations)
	assert.Equal(t, 2, cfg.MaxStuck)
	assert.Equal(t, 0, cfg.MaxFrozen)

	assert.Equal(t, config.DefaultTasklistStudy, cfg.PromptTasklistStudy)
	assert.Equal(t, "IMPORTANT:", cfg.PromptBackpressureHeader)
	assert.Equal(t, config.DefaultBackpressureLines, cfg.PromptBackpressureLines)
	assert.Contains(t, cfg.PromptBreadcrumbInstruction, "{breadcrumbs}")
	assert.Contains(t, cfg.PromptTasklistStudy, "{tasklist}")
	assert.Contains(t, cfg.PromptTasklistUpdate, "{tasklist}")
}

func TestNewDefaultConfigReturnsIndependentCopies(t *testing.T) {
	a := config.NewDefaultConfig()
	b := config.NewDefaultConfig()

	a.PromptBackpressureLines[0] = "mutated"
	a.StudyDocs[0] = "mutated"

	assert.Equal(t, config.DefaultBackpressureLines[0], b.PromptBackpressureLines[0])
	assert.Equal(t, "docs/SPEC.md", b.StudyDocs[0])
	assert.NotEqual(t, "mutated", config.DefaultBackpressureLines[0])
}
