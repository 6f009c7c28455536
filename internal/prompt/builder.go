// Package prompt renders a resolved configuration into the instruction text
// handed to the agent.
package prompt

import (
	"strings"

	"github.com/SimonPurdie/geoff/internal/config"
)

// Template placeholders.
const (
	TasklistPlaceholder    = "{tasklist}"
	BreadcrumbsPlaceholder = "{breadcrumbs}"
)

// Build renders cfg as newline-joined lines in a fixed order: study docs,
// breadcrumbs check, task source, backpressure, breadcrumb instruction and
// tasklist update. Disabled or empty sections are skipped and no blank line
// is ever emitted.
func Build(cfg *config.Config) string {
	var lines []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}

	for _, doc := range cfg.StudyDocs {
		if doc = strings.TrimSpace(doc); doc != "" {
			add("study " + doc)
		}
	}

	breadcrumbs := ""
	if cfg.BreadcrumbEnabled {
		breadcrumbs = strings.TrimSpace(cfg.BreadcrumbsFile)
	}
	if breadcrumbs != "" {
		add("check " + breadcrumbs)
	}

	tasklist := ""
	switch cfg.TaskMode {
	case config.TaskModeTasklist:
		tasklist = strings.TrimSpace(cfg.TasklistFile)
		if tasklist != "" {
			add(fill(cfg.PromptTasklistStudy, TasklistPlaceholder, tasklist))
		}
	case config.TaskModeOneOff:
		add(cfg.OneOffPrompt)
	}

	if cfg.BackpressureEnabled {
		add(cfg.PromptBackpressureHeader)
		for _, line := range cfg.PromptBackpressureLines {
			add(line)
		}
	}

	if breadcrumbs != "" {
		add(fill(cfg.PromptBreadcrumbInstruction, BreadcrumbsPlaceholder, breadcrumbs))
	}

	if tasklist != "" {
		add(fill(cfg.PromptTasklistUpdate, TasklistPlaceholder, tasklist))
	}

	return strings.Join(lines, "\n")
}

func fill(template, placeholder, value string) string {
	return strings.ReplaceAll(template, placeholder, value)
}
