package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Validate checks cfg against the files under dir and returns one
// human-readable message per problem. An empty result means the prompt can
// be built and run.
//
// A missing breadcrumbs file is created empty, since agents are asked to
// write into it; failing to create it is reported as an invalid path.
func Validate(cfg *Config, dir string) []string {
	var errs []string

	for _, doc := range cfg.StudyDocs {
		if strings.TrimSpace(doc) == "" {
			errs = append(errs, "Study doc path cannot be empty")
			continue
		}
		if !exists(filepath.Join(dir, doc)) {
			errs = append(errs, fmt.Sprintf("Study doc file not found: %s", doc))
		}
	}

	if cfg.BreadcrumbEnabled {
		if strings.TrimSpace(cfg.BreadcrumbsFile) == "" {
			errs = append(errs, "Breadcrumbs file path cannot be empty when breadcrumb is enabled")
		} else if err := ensureFile(filepath.Join(dir, cfg.BreadcrumbsFile)); err != nil {
			errs = append(errs, fmt.Sprintf("Invalid breadcrumbs file path: %s", cfg.BreadcrumbsFile))
		}
	}

	switch cfg.TaskMode {
	case TaskModeTasklist:
		if strings.TrimSpace(cfg.TasklistFile) == "" {
			errs = append(errs, "Tasklist file path cannot be empty in tasklist mode")
		} else if !exists(filepath.Join(dir, cfg.TasklistFile)) {
			errs = append(errs, fmt.Sprintf("Tasklist file not found: %s", cfg.TasklistFile))
		}
	case TaskModeOneOff:
		if strings.TrimSpace(cfg.OneOffPrompt) == "" {
			errs = append(errs, "One-off prompt cannot be empty in one-off mode")
		}
	default:
		errs = append(errs, fmt.Sprintf("Task mode must be %q or %q, got %q", TaskModeTasklist, TaskModeOneOff, cfg.TaskMode))
	}

	if cfg.MaxIterations < 0 {
		errs = append(errs, "Max iterations must be >= 0")
	}
	if cfg.MaxStuck < 0 {
		errs = append(errs, "Max stuck must be >= 0")
	}
	if cfg.MaxFrozen < 0 {
		errs = append(errs, "Frozen must be >= 0")
	}

	return errs
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func ensureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}
