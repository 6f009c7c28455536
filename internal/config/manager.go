package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SimonPurdie/geoff/internal/logging"
)

// Layer file locations, relative to the home directory (global) and the
// working directory (repo).
const (
	DirName  = ".geoff"
	FileName = "geoff.yaml"
)

// DefaultGlobalPath returns ~/.geoff/geoff.yaml.
func DefaultGlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, DirName, FileName), nil
}

// RepoPath returns the repo layer path for workDir.
func RepoPath(workDir string) string {
	return filepath.Join(workDir, DirName, FileName)
}

// Manager owns the on-disk layers for one working directory.
type Manager struct {
	WorkDir    string
	GlobalPath string
	RepoPath   string
}

// NewManager returns a Manager for workDir. An empty globalPath selects
// DefaultGlobalPath.
func NewManager(workDir, globalPath string) (*Manager, error) {
	if globalPath == "" {
		p, err := DefaultGlobalPath()
		if err != nil {
			return nil, err
		}
		globalPath = p
	}
	return &Manager{
		WorkDir:    workDir,
		GlobalPath: globalPath,
		RepoPath:   RepoPath(workDir),
	}, nil
}

// Resolve loads both layers, merges them with the defaults and writes any
// missing base strings back to the global layer. Load and persist failures
// are logged and never prevent a Config from being returned.
func (m *Manager) Resolve() *Config {
	global, globalErr := LoadLayer(m.GlobalPath)
	if globalErr != nil {
		logging.Warn(fmt.Sprintf("Ignoring global config: %v", globalErr))
	}
	repo, repoErr := LoadLayer(m.RepoPath)
	if repoErr != nil {
		logging.Warn(fmt.Sprintf("Ignoring repo config: %v", repoErr))
	}

	res := Resolve(DefaultLayer(), global, repo)
	for _, err := range res.Ignored {
		logging.Warn(fmt.Sprintf("Ignoring config value: %v", err))
	}

	if len(res.Materialized) > 0 {
		if err := m.writeGlobal(res.Global, globalErr); err != nil {
			logging.Warn(fmt.Sprintf("Could not persist base prompt strings to %s: %v", m.GlobalPath, err))
		} else {
			logging.Debug(fmt.Sprintf("Materialized %s into %s", strings.Join(res.Materialized, ", "), m.GlobalPath))
		}
	}

	return res.Config
}

// SaveRepo writes the ordinary fields of cfg to the repo layer. Base strings
// are never written there.
func (m *Manager) SaveRepo(cfg *Config) error {
	if err := SaveLayer(m.RepoPath, ToLayer(cfg, Ordinary)); err != nil {
		return fmt.Errorf("save repo config: %w", err)
	}
	return nil
}

// Reset removes the repo layer and resolves again from global and defaults.
func (m *Manager) Reset() (*Config, error) {
	if err := os.Remove(m.RepoPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove repo config: %w", err)
	}
	return m.Resolve(), nil
}

// Set changes one field and persists it. Ordinary fields are saved, with the
// rest of the resolved configuration, to the repo layer; base strings are
// written to the global layer.
func (m *Manager) Set(key string, args []string) (*Config, error) {
	f, ok := LookupField(key)
	if !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	raw, err := f.Parse(args)
	if err != nil {
		return nil, err
	}

	if f.Kind == BaseString {
		global, loadErr := LoadLayer(m.GlobalPath)
		global[key] = raw
		if err := m.writeGlobal(global, loadErr); err != nil {
			return nil, fmt.Errorf("save global config: %w", err)
		}
		return m.Resolve(), nil
	}

	cfg := m.Resolve()
	if err := f.Assign(cfg, raw); err != nil {
		return nil, err
	}
	if err := m.SaveRepo(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// writeGlobal persists l to the global layer. loadErr is the error returned
// when the layer was read: a malformed file is moved to .bak first, and an
// unreadable file is left alone.
func (m *Manager) writeGlobal(l Layer, loadErr error) error {
	if loadErr != nil {
		if !errors.Is(loadErr, ErrMalformedLayer) {
			return fmt.Errorf("global config unreadable, not overwriting: %w", loadErr)
		}
		backup := m.GlobalPath + ".bak"
		if err := os.Rename(m.GlobalPath, backup); err != nil {
			return fmt.Errorf("back up malformed global config: %w", err)
		}
		logging.Warn(fmt.Sprintf("Moved malformed global config to %s", backup))
	}
	return SaveLayer(m.GlobalPath, l)
}
