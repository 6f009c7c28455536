package fingerprint

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// NoHead stands in for HEAD in a repository without commits.
const NoHead = "no-head"

// GitStrategy fingerprints a git work tree from HEAD, the porcelain status
// and the mtime and size of every path the status reports. Status is scoped
// to dir, so a run from a subdirectory ignores edits elsewhere in the repo.
type GitStrategy struct{}

// Name implements Strategy.
func (GitStrategy) Name() string { return "git" }

// Fingerprint implements Strategy. It fails when git is missing or dir is
// not inside a work tree.
func (GitStrategy) Fingerprint(ctx context.Context, dir string) (string, error) {
	if _, err := git(ctx, dir, "rev-parse", "--is-inside-work-tree"); err != nil {
		return "", err
	}

	// Porcelain paths are relative to the top level, not to dir.
	top, err := git(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	top = strings.TrimSpace(top)

	head, err := git(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		head = NoHead
	}

	status, err := git(ctx, dir, "status", "--porcelain", "-z", "--untracked-files=all", "--", ".")
	if err != nil {
		return "", err
	}

	parts := []string{strings.TrimSpace(head), status}
	for _, p := range statusPaths(status) {
		info, err := os.Stat(filepath.Join(top, filepath.FromSlash(p)))
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", p, info.ModTime().UnixNano(), info.Size()))
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(sum[:]), nil
}

// statusPaths extracts the paths from `git status --porcelain -z` output.
// Entries are "XY PATH"; renames and copies are followed by an extra
// NUL-terminated source path, which is skipped.
func statusPaths(status string) []string {
	var paths []string
	entries := strings.Split(status, "\x00")
	for i := 0; i < len(entries); i++ {
		e := entries[i]
		if len(e) < 4 {
			continue
		}
		paths = append(paths, e[3:])
		if e[0] == 'R' || e[0] == 'C' {
			i++
		}
	}
	return paths
}

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(stderr.String()), err)
	}
	return string(out), nil
}
