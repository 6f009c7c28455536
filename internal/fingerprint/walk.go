package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// walkDigestLen is the number of hex characters kept from the walk digest.
const walkDigestLen = 16

// WalkStrategy fingerprints any directory from the relative path, mtime and
// size of every regular file beneath it. It always succeeds.
type WalkStrategy struct{}

// Name implements Strategy.
func (WalkStrategy) Name() string { return "walk" }

// Fingerprint implements Strategy. WalkDir visits entries in lexical order,
// so the result is deterministic. Entries that cannot be read are omitted.
func (WalkStrategy) Fingerprint(_ context.Context, dir string) (string, error) {
	var parts []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", filepath.ToSlash(rel), info.ModTime().UnixNano(), info.Size()))
		return nil
	})

	sum := sha256.Sum256([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(sum[:])[:walkDigestLen], nil
}
