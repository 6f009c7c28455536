// Package fingerprint computes a short digest of a working tree's state so
// the run loop can tell whether an agent invocation changed anything.
package fingerprint

import (
	"context"
	"fmt"

	"github.com/SimonPurdie/geoff/internal/logging"
)

// Strategy computes a fingerprint of dir. An error means the strategy does
// not apply and the next one should be tried.
type Strategy interface {
	Name() string
	Fingerprint(ctx context.Context, dir string) (string, error)
}

// Fingerprinter tries its strategies in order and returns the first result.
type Fingerprinter struct {
	Strategies []Strategy
}

// New returns a Fingerprinter that prefers git and falls back to a plain
// directory walk.
func New() *Fingerprinter {
	return &Fingerprinter{Strategies: []Strategy{GitStrategy{}, WalkStrategy{}}}
}

// Fingerprint returns the digest of dir from the first strategy that
// succeeds. It never fails; with no working strategy it returns "".
func (f *Fingerprinter) Fingerprint(ctx context.Context, dir string) string {
	for _, s := range f.Strategies {
		sum, err := s.Fingerprint(ctx, dir)
		if err == nil {
			return sum
		}
		logging.Debug(fmt.Sprintf("fingerprint: %s unavailable: %v", s.Name(), err))
	}
	return ""
}
