package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// ErrMalformedLayer marks a layer file that exists but is not a YAML mapping.
var ErrMalformedLayer = errors.New("malformed config layer")

// Layer is one configuration source: field name to raw YAML value.
type Layer map[string]any

// Has reports whether key is set to a non-null value.
func (l Layer) Has(key string) bool {
	v, ok := l[key]
	return ok && v != nil
}

// Clone returns a shallow copy of l. A nil layer clones to an empty one.
func (l Layer) Clone() Layer {
	out := make(Layer, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Keys returns the layer's keys in sorted order.
func (l Layer) Keys() []string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadLayer reads the YAML mapping at path.
//
// The returned layer is always usable: a missing file yields an empty layer
// and a nil error; an unreadable or malformed file yields an empty layer and
// an error describing why (wrapping ErrMalformedLayer for parse failures).
func LoadLayer(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Layer{}, nil
		}
		return Layer{}, fmt.Errorf("read config layer: %w", err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Layer{}, fmt.Errorf("%w %s: %v", ErrMalformedLayer, path, err)
	}
	if m == nil {
		return Layer{}, nil
	}
	return Layer(m), nil
}

// SaveLayer writes l to path as YAML.
//
// The write holds an exclusive lock on path+".lock" and replaces the file
// through a temp file and rename, so readers never see a partial document.
func SaveLayer(path string, l Layer) error {
	if l == nil {
		l = Layer{}
	}
	data, err := yaml.Marshal(map[string]any(l))
	if err != nil {
		return fmt.Errorf("marshal config layer: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".geoff-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	committed = true
	return nil
}
