package config

// Resolution is the outcome of merging the three layers.
type Resolution struct {
	// Config is the fully populated, merged configuration.
	Config *Config
	// Global is the global layer with every missing base string filled in.
	// It only needs persisting when Materialized is non-empty.
	Global Layer
	// Materialized lists the base-string keys added to Global.
	Materialized []string
	// Ignored holds one error per layer value that could not be decoded
	// into its field; the field kept its default.
	Ignored []error
}

// ResolveOrdinary merges the ordinary fields: repo beats global, global
// beats defaults. Keys outside the schema are ignored.
func ResolveOrdinary(defaults, global, repo Layer) Layer {
	out := Layer{}
	for _, f := range FieldsOf(Ordinary) {
		out[f.Key] = defaults[f.Key]
		if global.Has(f.Key) {
			out[f.Key] = global[f.Key]
		}
		if repo.Has(f.Key) {
			out[f.Key] = repo[f.Key]
		}
	}
	return out
}

// ResolveBaseStrings merges the base-string fields: an explicit global value
// always wins, then repo, then defaults.
func ResolveBaseStrings(defaults, global, repo Layer) Layer {
	out := Layer{}
	for _, f := range FieldsOf(BaseString) {
		switch {
		case global.Has(f.Key):
			out[f.Key] = global[f.Key]
		case repo.Has(f.Key):
			out[f.Key] = repo[f.Key]
		default:
			out[f.Key] = defaults[f.Key]
		}
	}
	return out
}

// FromLayers builds a Config from resolved layers. A value that does not
// decode into its field leaves the built-in default in place and is reported.
func FromLayers(layers ...Layer) (*Config, []error) {
	cfg := NewDefaultConfig()
	var ignored []error
	for _, l := range layers {
		for _, key := range l.Keys() {
			f, ok := LookupField(key)
			if !ok || !l.Has(key) {
				continue
			}
			if err := f.Assign(cfg, l[key]); err != nil {
				ignored = append(ignored, err)
			}
		}
	}
	return cfg, ignored
}

// Materialize returns a copy of global in which every base-string key that
// global lacks is set to its resolved value from base, plus the keys added.
// Keys already in global are never touched.
func Materialize(global, base Layer) (Layer, []string) {
	out := global.Clone()
	var added []string
	for _, f := range FieldsOf(BaseString) {
		if global.Has(f.Key) {
			continue
		}
		out[f.Key] = base[f.Key]
		added = append(added, f.Key)
	}
	return out, added
}

// Resolve merges defaults, global and repo into a Config and computes the
// global layer to persist. It performs no I/O.
func Resolve(defaults, global, repo Layer) Resolution {
	ordinary := ResolveOrdinary(defaults, global, repo)
	base := ResolveBaseStrings(defaults, global, repo)
	cfg, ignored := FromLayers(ordinary, base)
	// Materialize the decoded values so a mistyped repo value is never
	// pinned into the global layer.
	persist, added := Materialize(global, ToLayer(cfg, BaseString))
	return Resolution{
		Config:       cfg,
		Global:       persist,
		Materialized: added,
		Ignored:      ignored,
	}
}
