package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldKind partitions the configuration fields by precedence rule.
type FieldKind int

const (
	// Ordinary fields resolve defaults < global < repo.
	Ordinary FieldKind = iota
	// BaseString fields resolve defaults < repo < global and are
	// materialized into the global layer.
	BaseString
)

func (k FieldKind) String() string {
	if k == BaseString {
		return "base-string"
	}
	return "ordinary"
}

// Field is one named configuration key bound to its Config struct field.
type Field struct {
	Key  string
	Kind FieldKind
	ref  func(*Config) any
}

// fields is the complete schema, in the order keys are reported.
var fields = []Field{
	{"study_docs", Ordinary, func(c *Config) any { return &c.StudyDocs }},
	{"model", Ordinary, func(c *Config) any { return &c.Model }},
	{"breadcrumbs_file", Ordinary, func(c *Config) any { return &c.BreadcrumbsFile }},
	{"task_mode", Ordinary, func(c *Config) any { return &c.TaskMode }},
	{"tasklist_file", Ordinary, func(c *Config) any { return &c.TasklistFile }},
	{"oneoff_prompt", Ordinary, func(c *Config) any { return &c.OneOffPrompt }},
	{"backpressure_enabled", Ordinary, func(c *Config) any { return &c.BackpressureEnabled }},
	{"breadcrumb_enabled", Ordinary, func(c *Config) any { return &c.BreadcrumbEnabled }},
	{"max_iterations", Ordinary, func(c *Config) any { return &c.MaxIterations }},
	{"max_stuck", Ordinary, func(c *Config) any { return &c.MaxStuck }},
	{"max_frozen", Ordinary, func(c *Config) any { return &c.MaxFrozen }},

	{"prompt_tasklist_study", BaseString, func(c *Config) any { return &c.PromptTasklistStudy }},
	{"prompt_backpressure_header", BaseString, func(c *Config) any { return &c.PromptBackpressureHeader }},
	{"prompt_backpressure_lines", BaseString, func(c *Config) any { return &c.PromptBackpressureLines }},
	{"prompt_breadcrumb_instruction", BaseString, func(c *Config) any { return &c.PromptBreadcrumbInstruction }},
	{"prompt_tasklist_update", BaseString, func(c *Config) any { return &c.PromptTasklistUpdate }},
}

var fieldIndex map[string]Field

func init() {
	fieldIndex = make(map[string]Field, len(fields))
	for _, f := range fields {
		fieldIndex[f.Key] = f
	}
}

// Fields returns every known field.
func Fields() []Field {
	return append([]Field(nil), fields...)
}

// FieldsOf returns the fields of the given kind, in schema order.
func FieldsOf(kind FieldKind) []Field {
	var out []Field
	for _, f := range fields {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// LookupField returns the field named key.
func LookupField(key string) (Field, bool) {
	f, ok := fieldIndex[key]
	return f, ok
}

// Value returns the field's current value in c. Slices are copied.
func (f Field) Value(c *Config) any {
	switch p := f.ref(c).(type) {
	case *string:
		return *p
	case *int:
		return *p
	case *bool:
		return *p
	case *[]string:
		return append([]string{}, *p...)
	default:
		panic(fmt.Sprintf("config: field %s has unsupported type %T", f.Key, p))
	}
}

// Assign decodes a raw layer value into the field. On a type mismatch the
// field is left unchanged and an error is returned.
func (f Field) Assign(c *Config, raw any) error {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%s: encode value: %w", f.Key, err)
	}

	switch p := f.ref(c).(type) {
	case *string:
		var v string
		if err := yaml.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%s: %w", f.Key, err)
		}
		*p = v
	case *int:
		var v int
		if err := yaml.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%s: %w", f.Key, err)
		}
		*p = v
	case *bool:
		var v bool
		if err := yaml.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%s: %w", f.Key, err)
		}
		*p = v
	case *[]string:
		var v []string
		if err := yaml.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%s: %w", f.Key, err)
		}
		if v == nil {
			v = []string{}
		}
		*p = v
	default:
		return fmt.Errorf("%s: unsupported field type %T", f.Key, p)
	}
	return nil
}

// Parse converts command-line arguments into a raw value for the field.
// String fields join args with a single space; list fields take each arg
// as one element.
func (f Field) Parse(args []string) (any, error) {
	switch f.ref(&Config{}).(type) {
	case *string:
		return strings.Join(args, " "), nil
	case *int:
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects exactly one integer, got %d values", f.Key, len(args))
		}
		v, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", f.Key, args[0])
		}
		return v, nil
	case *bool:
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects exactly one boolean, got %d values", f.Key, len(args))
		}
		v, err := strconv.ParseBool(strings.TrimSpace(args[0]))
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", f.Key, args[0])
		}
		return v, nil
	case *[]string:
		return append([]string{}, args...), nil
	default:
		return nil, fmt.Errorf("%s: unsupported field type", f.Key)
	}
}

// ToLayer renders the fields of c with one of the given kinds as a layer.
// With no kinds, every field is included.
func ToLayer(c *Config, kinds ...FieldKind) Layer {
	out := Layer{}
	for _, f := range fields {
		if len(kinds) > 0 && !hasKind(kinds, f.Kind) {
			continue
		}
		out[f.Key] = f.Value(c)
	}
	return out
}

// DefaultLayer is the in-memory defaults layer.
func DefaultLayer() Layer {
	return ToLayer(NewDefaultConfig())
}

func hasKind(kinds []FieldKind, k FieldKind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}
