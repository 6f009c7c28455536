// Package config defines the geoff configuration model and resolves it from
// three layers.
//
// Ordinary fields are merged with the precedence chain: built-in defaults <
// global file (~/.geoff/geoff.yaml) < repo file (.geoff/geoff.yaml). The
// prompt template fields ("base strings") reverse the last step: a value in
// the global file always beats the repo file, and any base string missing
// from the global file is written back to it on every resolution.
package config

// Task modes select which task-source line the prompt carries.
const (
	TaskModeTasklist = "tasklist"
	TaskModeOneOff   = "oneoff"
)

// DefaultModel means "let the agent pick"; no model flag is passed.
const DefaultModel = "default"

// Built-in base-string values.
const (
	DefaultTasklistStudy         = "study {tasklist} and pick the most important thing to do."
	DefaultBackpressureHeader    = "IMPORTANT:"
	DefaultBreadcrumbInstruction = "if you ran into difficulties due to a lack of information about the project or environment, which you then resolved, leave a note about it in {breadcrumbs} to help future agents."
	DefaultTasklistUpdate        = "update {tasklist} when the task is done"
)

// DefaultBackpressureLines are the built-in backpressure instructions.
var DefaultBackpressureLines = []string{
	"- author property based tests or unit tests (whichever is best)",
	"- after performing your task run the tests",
	"- when tests pass, commit to deploy changes",
}

// Config holds every field of the prompt configuration. After resolution all
// fields are populated.
type Config struct {
	// Orientation.
	StudyDocs []string
	Model     string

	// Breadcrumbs.
	BreadcrumbsFile   string
	BreadcrumbEnabled bool

	// Task source.
	TaskMode     string
	TasklistFile string
	OneOffPrompt string

	BackpressureEnabled bool

	// Loop limits. MaxFrozen is in minutes; zero disables it.
	MaxIterations int
	MaxStuck      int
	MaxFrozen     int

	// Base strings (prompt templates).
	PromptTasklistStudy         string
	PromptBackpressureHeader    string
	PromptBackpressureLines     []string
	PromptBreadcrumbInstruction string
	PromptTasklistUpdate        string
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		StudyDocs:           []string{"docs/SPEC.md"},
		Model:               DefaultModel,
		BreadcrumbsFile:     "docs/BREADCRUMBS.md",
		BreadcrumbEnabled:   true,
		TaskMode:            TaskModeTasklist,
		TasklistFile:        "docs/PLAN.md",
		OneOffPrompt:        "",
		BackpressureEnabled: true,
		MaxIterations:       0,
		MaxStuck:            2,
		MaxFrozen:           0,

		PromptTasklistStudy:         DefaultTasklistStudy,
		PromptBackpressureHeader:    DefaultBackpressureHeader,
		PromptBackpressureLines:     append([]string(nil), DefaultBackpressureLines...),
		PromptBreadcrumbInstruction: DefaultBreadcrumbInstruction,
		PromptTasklistUpdate:        DefaultTasklistUpdate,
	}
}
