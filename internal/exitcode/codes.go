// Package exitcode defines named exit codes for the geoff CLI.
//
// Normal loop terminations (iteration limit, stuck, frozen, cancelled) all
// exit with Success; only misconfiguration and a missing agent are failures.
package exitcode

const (
	Success       = 0   // Prompt printed, agent run finished, or loop stopped normally
	Error         = 1   // Invalid arguments or unexpected I/O failure
	Invalid       = 2   // Configuration failed validation; nothing was run
	AgentNotFound = 127 // Agent executable missing or could not be launched
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Invalid:
		return "Invalid"
	case AgentNotFound:
		return "AgentNotFound"
	default:
		return "unknown"
	}
}
