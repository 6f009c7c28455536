package agent

import "os/exec"

// Lookup resolves command on PATH. A miss is reported as a NotFoundError so
// callers can fail before the first iteration.
func Lookup(command string) (string, error) {
	if command == "" {
		command = DefaultCommand
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return "", &NotFoundError{Command: command, Err: err}
	}
	return path, nil
}

// CheckAvailability reports, per command, whether it resolves on PATH.
func CheckAvailability(commands ...string) map[string]bool {
	found := make(map[string]bool, len(commands))
	for _, c := range commands {
		_, err := Lookup(c)
		found[c] = err == nil
	}
	return found
}
