package cime

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnexpectedOutput is returned when a query produces nothing parseable.
var ErrUnexpectedOutput = errors.New("cime: unexpected command output")

// ExternalCommandError records a failed script invocation.
type ExternalCommandError struct {
	Command  []string
	Dir      string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalCommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("cime: %s failed: %s", strings.Join(e.Command, " "), msg)
}

func (e *ExternalCommandError) Unwrap() error {
	return e.Err
}
