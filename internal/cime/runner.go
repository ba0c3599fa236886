package cime

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// Runner executes case scripts in a working directory. Output, when set,
// receives a copy of both streams as they are produced.
type Runner struct {
	Output io.Writer
}

// Run executes name with args in dir and returns its stdout.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if r != nil && r.Output != nil {
		cmd.Stdout = io.MultiWriter(&stdout, r.Output)
		cmd.Stderr = io.MultiWriter(&stderr, r.Output)
	}
	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return stdout.String(), &ExternalCommandError{
			Command:  append([]string{name}, args...),
			Dir:      dir,
			ExitCode: code,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return stdout.String(), nil
}
