// Package cime drives the case scripts of a CIME installation: create_clone
// from the scripts directory, and xmlchange, xmlquery and case.submit from
// inside each case.
package cime

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Client issues case commands. Every call builds a fresh command.
type Client struct {
	scriptsDir string
	keepExe    bool
	runner     *Runner
}

// Option customises a Client.
type Option func(*Client)

// WithKeepExe passes --keepexe to create_clone so clones share the root build.
func WithKeepExe(keep bool) Option {
	return func(c *Client) { c.keepExe = keep }
}

// WithOutput streams command output to w.
func WithOutput(w io.Writer) Option {
	return func(c *Client) { c.runner.Output = w }
}

// New returns a client for the scripts under scriptsDir.
func New(scriptsDir string, opts ...Option) *Client {
	c := &Client{scriptsDir: scriptsDir, keepExe: true, runner: &Runner{}}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// ScriptsDir reports the configured scripts directory.
func (c *Client) ScriptsDir() string { return c.scriptsDir }

// CloneCommand returns the create_clone invocation for a new case.
func (c *Client) CloneCommand(root, casePath, outputPath string) []string {
	cmd := []string{filepath.Join(c.scriptsDir, "create_clone"), "--case", casePath, "--clone", root}
	if outputPath != "" {
		cmd = append(cmd, "--cime-output-root", outputPath)
	}
	if c.keepExe {
		cmd = append(cmd, "--keepexe")
	}
	return cmd
}

// Clone creates casePath as a clone of root.
func (c *Client) Clone(ctx context.Context, root, casePath, outputPath string) error {
	if c.scriptsDir == "" {
		return fmt.Errorf("cime: scripts directory not configured")
	}
	cmd := c.CloneCommand(root, casePath, outputPath)
	_, err := c.runner.Run(ctx, filepath.Dir(casePath), cmd[0], cmd[1:]...)
	return err
}

// Destroy removes a case or output directory and everything beneath it.
func (c *Client) Destroy(path string) error {
	if strings.TrimSpace(path) == "" || filepath.Clean(path) == string(filepath.Separator) {
		return fmt.Errorf("cime: refusing to remove %q", path)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("cime: remove %s: %w", path, err)
	}
	return nil
}

// SetVariable runs xmlchange KEY=VALUE in the case.
func (c *Client) SetVariable(ctx context.Context, casePath, key, value string) error {
	_, err := c.runner.Run(ctx, casePath, filepath.Join(casePath, "xmlchange"), key+"="+value)
	return err
}

// QueryVariable runs xmlquery KEY in the case and returns the last
// whitespace-separated field of its output.
func (c *Client) QueryVariable(ctx context.Context, casePath, key string) (string, error) {
	out, err := c.runner.Run(ctx, casePath, filepath.Join(casePath, "xmlquery"), key)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: xmlquery %s in %s printed nothing", ErrUnexpectedOutput, key, casePath)
	}
	return fields[len(fields)-1], nil
}

// SubmitCommand returns the submission script of a case.
func SubmitCommand(casePath string) string {
	return filepath.Join(casePath, "case.submit")
}

// SubmitCommand returns the submission script of a case.
func (c *Client) SubmitCommand(casePath string) string {
	return SubmitCommand(casePath)
}

// Submit runs case.submit in the case.
func (c *Client) Submit(ctx context.Context, casePath string) error {
	_, err := c.runner.Run(ctx, casePath, SubmitCommand(casePath))
	return err
}
