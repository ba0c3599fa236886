package cime

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript installs an executable shell script that appends its working
// directory and arguments to calls.log beside it, then runs body.
func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	script := "#!/bin/sh\n" +
		"echo \"$(pwd) $0 $*\" >> \"" + filepath.Join(dir, "calls.log") + "\"\n" +
		body + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
}

func readCalls(t *testing.T, dir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "calls.log"))
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestCloneCommandFlags(t *testing.T) {
	c := New("/cime/scripts")
	assert.Equal(t,
		[]string{"/cime/scripts/create_clone", "--case", "/c/new", "--clone", "/c/root", "--cime-output-root", "/o", "--keepexe"},
		c.CloneCommand("/c/root", "/c/new", "/o"))

	c = New("/cime/scripts", WithKeepExe(false))
	assert.Equal(t,
		[]string{"/cime/scripts/create_clone", "--case", "/c/new", "--clone", "/c/root"},
		c.CloneCommand("/c/root", "/c/new", ""))
}

func TestCloneRunsCreateClone(t *testing.T) {
	scripts := t.TempDir()
	writeScript(t, scripts, "create_clone", `mkdir -p "$2"; echo cloned`)
	cases := t.TempDir()
	var out bytes.Buffer
	c := New(scripts, WithOutput(&out))

	casePath := filepath.Join(cases, "F__a_1")
	require.NoError(t, c.Clone(context.Background(), "/root/case", casePath, "/scratch/F__a_1"))

	assert.DirExists(t, casePath)
	calls := readCalls(t, scripts)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], "--case "+casePath+" --clone /root/case --cime-output-root /scratch/F__a_1 --keepexe")
	assert.Contains(t, out.String(), "cloned")
}

func TestSetAndQueryVariable(t *testing.T) {
	casePath := t.TempDir()
	writeScript(t, casePath, "xmlchange", "")
	writeScript(t, casePath, "xmlquery", `echo "	RESUBMIT: 3"`)
	c := New("")

	require.NoError(t, c.SetVariable(context.Background(), casePath, "RESUBMIT", "3"))
	got, err := c.QueryVariable(context.Background(), casePath, "RESUBMIT")
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	calls := readCalls(t, casePath)
	require.Len(t, calls, 2)
	assert.True(t, strings.HasPrefix(calls[0], casePath+" "), "xmlchange should run inside the case")
	assert.True(t, strings.HasSuffix(calls[0], "RESUBMIT=3"))
	assert.True(t, strings.HasSuffix(calls[1], "xmlquery RESUBMIT"))
}

func TestQueryVariableEmptyOutput(t *testing.T) {
	casePath := t.TempDir()
	writeScript(t, casePath, "xmlquery", "")
	_, err := New("").QueryVariable(context.Background(), casePath, "RESUBMIT")
	require.ErrorIs(t, err, ErrUnexpectedOutput)
}

func TestFailedCommandReturnsExternalCommandError(t *testing.T) {
	casePath := t.TempDir()
	writeScript(t, casePath, "case.submit", `echo "no batch system" >&2; exit 4`)

	err := New("").Submit(context.Background(), casePath)
	require.Error(t, err)
	var cmdErr *ExternalCommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 4, cmdErr.ExitCode)
	assert.Equal(t, casePath, cmdErr.Dir)
	assert.Equal(t, []string{SubmitCommand(casePath)}, cmdErr.Command)
	assert.Contains(t, err.Error(), "no batch system")
}

func TestMissingScriptFails(t *testing.T) {
	err := New("").SetVariable(context.Background(), t.TempDir(), "A", "1")
	var cmdErr *ExternalCommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
}

func TestDestroy(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "case")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "run"), 0o755))
	c := New("")
	require.NoError(t, c.Destroy(dir))
	assert.NoDirExists(t, dir)
	require.NoError(t, c.Destroy(dir))
	require.Error(t, c.Destroy("/"))
	require.Error(t, c.Destroy(" "))
}
