package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"nvimcmd/internal/editor"
	"nvimcmd/internal/testsupport"
)

type cliTestEnv struct {
	session  *testsupport.FakeEditor
	env      map[string]string
	dialErr  error
	dials    int
	lastAddr string
	home     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	return &cliTestEnv{
		session: testsupport.NewFakeEditor(4),
		env:     map[string]string{"NVIM": "/run/user/1000/nvim.42.0"},
		home:    testsupport.IsolateHome(t),
	}
}

func (e *cliTestEnv) dial(_ context.Context, address string, _ editor.Options) (editorSession, error) {
	e.dials++
	e.lastAddr = address
	if e.dialErr != nil {
		return nil, e.dialErr
	}
	return e.session, nil
}

func (e *cliTestEnv) lookupEnv(name string) (string, bool) {
	value, ok := e.env[name]
	return value, ok
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := buildRootCommand(env.dial, env.lookupEnv)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
