package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewRootCmd tests root command construction.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	if cmd.Use != "fetchdocs" {
		t.Errorf("unexpected use %q", cmd.Use)
	}

	want := map[string]bool{
		"fetch":   false,
		"runs":    false,
		"init":    false,
		"version": false,
	}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %q registered", name)
		}
	}
}

// TestRootCmdHelp verifies the help text mentions the destructive
// output directory behavior.
func TestRootCmdHelp(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !strings.Contains(buf.String(), "destroyed and recreated") {
		t.Errorf("expected destructive-reset warning in help, got:\n%s", buf.String())
	}
}

// TestRootCmdUnknownCommand verifies unknown subcommands error out.
func TestRootCmdUnknownCommand(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"no-such-command"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown command")
	}
}
