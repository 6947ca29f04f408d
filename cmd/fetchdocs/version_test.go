package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestVersionCmd tests version output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "fetchdocs version") {
		t.Errorf("expected version line, got %q", out)
	}
	if !strings.Contains(out, "commit:") || !strings.Contains(out, "built:") {
		t.Errorf("expected commit and build date lines, got %q", out)
	}
}

// TestGetVersion tests the version resolution fallback chain.
func TestGetVersion(t *testing.T) {
	// Not parallel: mutates the package-level version variable.

	orig := version
	defer func() { version = orig }()

	version = "v1.2.3"
	if got := getVersion(); got != "v1.2.3" {
		t.Errorf("expected ldflags version to win, got %q", got)
	}

	version = ""
	if got := getVersion(); got == "" {
		t.Error("expected a non-empty fallback version")
	}
}
