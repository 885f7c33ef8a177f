package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func TestNewAppRegistersAllSubcommands(t *testing.T) {
	app := newApp()

	want := []string{"recalc", "auto", "capacity", "validate", "watch"}
	got := make(map[string]bool, len(app.Commands))
	for _, cmd := range app.Commands {
		got[cmd.Name] = true
	}

	for _, name := range want {
		if !got[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestCommandNotFoundSuggestsClosestSubcommand(t *testing.T) {
	app := newApp()
	if app.CommandNotFound == nil {
		t.Fatal("CommandNotFound is not wired")
	}

	stderr := captureStderr(t, func() {
		app.CommandNotFound(nil, "recalc2")
	})

	if !strings.Contains(stderr, "recalc") {
		t.Errorf("stderr = %q, want a suggestion mentioning %q", stderr, "recalc")
	}
}

func TestCommandNotFoundWithNoCloseMatchOmitsSuggestion(t *testing.T) {
	app := newApp()

	stderr := captureStderr(t, func() {
		app.CommandNotFound(nil, "zzzzzzzzzz")
	})

	if strings.Contains(stderr, "did you mean") {
		t.Errorf("stderr = %q, want no suggestion for an unrelated name", stderr)
	}
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = orig

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("io.ReadAll: %v", err)
	}
	return bytes.NewBuffer(out).String()
}
