package editor

import (
	"os"
	"testing"
)

// TestNew verifies editor resolution order
func TestNew(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	if e := New(); e.Command() != fallback {
		t.Errorf("New() with no env = %q, want %q", e.Command(), fallback)
	}

	t.Setenv("VISUAL", "emacs")
	if e := New(); e.Command() != "emacs" {
		t.Errorf("New() with VISUAL = %q, want emacs", e.Command())
	}

	t.Setenv("EDITOR", "nvim")
	if e := New(); e.Command() != "nvim" {
		t.Errorf("New() with EDITOR = %q, want nvim (EDITOR wins)", e.Command())
	}
}

// TestEditTemp round-trips content through a no-op "editor"
func TestEditTemp(t *testing.T) {
	// true(1) exits without touching the file, so the round trip returns
	// the staged content unchanged.
	e := Editor{command: "true"}

	got, err := e.EditTemp("2024-01-01.md", []byte("staged content"))
	if err != nil {
		t.Fatalf("EditTemp() error = %v", err)
	}
	if string(got) != "staged content" {
		t.Errorf("EditTemp() = %q, want staged content", got)
	}
}

// TestEditMissingEditor verifies a useful error for a broken editor command
func TestEditMissingEditor(t *testing.T) {
	e := Editor{command: "definitely-not-an-editor-binary"}

	f, err := os.CreateTemp(t.TempDir(), "entry-*")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	f.Close()

	if err := e.Edit(f.Name()); err == nil {
		t.Error("Edit() with missing binary should fail")
	}
}
