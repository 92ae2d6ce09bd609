// Package editor launches the user's text editor on journal entries.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// fallback is used when neither EDITOR nor VISUAL is set.
const fallback = "vi"

// Editor invokes an external editor command.
type Editor struct {
	command string
}

// New resolves the editor from $EDITOR, then $VISUAL, then vi.
func New() Editor {
	if e := os.Getenv("EDITOR"); e != "" {
		return Editor{command: e}
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return Editor{command: e}
	}
	return Editor{command: fallback}
}

// Command returns the resolved editor command.
func (e Editor) Command() string {
	return e.command
}

// Edit opens path in the editor and waits for it to exit.
func (e Editor) Edit(path string) error {
	cmd := exec.Command(e.command, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor: %s failed on %s: %w", e.command, path, err)
	}
	return nil
}

// EditTemp writes content to a temp file named after the entry, opens it in
// the editor, and returns the edited bytes. The temp file is removed
// afterwards; this is best-effort plaintext hygiene, not a secure-wipe
// guarantee. Used for encrypted entries so ciphertext never reaches the
// editor and plaintext never lands next to the journal.
func (e Editor) EditTemp(name string, content []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "jn-*")
	if err != nil {
		return nil, fmt.Errorf("editor: failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return nil, fmt.Errorf("editor: failed to stage %s: %w", name, err)
	}

	if err := e.Edit(path); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("editor: failed to read back %s: %w", name, err)
	}
	return edited, nil
}
