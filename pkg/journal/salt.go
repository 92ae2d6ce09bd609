package journal

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Salt file constants. The salt is non-secret metadata: it exists so the
// same passphrase yields different keys on different journal roots.
const (
	// SaltFileName is the salt file kept directly under the journal root.
	SaltFileName = "journal.salt"

	// SaltLength is the salt size in bytes (128 bits).
	SaltLength = 16
)

// LoadOrCreateSalt returns the journal root's key-derivation salt, creating
// the salt file with fresh random bytes on first use. The file is written
// with O_EXCL so two concurrent first uses settle on a single salt.
func LoadOrCreateSalt(root string) ([]byte, error) {
	path := filepath.Join(root, SaltFileName)

	salt, err := os.ReadFile(path)
	if err == nil {
		if len(salt) != SaltLength {
			return nil, fmt.Errorf("journal: salt file %s is corrupted: %d bytes, want %d", path, len(salt), SaltLength)
		}
		return salt, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("journal: failed to read salt file %s: %w", path, err)
	}

	if err := os.MkdirAll(root, DirMode); err != nil {
		return nil, fmt.Errorf("journal: failed to create journal root %s: %w", root, err)
	}

	salt = make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("journal: failed to generate salt: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			// Another operation created the salt first; use theirs.
			return LoadOrCreateSalt(root)
		}
		return nil, fmt.Errorf("journal: failed to create salt file %s: %w", path, err)
	}

	if _, err := f.Write(salt); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("journal: failed to write salt file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("journal: failed to write salt file %s: %w", path, err)
	}

	return salt, nil
}
