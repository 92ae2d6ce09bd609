// Package journal implements the encrypted journal storage engine.
//
// A journal root holds any number of workspaces, each a directory under
// <root>/workspaces. A workspace holds entries: one flat file per entry,
// named <identifier>.<extension>, with a fixed ".jenc" suffix appended when
// the entry is encrypted. The suffix is the sole indicator of encryption;
// file content is never sniffed to decide how to read it. Changing the
// suffix would break every previously written journal, so it is frozen.
//
// Entries are written atomically (temp file in the target directory, then
// rename), so a crash mid-write never replaces a good entry with a partial
// one. Encryption is per-operation: every store operation takes an explicit
// Codec, either Plain or Encrypted with a derived key. Keys are derived with
// Argon2id from a passphrase and a per-root salt file and are never
// persisted.
package journal

import (
	"errors"
	"path/filepath"
	"strings"
)

// Sentinel errors returned by the store.
var (
	// ErrInvalidName indicates a workspace or entry name that is empty
	// after normalization or contains path separators or traversal
	// sequences.
	ErrInvalidName = errors.New("journal: invalid workspace or entry name")

	// ErrEntryNotFound indicates the resolved entry file does not exist.
	ErrEntryNotFound = errors.New("journal: entry not found")
)

// Entry describes one journal entry as found on disk.
type Entry struct {
	// Workspace is the normalized workspace name.
	Workspace string
	// ID is the entry identifier (filename without extension and marker).
	ID string
	// Ext is the file extension without the leading dot; empty if none.
	Ext string
	// Encrypted reports whether the on-disk file carries the encrypted
	// marker suffix.
	Encrypted bool
}

// Name returns the user-visible entry name, identifier plus extension.
// It never includes the encrypted marker.
func (e Entry) Name() string {
	if e.Ext == "" {
		return e.ID
	}
	return e.ID + "." + e.Ext
}

// SplitName splits a user-supplied entry name like "2024-01-01.md" into
// identifier and extension. A name without a dot has an empty extension.
func SplitName(name string) (id, ext string) {
	e := filepath.Ext(name)
	return strings.TrimSuffix(name, e), strings.TrimPrefix(e, ".")
}

// splitEntryName parses an on-disk filename back into identifier,
// extension, and encryption state. Inverse of Resolver.Resolve's naming.
func splitEntryName(filename string) (id, ext string, encrypted bool) {
	if strings.HasSuffix(filename, EncryptedSuffix) {
		encrypted = true
		filename = strings.TrimSuffix(filename, EncryptedSuffix)
	}
	id, ext = SplitName(filename)
	return id, ext, encrypted
}
