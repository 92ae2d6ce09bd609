package journal

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/jn-tool/jn/pkg/crypto"
)

// Store is the journal store façade: workspace-scoped read, write, list,
// rename, and delete of entries, encrypted or not, behind one interface.
//
// The store holds no mutable state beyond its root path. It is safe for
// concurrent use on distinct entries; concurrent writers to the same entry
// resolve to last-rename-wins thanks to the atomic write, never to a
// corrupted file.
type Store struct {
	root     string
	resolver Resolver
}

// New creates a store for the journal root directory. The directory does
// not have to exist yet; it is created on first write.
func New(root string) *Store {
	return &Store{
		root:     root,
		resolver: NewResolver(root),
	}
}

// Root returns the journal root directory.
func (s *Store) Root() string {
	return s.root
}

// Resolver exposes the store's path resolver.
func (s *Store) Resolver() Resolver {
	return s.resolver
}

// DeriveKey derives this journal's encryption key from a passphrase,
// creating the per-root salt file on first use. The caller owns the key
// and must wipe it with crypto.SecureWipe when the operation completes.
func (s *Store) DeriveKey(passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, crypto.ErrEmptyPassphrase
	}
	salt, err := LoadOrCreateSalt(s.root)
	if err != nil {
		return nil, err
	}
	return crypto.DeriveKey(passphrase, salt)
}

// Write stores an entry, creating the workspace directory as needed and
// silently overwriting any previous content. The write is atomic: the
// encoded bytes go to a temp file in the workspace directory which is then
// renamed over the target, so a crash mid-write never leaves a truncated
// entry in place of a good one.
func (s *Store) Write(workspace, identifier, extension string, plaintext []byte, codec Codec) error {
	path, err := s.resolver.Resolve(workspace, identifier, extension, codec.Encrypted())
	if err != nil {
		return err
	}

	data, err := codec.Encode(plaintext)
	if err != nil {
		return fmt.Errorf("journal: failed to encode %s/%s: %w", workspace, identifier, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("journal: failed to create workspace directory for %s: %w", workspace, err)
	}

	return atomicWrite(path, data)
}

// atomicWrite writes data to path via a temp file in the same directory
// followed by a rename.
func atomicWrite(path string, data []byte) error {
	dir, base := filepath.Split(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("journal: failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("journal: failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("journal: failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, FileMode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("journal: failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("journal: failed to replace %s: %w", path, err)
	}

	return nil
}

// Read returns an entry's plaintext. The codec must match the entry's
// on-disk form: Plain for a plain entry, Encrypted with the right key for
// an encrypted one. Returns ErrEntryNotFound when the resolved file does
// not exist; codec failures (crypto.ErrDecryptionFailed,
// crypto.ErrContainerTooShort) pass through wrapped with workspace and
// identifier context, so callers can distinguish "no such entry" from
// "entry exists but cannot be decrypted".
func (s *Store) Read(workspace, identifier, extension string, codec Codec) ([]byte, error) {
	path, err := s.resolver.Resolve(workspace, identifier, extension, codec.Encrypted())
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrEntryNotFound, workspace, identifier)
		}
		return nil, fmt.Errorf("journal: failed to read %s: %w", path, err)
	}

	plaintext, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("journal: failed to decode %s/%s: %w", workspace, identifier, err)
	}

	return plaintext, nil
}

// Stat locates an entry without reading it, checking the plain name first
// and then the encrypted one. The returned Entry tells the caller which
// codec a read needs. Returns ErrEntryNotFound if neither form exists.
func (s *Store) Stat(workspace, identifier, extension string) (Entry, error) {
	for _, encrypted := range []bool{false, true} {
		path, err := s.resolver.Resolve(workspace, identifier, extension, encrypted)
		if err != nil {
			return Entry{}, err
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			ws, _ := NormalizeName(workspace)
			id, _ := NormalizeName(identifier)
			ext, _ := normalizeExt(extension)
			return Entry{Workspace: ws, ID: id, Ext: ext, Encrypted: encrypted}, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s/%s", ErrEntryNotFound, workspace, identifier)
}

// Entries returns a lazy sequence of the workspace's entries in directory
// enumeration order. The sequence is restartable: every range re-reads the
// directory. A workspace with no entries, or whose directory does not exist
// yet, yields an empty sequence. Callers needing sorted output sort
// explicitly.
func (s *Store) Entries(workspace string) (iter.Seq[Entry], error) {
	dir, err := s.resolver.WorkspaceDir(workspace)
	if err != nil {
		return nil, err
	}
	ws := filepath.Base(dir)

	return func(yield func(Entry) bool) {
		dirents, err := os.ReadDir(dir)
		if err != nil {
			// Absent workspace directory is an empty sequence, not an
			// error; entries may simply not have been written yet.
			return
		}
		for _, de := range dirents {
			if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
				continue
			}
			id, ext, encrypted := splitEntryName(de.Name())
			if !yield(Entry{Workspace: ws, ID: id, Ext: ext, Encrypted: encrypted}) {
				return
			}
		}
	}, nil
}

// Workspaces lists the workspace names that exist under the root, in
// directory enumeration order. A root with no workspaces yet yields an
// empty slice.
func (s *Store) Workspaces() ([]string, error) {
	dirents, err := os.ReadDir(filepath.Join(s.root, WorkspacesDirName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("journal: failed to list workspaces: %w", err)
	}

	var names []string
	for _, de := range dirents {
		if de.IsDir() {
			names = append(names, de.Name())
		}
	}
	return names, nil
}

// Remove deletes an entry in whichever form it exists on disk. Returns
// ErrEntryNotFound if the entry does not exist. No secure-wipe guarantee
// beyond the filesystem's own delete semantics.
func (s *Store) Remove(workspace, identifier, extension string) error {
	entry, err := s.Stat(workspace, identifier, extension)
	if err != nil {
		return err
	}

	path, err := s.resolver.Resolve(entry.Workspace, entry.ID, entry.Ext, entry.Encrypted)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s/%s", ErrEntryNotFound, workspace, identifier)
		}
		return fmt.Errorf("journal: failed to remove %s: %w", path, err)
	}
	return nil
}

// Rename moves an entry to a new identifier and extension within the same
// workspace, preserving its encryption state. Returns ErrEntryNotFound if
// the source does not exist.
func (s *Store) Rename(workspace, oldID, oldExt, newID, newExt string) error {
	entry, err := s.Stat(workspace, oldID, oldExt)
	if err != nil {
		return err
	}

	oldPath, err := s.resolver.Resolve(entry.Workspace, entry.ID, entry.Ext, entry.Encrypted)
	if err != nil {
		return err
	}
	newPath, err := s.resolver.Resolve(workspace, newID, newExt, entry.Encrypted)
	if err != nil {
		return err
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("journal: failed to rename %s/%s: %w", workspace, oldID, err)
	}
	return nil
}
