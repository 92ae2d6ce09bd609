package journal

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Filesystem layout constants. EncryptedSuffix is part of the on-disk
// format and must never change.
const (
	// WorkspacesDirName is the directory under the journal root holding
	// all workspace directories.
	WorkspacesDirName = "workspaces"

	// EncryptedSuffix marks encrypted entry files, appended after the
	// entry extension: <identifier>.<ext>.jenc
	EncryptedSuffix = ".jenc"

	// FileMode restricts entry and salt files to the owner.
	FileMode = 0o600

	// DirMode restricts journal directories to the owner.
	DirMode = 0o700
)

// Resolver maps (workspace, identifier, extension) to a unique path under
// the journal root. All names pass through NormalizeName before use, so two
// Unicode spellings of the same visible name resolve to one file and no
// resolved path can escape the root.
type Resolver struct {
	root string
}

// NewResolver returns a resolver rooted at root.
func NewResolver(root string) Resolver {
	return Resolver{root: root}
}

// NormalizeName normalizes a workspace or identifier name to NFC and
// validates it as a single filesystem-safe path segment. Returns
// ErrInvalidName for names that are empty after trimming, contain path
// separators, NUL, or traversal sequences, or start with a dot (reserved
// for temp files).
func NormalizeName(name string) (string, error) {
	name = norm.NFC.String(strings.TrimSpace(name))

	switch {
	case name == "":
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	case strings.ContainsAny(name, `/\`):
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.ContainsRune(name, 0):
		return "", fmt.Errorf("%w: %q contains NUL", ErrInvalidName, name)
	case strings.Contains(name, ".."):
		return "", fmt.Errorf("%w: %q contains a traversal sequence", ErrInvalidName, name)
	case strings.HasPrefix(name, "."):
		return "", fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	}

	return name, nil
}

// normalizeExt normalizes an extension: the leading dot is stripped and an
// empty extension is allowed (the entry file simply has no extension).
func normalizeExt(ext string) (string, error) {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return "", nil
	}
	return NormalizeName(ext)
}

// WorkspaceDir returns the directory holding a workspace's entries.
func (r Resolver) WorkspaceDir(workspace string) (string, error) {
	ws, err := NormalizeName(workspace)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.root, WorkspacesDirName, ws), nil
}

// Resolve returns the path of an entry file. The encrypted flag selects
// whether the EncryptedSuffix marker is appended, so callers always know
// from the name alone which codec a later read needs.
func (r Resolver) Resolve(workspace, identifier, extension string, encrypted bool) (string, error) {
	dir, err := r.WorkspaceDir(workspace)
	if err != nil {
		return "", err
	}
	id, err := NormalizeName(identifier)
	if err != nil {
		return "", err
	}
	ext, err := normalizeExt(extension)
	if err != nil {
		return "", err
	}

	name := id
	if ext != "" {
		name += "." + ext
	}
	if encrypted {
		name += EncryptedSuffix
	}

	path := filepath.Join(dir, name)

	// Normalization already rejects traversal; verify the containment
	// invariant anyway so a resolver bug can never escape the root.
	rel, err := filepath.Rel(r.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q resolves outside the journal root", ErrInvalidName, identifier)
	}

	return path, nil
}
