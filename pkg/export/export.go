// Package export assembles workspace contents into export targets.
//
// Exporters consume the journal store's listing and read operations and
// only ever see decrypted plaintext; the store's codec layer keeps them
// cipher-unaware. Entries that cannot be decrypted (no key supplied, or a
// wrong one) are skipped and reported, never exported as ciphertext.
package export

import (
	"fmt"
	"iter"

	"github.com/jn-tool/jn/pkg/journal"
)

// Source is the slice of the journal store the exporters consume.
// *journal.Store satisfies it.
type Source interface {
	Workspaces() ([]string, error)
	Entries(workspace string) (iter.Seq[journal.Entry], error)
	Read(workspace, identifier, extension string, codec journal.Codec) ([]byte, error)
}

// Result reports which entries were exported and which were skipped.
// Names are in workspace/entry form.
type Result struct {
	Exported []string
	Skipped  []string
}

// selectWorkspaces resolves the workspace list to export: the filter if
// given, otherwise every workspace in the source.
func selectWorkspaces(src Source, filter []string) ([]string, error) {
	if len(filter) > 0 {
		return filter, nil
	}
	ws, err := src.Workspaces()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return ws, nil
}

// readEntry reads one entry as plaintext, choosing the codec from the
// entry's on-disk form. ok is false when the entry has to be skipped:
// encrypted without a key, or undecryptable.
func readEntry(src Source, e journal.Entry, key []byte) (plaintext []byte, ok bool, err error) {
	codec := journal.Plain()
	if e.Encrypted {
		if len(key) == 0 {
			return nil, false, nil
		}
		codec, err = journal.Encrypted(key)
		if err != nil {
			return nil, false, err
		}
	}

	plaintext, err = src.Read(e.Workspace, e.ID, e.Ext, codec)
	if err != nil {
		if e.Encrypted {
			// Wrong key or corrupted container: skip, do not abort the
			// whole export.
			return nil, false, nil
		}
		return nil, false, err
	}
	return plaintext, true, nil
}
