package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jn-tool/jn/internal/cli"
	"github.com/jn-tool/jn/pkg/crypto"
	"github.com/jn-tool/jn/pkg/journal"
)

// findEntry resolves a name to a single entry in the workspace. With
// fuzzy enabled the name is matched as a substring against every entry
// and ambiguity is an error.
func findEntry(ws, name string, fuzzy bool) (journal.Entry, error) {
	if !fuzzy {
		id, ext := journal.SplitName(name)
		return store.Stat(ws, id, ext)
	}

	entries, err := listEntries(ws)
	if err != nil {
		return journal.Entry{}, err
	}
	byName := make(map[string]journal.Entry, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		byName[e.Name()] = e
		names = append(names, e.Name())
	}

	matches, err := cli.MatchEntry(name, names)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("%w: no entry matching %q in workspace %s", journal.ErrEntryNotFound, name, ws)
	}
	if len(matches) > 1 {
		return journal.Entry{}, fmt.Errorf("%q matches multiple entries in workspace %s: %s",
			name, ws, strings.Join(cli.SortNames(matches), ", "))
	}
	return byName[matches[0]], nil
}

// readEntry reads an entry's plaintext, prompting for a passphrase
// when it is encrypted. The returned codec can write the entry back
// with the same encryption state; the caller must defer done, which
// wipes the derived key.
func readEntry(entry journal.Entry) (content []byte, codec journal.Codec, done func(), err error) {
	codec = journal.Plain()
	done = func() {}
	if entry.Encrypted {
		key, err := promptKey()
		if err != nil {
			return nil, nil, nil, err
		}
		done = func() { crypto.SecureWipe(key) }
		if codec, err = journal.Encrypted(key); err != nil {
			done()
			return nil, nil, nil, err
		}
	}

	content, err = store.Read(entry.Workspace, entry.ID, entry.Ext, codec)
	if errors.Is(err, crypto.ErrDecryptionFailed) {
		done()
		return nil, nil, nil, fmt.Errorf("cannot decrypt %s/%s: wrong passphrase or corrupted entry", entry.Workspace, entry.Name())
	}
	if err != nil {
		done()
		return nil, nil, nil, err
	}
	return content, codec, done, nil
}
