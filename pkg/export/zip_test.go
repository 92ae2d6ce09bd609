package export

import (
	"archive/zip"
	"crypto/rand"
	"errors"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/jn-tool/jn/pkg/crypto"
	"github.com/jn-tool/jn/pkg/journal"
)

func testStore(t *testing.T) (*journal.Store, []byte) {
	t.Helper()
	s := journal.New(t.TempDir())

	key := make([]byte, crypto.KeyLength)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	codec, err := journal.Encrypted(key)
	if err != nil {
		t.Fatalf("Encrypted() error = %v", err)
	}

	if err := s.Write("work", "2024-01-01", "md", []byte("plain note"), journal.Plain()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := s.Write("work", "2024-01-02", "md", []byte("secret note"), codec); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := s.Write("daily", "monday", "txt", []byte("daily note"), journal.Plain()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	return s, key
}

func zipContents(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open archive %s: %v", path, err)
	}
	defer r.Close()

	contents := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s in archive: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s in archive: %v", f.Name, err)
		}
		contents[f.Name] = string(data)
	}
	return contents
}

// TestZipWithKey verifies a full export: plaintext of every entry,
// including decrypted ones, lands in the archive
func TestZipWithKey(t *testing.T) {
	s, key := testStore(t)
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	res, path, err := Zip(s, ZipOptions{Dir: t.TempDir(), Key: key, Now: now})
	if err != nil {
		t.Fatalf("Zip() error = %v", err)
	}
	if len(res.Exported) != 3 || len(res.Skipped) != 0 {
		t.Errorf("Result = %+v, want 3 exported, 0 skipped", res)
	}

	contents := zipContents(t, path)
	want := map[string]string{
		"work/2024-01-01.md": "plain note",
		"work/2024-01-02.md": "secret note",
		"daily/monday.txt":   "daily note",
	}
	for name, body := range want {
		if contents[name] != body {
			t.Errorf("archive entry %s = %q, want %q", name, contents[name], body)
		}
	}
}

// TestZipWithoutKey verifies encrypted entries are skipped, not exported
// as ciphertext
func TestZipWithoutKey(t *testing.T) {
	s, _ := testStore(t)

	res, path, err := Zip(s, ZipOptions{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Zip() error = %v", err)
	}
	if !slices.Contains(res.Skipped, "work/2024-01-02.md") {
		t.Errorf("Skipped = %v, want to include the encrypted entry", res.Skipped)
	}

	contents := zipContents(t, path)
	if _, ok := contents["work/2024-01-02.md"]; ok {
		t.Error("encrypted entry leaked into the archive without a key")
	}
}

// TestZipWorkspaceFilter verifies the workspace filter
func TestZipWorkspaceFilter(t *testing.T) {
	s, key := testStore(t)

	res, path, err := Zip(s, ZipOptions{Dir: t.TempDir(), Key: key, Workspaces: []string{"daily"}})
	if err != nil {
		t.Fatalf("Zip() error = %v", err)
	}
	if !slices.Equal(res.Exported, []string{"daily/monday.txt"}) {
		t.Errorf("Exported = %v, want only daily/monday.txt", res.Exported)
	}

	contents := zipContents(t, path)
	if len(contents) != 1 {
		t.Errorf("archive has %d entries, want 1", len(contents))
	}
}

// TestZipExisting verifies an existing archive is not silently replaced
func TestZipExisting(t *testing.T) {
	s, key := testStore(t)
	dir := t.TempDir()
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	if _, _, err := Zip(s, ZipOptions{Dir: dir, Key: key, Now: now}); err != nil {
		t.Fatalf("Zip() error = %v", err)
	}
	if _, _, err := Zip(s, ZipOptions{Dir: dir, Key: key, Now: now}); !errors.Is(err, ErrArchiveExists) {
		t.Errorf("Zip() over existing archive error = %v, want %v", err, ErrArchiveExists)
	}
	if _, _, err := Zip(s, ZipOptions{Dir: dir, Key: key, Now: now, Overwrite: true}); err != nil {
		t.Errorf("Zip() with Overwrite error = %v", err)
	}
}
