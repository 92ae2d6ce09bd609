package journal

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// TestNormalizeName tests name validation and normalization
func TestNormalizeName(t *testing.T) {
	valid := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "work", "work"},
		{"date identifier", "2024-01-01", "2024-01-01"},
		{"underscores", "work_space", "work_space"},
		{"surrounding space trimmed", "  notes  ", "notes"},
		{"unicode", "tagebuch-über", "tagebuch-über"},
	}

	for _, tt := range valid {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeName(tt.in)
			if err != nil {
				t.Fatalf("NormalizeName(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	invalid := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"only spaces", "   "},
		{"slash", "a/b"},
		{"backslash", `a\b`},
		{"traversal", ".."},
		{"embedded traversal", "a..b"},
		{"leading dot", ".hidden"},
		{"nul byte", "a\x00b"},
		{"absolute path", "/etc/passwd"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NormalizeName(tt.in); !errors.Is(err, ErrInvalidName) {
				t.Errorf("NormalizeName(%q) error = %v, want %v", tt.in, err, ErrInvalidName)
			}
		})
	}
}

// TestNormalizeNameNFC verifies composed and decomposed Unicode spellings
// of the same name resolve identically
func TestNormalizeNameNFC(t *testing.T) {
	composed := "café"          // é as a single code point
	decomposed := "café"       // e + combining acute
	a, err := NormalizeName(composed)
	if err != nil {
		t.Fatalf("NormalizeName(%q) error = %v", composed, err)
	}
	b, err := NormalizeName(decomposed)
	if err != nil {
		t.Fatalf("NormalizeName(%q) error = %v", decomposed, err)
	}
	if a != b {
		t.Errorf("NFC normalization mismatch: %q vs %q", a, b)
	}
}

// TestResolve tests path construction and the encrypted marker
func TestResolve(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)

	tests := []struct {
		name      string
		ws, id    string
		ext       string
		encrypted bool
		wantFile  string
	}{
		{"plain with extension", "work", "2024-01-01", "md", false, "2024-01-01.md"},
		{"encrypted with extension", "work", "2024-01-01", "md", true, "2024-01-01.md" + EncryptedSuffix},
		{"no extension", "work", "scratch", "", false, "scratch"},
		{"encrypted no extension", "work", "scratch", "", true, "scratch" + EncryptedSuffix},
		{"dotted extension input", "work", "notes", ".txt", false, "notes.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.ws, tt.id, tt.ext, tt.encrypted)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			want := filepath.Join(root, WorkspacesDirName, tt.ws, tt.wantFile)
			if got != want {
				t.Errorf("Resolve() = %q, want %q", got, want)
			}
		})
	}
}

// TestResolvePathSafety verifies no input escapes the journal root
func TestResolvePathSafety(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)

	tests := []struct {
		name   string
		ws, id string
	}{
		{"traversal workspace", "..", "entry"},
		{"traversal identifier", "work", "../../etc/passwd"},
		{"separator in identifier", "work", "a/b"},
		{"separator in workspace", "a/b", "entry"},
		{"empty workspace", "", "entry"},
		{"empty identifier", "work", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := r.Resolve(tt.ws, tt.id, "md", false)
			if err == nil {
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil || strings.HasPrefix(rel, "..") {
					t.Fatalf("Resolve(%q, %q) = %q escapes root", tt.ws, tt.id, path)
				}
				t.Fatalf("Resolve(%q, %q) = %q, want error", tt.ws, tt.id, path)
			}
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Resolve(%q, %q) error = %v, want %v", tt.ws, tt.id, err, ErrInvalidName)
			}
		})
	}
}

// TestSplitEntryName verifies the filename convention round-trips
func TestSplitEntryName(t *testing.T) {
	tests := []struct {
		filename  string
		id, ext   string
		encrypted bool
	}{
		{"2024-01-01.md", "2024-01-01", "md", false},
		{"2024-01-01.md.jenc", "2024-01-01", "md", true},
		{"scratch", "scratch", "", false},
		{"scratch.jenc", "scratch", "", true},
		{"notes.tar.gz", "notes.tar", "gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			id, ext, encrypted := splitEntryName(tt.filename)
			if id != tt.id || ext != tt.ext || encrypted != tt.encrypted {
				t.Errorf("splitEntryName(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.filename, id, ext, encrypted, tt.id, tt.ext, tt.encrypted)
			}
		})
	}
}
