package main

import (
	"errors"
	"testing"

	"github.com/jn-tool/jn/pkg/journal"
)

func setupStore(t *testing.T) {
	t.Helper()
	store = journal.New(t.TempDir())
	for _, name := range []string{"2024-01-01", "2024-01-02", "notes"} {
		if err := store.Write("work", name, "md", []byte(name), journal.Plain()); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindEntryExact(t *testing.T) {
	setupStore(t)

	entry, err := findEntry("work", "2024-01-01.md", false)
	if err != nil {
		t.Fatal(err)
	}
	if entry.ID != "2024-01-01" || entry.Ext != "md" {
		t.Errorf("got %q.%q", entry.ID, entry.Ext)
	}

	if _, err := findEntry("work", "missing.md", false); !errors.Is(err, journal.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestFindEntryFuzzy(t *testing.T) {
	setupStore(t)

	tests := []struct {
		name    string
		pattern string
		wantID  string
		wantErr bool
	}{
		{name: "unique substring", pattern: "01-02", wantID: "2024-01-02"},
		{name: "full name", pattern: "notes.md", wantID: "notes"},
		{name: "ambiguous", pattern: "2024", wantErr: true},
		{name: "no match", pattern: "diary", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := findEntry("work", tt.pattern, true)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got entry %q", entry.Name())
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if entry.ID != tt.wantID {
				t.Errorf("got %q, want %q", entry.ID, tt.wantID)
			}
		})
	}
}

func TestResetFlags(t *testing.T) {
	if err := listCmd.Flags().Set("all", "true"); err != nil {
		t.Fatal(err)
	}
	if err := exportCmd.Flags().Set("workspace", "work"); err != nil {
		t.Fatal(err)
	}

	resetFlags(rootCmd)

	if listAll {
		t.Error("bool flag not reset")
	}
	if listCmd.Flags().Changed("all") {
		t.Error("changed state not cleared")
	}
	if len(exportWorkspaces) != 0 {
		t.Errorf("slice flag not reset: %v", exportWorkspaces)
	}
}
