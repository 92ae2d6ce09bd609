package export

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrArchiveExists indicates the target archive already exists and
// Overwrite was not set.
var ErrArchiveExists = errors.New("export: archive already exists")

// ZipOptions configures the zip export target.
type ZipOptions struct {
	// Dir is the output directory; defaults to the working directory.
	Dir string

	// Workspaces optionally restricts which workspaces are exported.
	Workspaces []string

	// Key optionally decrypts encrypted entries. Without it they are
	// skipped.
	Key []byte

	// Overwrite replaces an existing archive instead of failing.
	Overwrite bool

	// Now stamps the archive name; zero means time.Now.
	Now time.Time
}

// ArchiveName returns the archive filename for a given day.
func ArchiveName(now time.Time) string {
	return fmt.Sprintf("journals.%s.zip", now.Format("2006-01-02"))
}

// Zip writes the selected workspaces into a date-stamped zip archive and
// returns the result along with the archive path. Entries are stored
// uncompressed; journal entries are small text notes and the archive is
// already the compact form people move around.
func Zip(src Source, opts ZipOptions) (Result, string, error) {
	var res Result

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	path := filepath.Join(dir, ArchiveName(now))

	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return res, path, fmt.Errorf("%w: %s", ErrArchiveExists, path)
		}
	}

	workspaces, err := selectWorkspaces(src, opts.Workspaces)
	if err != nil {
		return res, path, err
	}

	f, err := os.Create(path)
	if err != nil {
		return res, path, fmt.Errorf("export: failed to create %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	for _, ws := range workspaces {
		entries, err := src.Entries(ws)
		if err != nil {
			return res, path, err
		}

		for e := range entries {
			name := ws + "/" + e.Name()

			plaintext, ok, err := readEntry(src, e, opts.Key)
			if err != nil {
				return res, path, err
			}
			if !ok {
				res.Skipped = append(res.Skipped, name)
				continue
			}

			w, err := zw.CreateHeader(&zip.FileHeader{
				Name:     name,
				Method:   zip.Store,
				Modified: now,
			})
			if err != nil {
				return res, path, fmt.Errorf("export: failed to add %s: %w", name, err)
			}
			if _, err := w.Write(plaintext); err != nil {
				return res, path, fmt.Errorf("export: failed to write %s: %w", name, err)
			}

			res.Exported = append(res.Exported, name)
		}
	}

	if err := zw.Close(); err != nil {
		return res, path, fmt.Errorf("export: failed to finish %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return res, path, fmt.Errorf("export: failed to finish %s: %w", path, err)
	}

	return res, path, nil
}
