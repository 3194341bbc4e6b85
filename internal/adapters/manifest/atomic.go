package manifest

import (
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// writeFileAtomic replaces the file at path with data without ever leaving a
// half-written file behind: the data is written to a temporary file in the
// same directory and renamed into place. When the current content already
// matches (compared by hash), the file is left untouched so timestamps and
// generated diffs stay stable.
func writeFileAtomic(path string, data []byte) error {
	if prev, err := os.ReadFile(path); err == nil { //nolint:gosec // path is provided by the caller
		if xxhash.Sum64(prev) == xxhash.Sum64(data) {
			return nil
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temporary file"), "path", path)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, "failed to write temporary file"), "path", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, "failed to close temporary file"), "path", path)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil { //nolint:gosec // manifests are world-readable
		_ = os.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, "failed to set file mode"), "path", path)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, "failed to rename temporary file"), "path", path)
	}
	return nil
}
