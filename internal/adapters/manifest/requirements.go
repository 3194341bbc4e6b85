package manifest

import (
	"os"
	"slices"
	"strings"

	"go.trai.ch/depsync/internal/core/domain"
	"go.trai.ch/depsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ManifestStore  = (*RequirementsFile)(nil)
	_ ports.SnapshotReader = (*RequirementsFile)(nil)
)

// RequirementsFile is the adapter for flat requirement lists: one requirement
// per line, with blank lines and # comments skipped. The same format serves
// the generated documentation list and environment snapshots.
type RequirementsFile struct {
	path string
}

// NewRequirementsFile creates an adapter for the flat list at path.
func NewRequirementsFile(path string) *RequirementsFile {
	return &RequirementsFile{path: path}
}

// Read parses every line into a requirement. A line that does not match the
// requirement grammar makes the whole file invalid.
func (r *RequirementsFile) Read() (*domain.Manifest, error) {
	data, err := os.ReadFile(r.path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read requirement list"), "path", r.path)
	}

	m := &domain.Manifest{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		req, err := domain.ParseRequirement(line)
		if err != nil {
			formatErr := zerr.With(domain.ErrInvalidManifest, "path", r.path)
			return nil, zerr.With(formatErr, "line", line)
		}
		m.Install = append(m.Install, req)
	}
	return m, nil
}

// Write persists the flat list atomically, one rendered requirement per line,
// sorted lexicographically.
func (r *RequirementsFile) Write(m *domain.Manifest) error {
	lines := make([]string, len(m.Install))
	for i, req := range m.Install {
		lines[i] = req.String()
	}
	slices.Sort(lines)

	return writeFileAtomic(r.path, []byte(strings.Join(lines, "\n")+"\n"))
}

// ReadSnapshot reads the file as an environment snapshot. Only lines of the
// exact form name==version are consumed; anything else (comments, editable
// installs, range constraints) is skipped, matching what a pip freeze dump
// may contain.
func (r *RequirementsFile) ReadSnapshot() (domain.Snapshot, error) {
	data, err := os.ReadFile(r.path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read snapshot"), "path", r.path)
	}

	var snap domain.Snapshot
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		parts := strings.Split(line, "==")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		snap = append(snap, domain.Pin{
			Name:    strings.TrimSpace(parts[0]),
			Version: strings.TrimSpace(parts[1]),
		})
	}
	return snap, nil
}
