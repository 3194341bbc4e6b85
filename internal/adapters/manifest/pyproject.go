package manifest

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"
	"go.trai.ch/depsync/internal/core/domain"
	"go.trai.ch/depsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*PyprojectFile)(nil)

// PyprojectFile is the adapter for the build descriptor, a nested TOML table
// whose build-system.requires list holds the build-time requirements. Like
// the primary manifest adapter it retains the rest of the document across a
// Read so that Write only replaces the requirement list.
type PyprojectFile struct {
	path string
	doc  map[string]any
}

// NewPyprojectFile creates an adapter for the build descriptor at path.
func NewPyprojectFile(path string) *PyprojectFile {
	return &PyprojectFile{path: path}
}

// Read parses the build descriptor. The build-time requirements become the
// manifest's install group.
func (p *PyprojectFile) Read() (*domain.Manifest, error) {
	data, err := os.ReadFile(p.path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read build descriptor"), "path", p.path)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, p.formatError(err)
	}

	m := &domain.Manifest{}
	for _, entry := range buildRequires(doc) {
		line, ok := entry.(string)
		if !ok {
			return nil, zerr.With(zerr.With(domain.ErrInvalidManifest, "path", p.path),
				"cause", "build-system.requires must be a list of strings")
		}
		req, err := domain.ParseRequirement(line)
		if err != nil {
			return nil, p.formatError(err)
		}
		m.Install = append(m.Install, req)
	}

	p.doc = doc
	return m, nil
}

// Write persists the build descriptor atomically, replacing only the
// build-system.requires list. Note that TOML encoding does not preserve the
// original key order of tables.
func (p *PyprojectFile) Write(m *domain.Manifest) error {
	doc := p.doc
	if doc == nil {
		doc = map[string]any{}
	}

	lines := make([]string, len(m.Install))
	for i, req := range m.Install {
		lines[i] = req.String()
	}
	system, ok := doc["build-system"].(map[string]any)
	if !ok {
		system = map[string]any{}
		doc["build-system"] = system
	}
	system["requires"] = lines

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(doc); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to render build descriptor"), "path", p.path)
	}

	return writeFileAtomic(p.path, buf.Bytes())
}

func buildRequires(doc map[string]any) []any {
	system, ok := doc["build-system"].(map[string]any)
	if !ok {
		return nil
	}
	requires, _ := system["requires"].([]any)
	return requires
}

func (p *PyprojectFile) formatError(cause error) error {
	err := zerr.With(domain.ErrInvalidManifest, "path", p.path)
	return zerr.With(err, "cause", cause.Error())
}
