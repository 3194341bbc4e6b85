package manifest

import (
	"bytes"
	"os"

	"go.trai.ch/depsync/internal/core/domain"
	"go.trai.ch/depsync/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestStore = (*EnvironmentFile)(nil)

// environmentDoc mirrors the on-disk structure of the environment descriptor.
// Field order matches the order conda expects in environment.yml.
type environmentDoc struct {
	Name         string   `yaml:"name"`
	Channels     []string `yaml:"channels"`
	Dependencies []string `yaml:"dependencies"`
}

// environmentHeader is written above the YAML document, matching the usage
// hint conda users expect to find in a generated environment.yml.
const environmentHeader = "# Usage: conda env create -n myenvname -f environment.yml\n---\n"

// EnvironmentFile is the adapter for the conda environment descriptor. The
// dependency list keeps the interpreter pseudo-requirement inline; callers
// that need it extracted do so themselves.
type EnvironmentFile struct {
	path string
}

// NewEnvironmentFile creates an adapter for the environment descriptor at path.
func NewEnvironmentFile(path string) *EnvironmentFile {
	return &EnvironmentFile{path: path}
}

// Read parses the environment descriptor.
func (e *EnvironmentFile) Read() (*domain.Manifest, error) {
	data, err := os.ReadFile(e.path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read environment descriptor"), "path", e.path)
	}

	var doc environmentDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, e.formatError(err)
	}

	m := &domain.Manifest{
		Name:     doc.Name,
		Channels: doc.Channels,
	}
	for _, line := range doc.Dependencies {
		req, err := domain.ParseRequirement(line)
		if err != nil {
			return nil, e.formatError(err)
		}
		m.Install = append(m.Install, req)
	}
	return m, nil
}

// Write persists the environment descriptor atomically.
func (e *EnvironmentFile) Write(m *domain.Manifest) error {
	doc := environmentDoc{
		Name:     m.Name,
		Channels: m.Channels,
	}
	for _, req := range m.Install {
		doc.Dependencies = append(doc.Dependencies, req.String())
	}

	var buf bytes.Buffer
	buf.WriteString(environmentHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to render environment descriptor"), "path", e.path)
	}
	if err := enc.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to render environment descriptor"), "path", e.path)
	}

	return writeFileAtomic(e.path, buf.Bytes())
}

func (e *EnvironmentFile) formatError(cause error) error {
	err := zerr.With(domain.ErrInvalidManifest, "path", e.path)
	return zerr.With(err, "cause", cause.Error())
}
