// Package manifest implements the format adapters that translate between raw
// file content and the domain requirement model: the primary setup.json
// manifest, the conda environment descriptor, the pyproject.toml build
// descriptor and flat requirement-list files.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"go.trai.ch/depsync/internal/core/domain"
	"go.trai.ch/depsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*SetupFile)(nil)

// SetupFile is the adapter for the primary manifest, a key/value JSON
// document with an install list and an extras mapping. Reading retains the
// full document, including keys the requirement model does not cover, so a
// later Write only replaces the requirement lists and round-trips everything
// else untouched.
type SetupFile struct {
	path string
	doc  []jsonField
}

// jsonField is one top-level key of the retained document, in file order.
type jsonField struct {
	key string
	raw json.RawMessage
}

// NewSetupFile creates an adapter for the primary manifest at path.
func NewSetupFile(path string) *SetupFile {
	return &SetupFile{path: path}
}

// Read parses the primary manifest.
func (s *SetupFile) Read() (*domain.Manifest, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read primary manifest"), "path", s.path)
	}

	doc, err := decodeOrderedObject(data)
	if err != nil {
		return nil, s.formatError(err)
	}

	m := &domain.Manifest{}
	for _, f := range doc {
		switch f.key {
		case "name":
			if err := json.Unmarshal(f.raw, &m.Name); err != nil {
				return nil, s.formatError(err)
			}
		case "python_requires":
			var text string
			if err := json.Unmarshal(f.raw, &text); err != nil {
				return nil, s.formatError(err)
			}
			set, err := domain.ParseSpecifierSet(text)
			if err != nil {
				return nil, s.formatError(err)
			}
			m.PythonRequires = set
		case "classifiers":
			if err := json.Unmarshal(f.raw, &m.Classifiers); err != nil {
				return nil, s.formatError(err)
			}
		case "install_requires":
			reqs, err := decodeRequirementList(f.raw)
			if err != nil {
				return nil, s.formatError(err)
			}
			m.Install = reqs
		case "extras_require":
			groups, err := decodeOrderedObject(f.raw)
			if err != nil {
				return nil, s.formatError(err)
			}
			for _, g := range groups {
				reqs, err := decodeRequirementList(g.raw)
				if err != nil {
					return nil, s.formatError(err)
				}
				m.Extras = append(m.Extras, domain.Group{Name: g.key, Requirements: reqs})
			}
		}
	}

	s.doc = doc
	return m, nil
}

// Write persists the manifest atomically. The requirement lists are rendered
// from m; every other key of the document retained by the last Read is
// written back verbatim, in its original position.
func (s *SetupFile) Write(m *domain.Manifest) error {
	compact, err := s.encode(m)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "    "); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to render primary manifest"), "path", s.path)
	}
	out.WriteByte('\n')

	return writeFileAtomic(s.path, out.Bytes())
}

func (s *SetupFile) encode(m *domain.Manifest) ([]byte, error) {
	doc := s.doc
	if doc == nil {
		doc = defaultSetupLayout(m)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range doc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to render primary manifest")
		}
		buf.Write(key)
		buf.WriteByte(':')

		raw := f.raw
		switch f.key {
		case "install_requires":
			raw, err = encodeRequirementList(m.Install)
		case "extras_require":
			raw, err = encodeExtras(m.Extras)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// defaultSetupLayout provides a key order for writes without a preceding
// Read, e.g. when synthesizing a manifest in tests.
func defaultSetupLayout(m *domain.Manifest) []jsonField {
	var doc []jsonField
	add := func(key string, value any) {
		raw, err := json.Marshal(value)
		if err != nil {
			return
		}
		doc = append(doc, jsonField{key: key, raw: raw})
	}

	if m.Name != "" {
		add("name", m.Name)
	}
	if len(m.PythonRequires) > 0 {
		add("python_requires", m.PythonRequires.String())
	}
	if len(m.Classifiers) > 0 {
		add("classifiers", m.Classifiers)
	}
	doc = append(doc, jsonField{key: "install_requires"}, jsonField{key: "extras_require"})
	return doc
}

func (s *SetupFile) formatError(cause error) error {
	err := zerr.With(domain.ErrInvalidManifest, "path", s.path)
	return zerr.With(err, "cause", cause.Error())
}

// decodeOrderedObject decodes a JSON object into its fields in file order.
// encoding/json maps do not preserve key order, so the object is walked
// token by token instead.
func decodeOrderedObject(data []byte) ([]jsonField, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object, found %v", tok)
	}

	var fields []jsonField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, found %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		fields = append(fields, jsonField{key: key, raw: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeRequirementList(raw json.RawMessage) ([]domain.Requirement, error) {
	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}

	reqs := make([]domain.Requirement, 0, len(lines))
	for _, line := range lines {
		req, err := domain.ParseRequirement(line)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func encodeRequirementList(reqs []domain.Requirement) (json.RawMessage, error) {
	lines := make([]string, len(reqs))
	for i, r := range reqs {
		lines[i] = r.String()
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to render requirement list")
	}
	return raw, nil
}

func encodeExtras(groups []domain.Group) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range groups {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Name)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to render extras mapping")
		}
		buf.Write(key)
		buf.WriteByte(':')

		raw, err := encodeRequirementList(g.Requirements)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
