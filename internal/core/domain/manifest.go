package domain

import (
	"slices"
	"strings"
)

// Group is a named, optional bundle of requirements (e.g. "testing", "docs").
type Group struct {
	Name         string
	Requirements []Requirement
}

// Manifest is the in-memory form of one manifest file: a mandatory requirement
// list plus ordered extra groups. The flavor-specific fields are only filled
// by the adapter of the corresponding format.
type Manifest struct {
	// Name is the project or environment name, when the format declares one.
	Name string

	// Install is the mandatory requirement group. For the environment
	// descriptor it still contains the interpreter pseudo-requirement until
	// the validator extracts it.
	Install []Requirement

	// Extras holds the optional requirement groups in declaration order. The
	// order matters for generated output, never for comparison.
	Extras []Group

	// PythonRequires is the primary manifest's declared interpreter support
	// range.
	PythonRequires SpecifierSet

	// Classifiers are the primary manifest's support classifier strings.
	Classifiers []string

	// Channels are the environment descriptor's package channels.
	Channels []string
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	out := &Manifest{
		Name:           m.Name,
		Install:        cloneRequirements(m.Install),
		PythonRequires: slices.Clone(m.PythonRequires),
		Classifiers:    slices.Clone(m.Classifiers),
		Channels:       slices.Clone(m.Channels),
	}
	for _, g := range m.Extras {
		out.Extras = append(out.Extras, Group{Name: g.Name, Requirements: cloneRequirements(g.Requirements)})
	}
	return out
}

// Group returns the requirements of the named extra group.
func (m *Manifest) Group(name string) ([]Requirement, bool) {
	for _, g := range m.Extras {
		if g.Name == name {
			return g.Requirements, true
		}
	}
	return nil, false
}

// Combined returns the install group plus the named extra groups, deduplicated
// by comparison key. Groups missing from the manifest are skipped.
func (m *Manifest) Combined(groups []string) []Requirement {
	seen := make(map[string]bool)
	var out []Requirement

	add := func(reqs []Requirement) {
		for _, r := range reqs {
			if seen[r.Key()] {
				continue
			}
			seen[r.Key()] = true
			out = append(out, r.Clone())
		}
	}

	add(m.Install)
	for _, name := range groups {
		if reqs, ok := m.Group(name); ok {
			add(reqs)
		}
	}
	return out
}

func cloneRequirements(reqs []Requirement) []Requirement {
	if reqs == nil {
		return nil
	}
	out := make([]Requirement, len(reqs))
	for i, r := range reqs {
		out[i] = r.Clone()
	}
	return out
}

// Pin is one exact package-version pair of a snapshot.
type Pin struct {
	Name    string
	Version string
}

// Snapshot is an ordered sequence of exact package-version pairs captured from
// an external environment, e.g. the output of pip freeze.
type Snapshot []Pin

// Find returns the pin whose name matches case-insensitively.
func (s Snapshot) Find(name string) (Pin, bool) {
	lower := strings.ToLower(name)
	for _, p := range s {
		if strings.ToLower(p.Name) == lower {
			return p, true
		}
	}
	return Pin{}, false
}
