// Package rewrite implements the version-restriction rewriter: two pure,
// deterministic transformations over the primary manifest that strip version
// pins and reinstate exact pins from an environment snapshot.
package rewrite

import (
	"slices"
	"strings"

	"go.trai.ch/depsync/internal/core/domain"
)

// DefaultExcludeList names the packages that keep their version restrictions
// during Unrestrict because an upper bound is known to be necessary.
var DefaultExcludeList = []string{
	"django",
	"circus",
	"numpy",
	"pymatgen",
	"ase",
	"monty",
	"pyyaml",
}

// MergeExclude unions caller-supplied package names with the default exclude
// list. The default list is always retained; callers extend it, never replace
// it.
func MergeExclude(extra []string) []string {
	merged := slices.Clone(DefaultExcludeList)
	for _, name := range extra {
		name = strings.ToLower(name)
		if !slices.Contains(merged, name) {
			merged = append(merged, name)
		}
	}
	return merged
}

// Unrestrict strips equality pins from every group of the manifest. A
// requirement keeps its specifier when its name is excluded, it carries an
// environment marker, or its specifier is anything other than a single
// equality pin. The input manifest is not modified.
func Unrestrict(m *domain.Manifest, exclude []string) *domain.Manifest {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[strings.ToLower(name)] = true
	}

	out := m.Clone()
	unrestrictRequirements(out.Install, excluded)
	for _, g := range out.Extras {
		unrestrictRequirements(g.Requirements, excluded)
	}
	return out
}

func unrestrictRequirements(reqs []domain.Requirement, excluded map[string]bool) {
	for i := range reqs {
		r := &reqs[i]
		if excluded[strings.ToLower(r.Name)] || r.Marker != "" || !r.Specifiers.IsPin() {
			continue
		}
		r.Specifiers = nil
	}
}

// Update reinstates exact pins from the snapshot in every group of the
// manifest. A requirement whose name has a case-insensitive snapshot match is
// pinned to the snapshot version, with its name stored in canonical lower
// case; requirements without a match are left unchanged. Each group is then
// sorted lexicographically to keep generated differences minimal. The input
// manifest is not modified.
func Update(m *domain.Manifest, snap domain.Snapshot) *domain.Manifest {
	out := m.Clone()
	updateRequirements(out.Install, snap)
	sortRequirements(out.Install)
	for _, g := range out.Extras {
		updateRequirements(g.Requirements, snap)
		sortRequirements(g.Requirements)
	}
	return out
}

func updateRequirements(reqs []domain.Requirement, snap domain.Snapshot) {
	for i := range reqs {
		r := &reqs[i]
		pin, found := snap.Find(r.Name)
		if !found {
			continue
		}
		r.Name = strings.ToLower(pin.Name)
		r.Specifiers = domain.SpecifierSet{{Op: "==", Version: pin.Version}}
	}
}

func sortRequirements(reqs []domain.Requirement) {
	slices.SortFunc(reqs, func(a, b domain.Requirement) int {
		return strings.Compare(a.String(), b.String())
	})
}
