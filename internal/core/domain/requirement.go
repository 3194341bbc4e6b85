// Package domain holds the requirement model: the in-memory representation of
// package requirements, manifests, snapshots and translation tables that the
// validator and rewriter engines operate on.
package domain

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Requirement represents one package requirement: a name, optional extras,
// an optional set of version constraints, and an optional environment marker.
// The name is case-preserving; comparisons are case-insensitive.
type Requirement struct {
	Name       string
	Extras     []string
	Specifiers SpecifierSet
	Marker     string
}

// requirementRegexp captures the name[extras]specifiers;marker grammar. The
// specifier portion is validated separately by ParseSpecifierSet.
var requirementRegexp = regexp.MustCompile(
	`^\s*([A-Za-z0-9][A-Za-z0-9._-]*)\s*(?:\[([^\]]+)\])?\s*([^;]*?)\s*(?:;\s*(.+?))?\s*$`,
)

// ParseRequirement parses a single requirement declaration such as
// "six==1.12.0", "graphviz[dot]>=0.10" or "futures; python_version=='2.7'".
func ParseRequirement(text string) (Requirement, error) {
	m := requirementRegexp.FindStringSubmatch(text)
	if m == nil {
		return Requirement{}, zerr.With(ErrInvalidRequirement, "requirement", text)
	}

	specifiers, err := ParseSpecifierSet(m[3])
	if err != nil {
		return Requirement{}, zerr.With(err, "requirement", text)
	}

	var extras []string
	if m[2] != "" {
		for _, extra := range strings.Split(m[2], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				return Requirement{}, zerr.With(ErrInvalidRequirement, "requirement", text)
			}
			extras = append(extras, extra)
		}
	}

	return Requirement{
		Name:       m[1],
		Extras:     extras,
		Specifiers: specifiers,
		Marker:     m[4],
	}, nil
}

// String renders the normalized textual form of the requirement. It is
// semantically equivalent to the parsed input but not guaranteed to be
// byte-identical to it.
func (r Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(r.Extras, ","))
		b.WriteString("]")
	}
	b.WriteString(r.Specifiers.String())
	if r.Marker != "" {
		b.WriteString("; ")
		b.WriteString(r.Marker)
	}
	return b.String()
}

// Key returns the comparison key of the requirement: the lowercased name plus
// the canonical specifier text. Extras and markers do not participate; the
// comparing operation decides whether they matter.
func (r Requirement) Key() string {
	return strings.ToLower(r.Name) + " " + r.Specifiers.Canonical()
}

// Clone returns a deep copy of the requirement.
func (r Requirement) Clone() Requirement {
	return Requirement{
		Name:       r.Name,
		Extras:     slices.Clone(r.Extras),
		Specifiers: slices.Clone(r.Specifiers),
		Marker:     r.Marker,
	}
}
