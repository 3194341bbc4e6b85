package domain

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// Specifier is a single version constraint: an operator plus a version.
type Specifier struct {
	Op      string
	Version string
}

// String returns the textual form of the specifier, e.g. ">=1.2.0".
func (s Specifier) String() string {
	return s.Op + s.Version
}

// SpecifierSet is an ordered list of version constraints. An empty set means
// the requirement is unconstrained.
type SpecifierSet []Specifier

// Operator alternatives are listed longest first so that the parser never
// splits "==" into "=" + "=".
var specifierRegexp = regexp.MustCompile(`^(===|==|~=|!=|>=|<=|>|<)\s*([A-Za-z0-9._*+!-]+)$`)

// ParseSpecifierSet parses a comma-separated list of version constraints such
// as ">=1.0,<2.0". An empty input yields a nil set.
func ParseSpecifierSet(text string) (SpecifierSet, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var set SpecifierSet
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		m := specifierRegexp.FindStringSubmatch(part)
		if m == nil {
			return nil, zerr.With(ErrInvalidRequirement, "specifier", part)
		}
		set = append(set, Specifier{Op: m[1], Version: m[2]})
	}
	return set, nil
}

// String returns the comma-joined textual form, preserving declaration order.
func (ss SpecifierSet) String() string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

// Canonical returns an order-independent textual form used for comparing
// specifier sets.
func (ss SpecifierSet) Canonical() string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

// IsPin reports whether the set is exactly one equality constraint.
func (ss SpecifierSet) IsPin() bool {
	return len(ss) == 1 && ss[0].Op == "=="
}

// MinVersion returns the lowest version among the set's lower-bound
// constraints (>=, >, ~=, ==, ===). The second return value is false when the
// set carries no lower bound at all.
func (ss SpecifierSet) MinVersion() (string, bool) {
	lowest := ""
	found := false
	for _, s := range ss {
		switch s.Op {
		case ">=", ">", "~=", "==", "===":
			if !found || CompareVersions(s.Version, lowest) < 0 {
				lowest = s.Version
				found = true
			}
		}
	}
	return lowest, found
}

// CompareVersions compares two version strings, returning -1, 0 or +1. The
// inputs are plain versions like "3.7" or "1.12.0"; they are canonicalized to
// the semver package's expected form before comparison.
func CompareVersions(a, b string) int {
	return semver.Compare(canonicalVersion(a), canonicalVersion(b))
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "v")
	v = strings.TrimSuffix(v, ".*")
	return "v" + v
}
