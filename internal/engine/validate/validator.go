// Package validate implements the consistency validator: it cross-checks a
// candidate manifest against the reference manifest using translation and
// exclusion rules, producing a specific failure kind or silent success.
package validate

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/depsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// interpreterName is the reserved requirement name denoting the interpreter
// pseudo-requirement in an environment descriptor.
const interpreterName = "python"

// classifierPrefix is the support-classifier namespace of the primary
// manifest's classifier declarations.
const classifierPrefix = "Programming Language :: Python :: "

// Config carries the fixed tables that determine validator behavior. It is
// passed in explicitly so behavior is fully determined by inputs.
type Config struct {
	// Table translates requirements from the primary manifest's ecosystem to
	// the environment descriptor's ecosystem before comparison.
	Table domain.TranslationTable

	// IgnorePatterns are anchored regular expressions; requirements whose
	// rendered form matches one are excluded from the environment comparison.
	IgnorePatterns []string

	// EnvironmentExtraGroups are the extra groups included when comparing the
	// primary manifest against the environment descriptor.
	EnvironmentExtraGroups []string

	// DocsExtraGroups are the extra groups included in the flattened
	// documentation requirement set.
	DocsExtraGroups []string

	// BuildHook is the install-time hook package that must also appear in the
	// build descriptor's build requirements.
	BuildHook string
}

// Validator cross-checks manifests for consistency.
type Validator struct {
	cfg    Config
	ignore []*regexp.Regexp
}

// New creates a Validator, compiling the configured ignore patterns.
func New(cfg Config) (*Validator, error) {
	v := &Validator{cfg: cfg}
	for _, pattern := range cfg.IgnorePatterns {
		re, err := regexp.Compile("^(?:" + pattern + ")")
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid ignore pattern"), "pattern", pattern)
		}
		v.ignore = append(v.ignore, re)
	}
	return v, nil
}

// DocsExtraGroups returns the extra groups included in the flattened
// documentation requirement set.
func (v *Validator) DocsExtraGroups() []string {
	return v.cfg.DocsExtraGroups
}

// Ignored reports whether the requirement matches one of the configured
// ignore patterns.
func (v *Validator) Ignored(req domain.Requirement) bool {
	text := req.String()
	for _, re := range v.ignore {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Translate runs the requirement through the configured translation table.
func (v *Validator) Translate(req domain.Requirement) (domain.Requirement, error) {
	return v.cfg.Table.Translate(req)
}

// Environment validates that the environment descriptor denotes the exact
// same requirement set as the primary manifest, modulo translation and
// exclusion rules, and that its interpreter version is consistent with the
// primary manifest's declared interpreter support.
func (v *Validator) Environment(primary, env *domain.Manifest) error {
	pool := poolOf(env.Install)

	interpreter, pool, found := extractByName(pool, interpreterName)
	if !found {
		return zerr.With(domain.ErrMissingInterpreterSpec, "name", interpreterName)
	}
	if err := v.checkInterpreter(primary, interpreter); err != nil {
		return err
	}

	reference := primary.Combined(v.cfg.EnvironmentExtraGroups)
	for _, req := range reference {
		if v.Ignored(req) {
			continue
		}
		translated, err := v.Translate(req)
		if err != nil {
			return err
		}

		idx, found := indexByKey(pool, translated.Key())
		if !found {
			return zerr.With(domain.ErrMissingRequirement, "requirement", translated.String())
		}
		pool = slices.Delete(pool, idx, idx+1)
	}

	if len(pool) > 0 {
		return zerr.With(domain.ErrExtraRequirement, "requirements", renderAll(pool))
	}
	return nil
}

// checkInterpreter verifies the candidate interpreter requirement against the
// primary manifest's interpreter-support declarations: each of its versions
// must be declared as a support classifier and must not fall below the
// declared minimum.
func (v *Validator) checkInterpreter(primary *domain.Manifest, interpreter domain.Requirement) error {
	if len(interpreter.Specifiers) == 0 {
		return zerr.With(domain.ErrMissingInterpreterSpec, "requirement", interpreter.String())
	}

	minimum, hasMinimum := primary.PythonRequires.MinVersion()
	for _, spec := range interpreter.Specifiers {
		classifier := classifierPrefix + strings.TrimSuffix(spec.Version, ".*")
		if !slices.Contains(primary.Classifiers, classifier) {
			return zerr.With(domain.ErrInconsistentInterpreterSpec, "classifier", classifier)
		}

		if hasMinimum && domain.CompareVersions(spec.Version, minimum) < 0 {
			err := zerr.With(domain.ErrInconsistentInterpreterSpec, "declared", spec.Version)
			return zerr.With(err, "minimum", minimum)
		}
	}
	return nil
}

// FlatList validates that the flattened requirement set of the primary
// manifest (install group plus the configured documentation extra groups)
// equals the given flat list: plain set equality, no translation, no
// exclusion, order irrelevant.
func (v *Validator) FlatList(primary *domain.Manifest, list *domain.Manifest) error {
	pool := poolOf(list.Install)

	for _, req := range primary.Combined(v.cfg.DocsExtraGroups) {
		idx, found := indexByKey(pool, req.Key())
		if !found {
			return zerr.With(domain.ErrMissingRequirement, "requirement", req.String())
		}
		pool = slices.Delete(pool, idx, idx+1)
	}

	if len(pool) > 0 {
		return zerr.With(domain.ErrExtraRequirement, "requirements", renderAll(pool))
	}
	return nil
}

// BuildRequirements validates that the configured build hook package is
// declared in the primary manifest's install group and listed, with the
// identical specifier, in the build descriptor's build requirements.
func (v *Validator) BuildRequirements(primary, build *domain.Manifest) error {
	hook, found := findByName(primary.Install, v.cfg.BuildHook)
	if !found {
		return zerr.With(domain.ErrMissingRequirement, "requirement", v.cfg.BuildHook)
	}

	if _, found := indexByKey(build.Install, hook.Key()); !found {
		return zerr.With(domain.ErrMissingBuildRequirement, "requirement", hook.String())
	}
	return nil
}

func poolOf(reqs []domain.Requirement) []domain.Requirement {
	return slices.Clone(reqs)
}

// extractByName removes the first requirement with the given name from the
// pool, returning the shrunk pool and whether a match was found.
func extractByName(pool []domain.Requirement, name string) (domain.Requirement, []domain.Requirement, bool) {
	for i, req := range pool {
		if strings.EqualFold(req.Name, name) {
			return req, slices.Delete(pool, i, i+1), true
		}
	}
	return domain.Requirement{}, pool, false
}

func findByName(reqs []domain.Requirement, name string) (domain.Requirement, bool) {
	for _, req := range reqs {
		if strings.EqualFold(req.Name, name) {
			return req, true
		}
	}
	return domain.Requirement{}, false
}

func indexByKey(pool []domain.Requirement, key string) (int, bool) {
	for i, req := range pool {
		if req.Key() == key {
			return i, true
		}
	}
	return 0, false
}

func renderAll(reqs []domain.Requirement) string {
	parts := make([]string, len(reqs))
	for i, req := range reqs {
		parts[i] = req.String()
	}
	return strings.Join(parts, ", ")
}
