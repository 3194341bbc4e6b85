package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

// TranslationRule rewrites requirements matching a pattern into the
// declaration used by another packaging ecosystem. The pattern is applied to
// the rendered requirement text and anchored at its start; the replacement may
// reference capture groups.
type TranslationRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// NewTranslationRule compiles a translation rule from a pattern and its
// replacement text.
func NewTranslationRule(pattern, replacement string) (TranslationRule, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return TranslationRule{}, zerr.With(zerr.Wrap(err, "invalid translation pattern"), "pattern", pattern)
	}
	return TranslationRule{pattern: re, replacement: replacement}, nil
}

// MustTranslationRule is like NewTranslationRule but panics on a bad pattern.
// Intended for fixed built-in tables.
func MustTranslationRule(pattern, replacement string) TranslationRule {
	rule, err := NewTranslationRule(pattern, replacement)
	if err != nil {
		panic(err)
	}
	return rule
}

// TranslationTable is an ordered list of translation rules; the first matching
// rule wins.
type TranslationTable []TranslationRule

// Translate rewrites the requirement using the first matching rule, or returns
// it unchanged when no rule matches. The substituted text is re-parsed so the
// result is always a well-formed requirement.
func (t TranslationTable) Translate(req Requirement) (Requirement, error) {
	text := req.String()
	for _, rule := range t {
		if !rule.pattern.MatchString(text) {
			continue
		}
		translated, err := ParseRequirement(rule.pattern.ReplaceAllString(text, rule.replacement))
		if err != nil {
			return Requirement{}, zerr.With(err, "translated_from", text)
		}
		return translated, nil
	}
	return req, nil
}
