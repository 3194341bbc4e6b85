package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidRequirement is returned when a requirement string does not match
	// the name[extras]specifier;marker grammar.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrInvalidManifest is returned when a manifest file cannot be parsed into
	// the requirement model.
	ErrInvalidManifest = zerr.New("invalid manifest")

	// ErrMissingInterpreterSpec is returned when the environment descriptor does
	// not declare an interpreter version.
	ErrMissingInterpreterSpec = zerr.New("missing interpreter specification")

	// ErrInconsistentInterpreterSpec is returned when the interpreter version in
	// the environment descriptor disagrees with the primary manifest.
	ErrInconsistentInterpreterSpec = zerr.New("inconsistent interpreter specification")

	// ErrMissingRequirement is returned when a requirement of the reference
	// manifest has no match in the candidate manifest.
	ErrMissingRequirement = zerr.New("missing requirement")

	// ErrExtraRequirement is returned when the candidate manifest declares
	// requirements the reference manifest does not.
	ErrExtraRequirement = zerr.New("extra requirement")

	// ErrMissingBuildRequirement is returned when the install-time hook package
	// is not listed in the build descriptor's build requirements.
	ErrMissingBuildRequirement = zerr.New("missing build requirement")
)

// IsConsistencyError reports whether err is one of the consistency failure
// kinds produced by the validator, as opposed to a parse or I/O failure.
func IsConsistencyError(err error) bool {
	return errors.Is(err, ErrMissingInterpreterSpec) ||
		errors.Is(err, ErrInconsistentInterpreterSpec) ||
		errors.Is(err, ErrMissingRequirement) ||
		errors.Is(err, ErrExtraRequirement) ||
		errors.Is(err, ErrMissingBuildRequirement)
}
