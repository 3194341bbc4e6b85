package app

import (
	"go.trai.ch/depsync/internal/core/domain"
	"go.trai.ch/depsync/internal/engine/validate"
)

// Manifest file locations, relative to the project root.
const (
	FilenameSetupJSON        = "setup.json"
	FilenameEnvironmentYML   = "environment.yml"
	FilenamePyprojectTOML    = "pyproject.toml"
	FilepathDocsRequirements = "docs/requirements_for_rtd.txt"
)

// Config carries the fixed tables and lists that determine application
// behavior. Defaults come from DefaultConfig; all of it is explicit input, no
// process-wide state.
type Config struct {
	// Validate configures the consistency validator.
	Validate validate.Config

	// Channels are the package channels written into a generated environment
	// descriptor.
	Channels []string
}

// DefaultConfig returns the built-in configuration: the setuptools-to-conda
// translation table, the conda ignore list, the extra groups included in the
// documentation requirement list, and the install-time hook package.
func DefaultConfig() Config {
	return Config{
		Validate: validate.Config{
			Table: domain.TranslationTable{
				domain.MustTranslationRule("psycopg2-binary", "psycopg2"),
				domain.MustTranslationRule("graphviz", "python-graphviz"),
			},
			IgnorePatterns:  []string{"pyblake2"},
			DocsExtraGroups: []string{"testing", "docs", "rest", "atomic_tools"},
			BuildHook:       "reentry",
		},
		Channels: []string{"conda-forge", "defaults"},
	}
}
