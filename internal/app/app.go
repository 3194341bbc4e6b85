// Package app implements the application layer for depsync: each method is
// one command's read-all, compute, write-all cycle over the manifest stores.
package app

import (
	"strings"

	"go.trai.ch/depsync/internal/core/domain"
	"go.trai.ch/depsync/internal/core/ports"
	"go.trai.ch/depsync/internal/engine/rewrite"
	"go.trai.ch/depsync/internal/engine/validate"
	"go.trai.ch/zerr"
)

// App wires the manifest stores to the validator and rewriter engines.
type App struct {
	primary     ports.ManifestStore
	environment ports.ManifestStore
	build       ports.ManifestStore
	docs        ports.ManifestStore
	validator   *validate.Validator
	channels    []string
	logger      ports.Logger
}

// New creates an App over the four manifest stores.
func New(primary, environment, build, docs ports.ManifestStore, cfg Config, log ports.Logger) (*App, error) {
	validator, err := validate.New(cfg.Validate)
	if err != nil {
		return nil, err
	}
	return &App{
		primary:     primary,
		environment: environment,
		build:       build,
		docs:        docs,
		validator:   validator,
		channels:    cfg.Channels,
		logger:      log,
	}, nil
}

// GenerateEnvironment derives the environment descriptor from the primary
// manifest and the translation table, and writes it.
func (a *App) GenerateEnvironment() error {
	primary, err := a.primary.Read()
	if err != nil {
		return err
	}

	env, err := a.deriveEnvironment(primary)
	if err != nil {
		return err
	}
	if err := a.environment.Write(env); err != nil {
		return err
	}

	a.logger.Info("wrote environment descriptor")
	return nil
}

// deriveEnvironment builds the environment descriptor manifest: the
// interpreter pin first, then every install requirement translated to the
// environment ecosystem, minus the ignored ones.
func (a *App) deriveEnvironment(primary *domain.Manifest) (*domain.Manifest, error) {
	minimum, found := primary.PythonRequires.MinVersion()
	if !found {
		err := zerr.With(domain.ErrInvalidManifest, "field", "python_requires")
		return nil, zerr.With(err, "cause", "no interpreter lower bound declared")
	}

	// The interpreter version cannot be overridden from outside the
	// environment descriptor, so it must be pinned explicitly.
	install := []domain.Requirement{{
		Name:       "python",
		Specifiers: domain.SpecifierSet{{Op: "~=", Version: minimum}},
	}}

	for _, req := range primary.Install {
		if strings.EqualFold(req.Name, "python") || a.validator.Ignored(req) {
			continue
		}
		translated, err := a.validator.Translate(req)
		if err != nil {
			return nil, err
		}
		install = append(install, translated)
	}

	return &domain.Manifest{
		Name:     primary.Name,
		Channels: a.channels,
		Install:  install,
	}, nil
}

// GenerateDocsRequirements derives the flat, sorted documentation requirement
// list from the primary manifest's combined requirement set, and writes it.
func (a *App) GenerateDocsRequirements() error {
	primary, err := a.primary.Read()
	if err != nil {
		return err
	}

	list := &domain.Manifest{Install: primary.Combined(a.validator.DocsExtraGroups())}
	if err := a.docs.Write(list); err != nil {
		return err
	}

	a.logger.Info("wrote documentation requirement list")
	return nil
}

// ValidateEnvironment cross-checks the environment descriptor against the
// primary manifest.
func (a *App) ValidateEnvironment() error {
	primary, err := a.primary.Read()
	if err != nil {
		return err
	}
	env, err := a.environment.Read()
	if err != nil {
		return err
	}
	return a.validator.Environment(primary, env)
}

// ValidateDocsRequirements cross-checks the generated documentation list
// against the primary manifest's combined requirement set.
func (a *App) ValidateDocsRequirements() error {
	primary, err := a.primary.Read()
	if err != nil {
		return err
	}
	list, err := a.docs.Read()
	if err != nil {
		return err
	}
	return a.validator.FlatList(primary, list)
}

// ValidateBuildDescriptor checks that the install-time hook package is
// declared in both the primary manifest and the build descriptor.
func (a *App) ValidateBuildDescriptor() error {
	primary, err := a.primary.Read()
	if err != nil {
		return err
	}
	build, err := a.build.Read()
	if err != nil {
		return err
	}
	return a.validator.BuildRequirements(primary, build)
}

// Unrestrict strips equality pins from the primary manifest, keeping the
// default exclude list plus the given names, and rewrites the file in place.
func (a *App) Unrestrict(exclude []string) error {
	primary, err := a.primary.Read()
	if err != nil {
		return err
	}

	rewritten := rewrite.Unrestrict(primary, rewrite.MergeExclude(exclude))
	if err := a.primary.Write(rewritten); err != nil {
		return err
	}

	a.logger.Info("removed version restrictions from primary manifest")
	return nil
}

// Update reinstates exact pins from the snapshot in the primary manifest and
// rewrites the file in place.
func (a *App) Update(snapshot ports.SnapshotReader) error {
	primary, err := a.primary.Read()
	if err != nil {
		return err
	}
	pins, err := snapshot.ReadSnapshot()
	if err != nil {
		return err
	}

	rewritten := rewrite.Update(primary, pins)
	if err := a.primary.Write(rewritten); err != nil {
		return err
	}

	a.logger.Info("applied snapshot versions to primary manifest")
	return nil
}
