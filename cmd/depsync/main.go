// Package main is the entry point for the depsync CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/depsync/cmd/depsync/commands"
	"go.trai.ch/depsync/internal/adapters/logger"
	"go.trai.ch/depsync/internal/adapters/manifest"
	"go.trai.ch/depsync/internal/app"
	"go.trai.ch/depsync/internal/core/domain"
)

func main() {
	if err := run(); err != nil {
		if domain.IsConsistencyError(err) {
			// Divergence is a finding for a human to fix, not a crash; skip
			// the stack trace.
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		} else {
			// zerr prints a pretty error report with stack trace and metadata when using %+v
			_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	log := logger.New()
	cli := commands.New(func(root string) (*app.App, error) {
		return app.New(
			manifest.NewSetupFile(filepath.Join(root, app.FilenameSetupJSON)),
			manifest.NewEnvironmentFile(filepath.Join(root, app.FilenameEnvironmentYML)),
			manifest.NewPyprojectFile(filepath.Join(root, app.FilenamePyprojectTOML)),
			manifest.NewRequirementsFile(filepath.Join(root, app.FilepathDocsRequirements)),
			app.DefaultConfig(),
			log,
		)
	})

	return cli.Execute(ctx)
}
