// Package ports defines the interfaces between the core and its adapters.
package ports

import "go.trai.ch/depsync/internal/core/domain"

// ManifestStore defines read/write access to one manifest file.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestStore interface {
	// Read parses the manifest file into the requirement model.
	Read() (*domain.Manifest, error)

	// Write persists the manifest atomically: the previous file content is
	// never left half-replaced.
	Write(m *domain.Manifest) error
}

// SnapshotReader reads a captured environment snapshot from a flat
// requirement-list file.
type SnapshotReader interface {
	// ReadSnapshot returns the exact package-version pairs found in the file.
	// Lines that are not exact pins are skipped.
	ReadSnapshot() (domain.Snapshot, error)
}
