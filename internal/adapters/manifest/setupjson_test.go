package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsync/internal/adapters/manifest"
	"go.trai.ch/depsync/internal/core/domain"
)

const setupFixture = `{
    "name": "aiida-core",
    "url": "http://www.aiida.net/",
    "python_requires": ">=3.7",
    "classifiers": [
        "Programming Language :: Python :: 3.7",
        "Programming Language :: Python :: 3.8"
    ],
    "install_requires": [
        "six==1.12.0",
        "reentry~=1.3",
        "psycopg2-binary==2.8.3"
    ],
    "extras_require": {
        "testing": [
            "pytest==5.3.5"
        ],
        "docs": [
            "sphinx==2.4.2"
        ]
    }
}
`

func writeSetupFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "setup.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSetupFile_Read(t *testing.T) {
	path := writeSetupFixture(t, setupFixture)

	m, err := manifest.NewSetupFile(path).Read()
	require.NoError(t, err)

	assert.Equal(t, "aiida-core", m.Name)
	assert.Equal(t, ">=3.7", m.PythonRequires.String())
	assert.Len(t, m.Classifiers, 2)

	require.Len(t, m.Install, 3)
	assert.Equal(t, "six==1.12.0", m.Install[0].String())

	// Extra groups keep their declaration order.
	require.Len(t, m.Extras, 2)
	assert.Equal(t, "testing", m.Extras[0].Name)
	assert.Equal(t, "docs", m.Extras[1].Name)
	assert.Equal(t, "pytest==5.3.5", m.Extras[0].Requirements[0].String())
}

func TestSetupFile_ReadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := manifest.NewSetupFile(filepath.Join(t.TempDir(), "setup.json")).Read()
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeSetupFixture(t, `{"install_requires": [`)
		_, err := manifest.NewSetupFile(path).Read()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidManifest))
	})

	t.Run("invalid requirement", func(t *testing.T) {
		path := writeSetupFixture(t, `{"install_requires": ["six === ="]}`)
		_, err := manifest.NewSetupFile(path).Read()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidManifest))
	})

	t.Run("not an object", func(t *testing.T) {
		path := writeSetupFixture(t, `["six"]`)
		_, err := manifest.NewSetupFile(path).Read()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidManifest))
	})
}

func TestSetupFile_RoundTrip(t *testing.T) {
	path := writeSetupFixture(t, setupFixture)
	store := manifest.NewSetupFile(path)

	m, err := store.Read()
	require.NoError(t, err)
	require.NoError(t, store.Write(m))

	// A read-then-write cycle reproduces the document byte for byte,
	// including keys outside the requirement model ("url") and key order.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, setupFixture, string(data))
}

func TestSetupFile_WriteReplacesRequirements(t *testing.T) {
	path := writeSetupFixture(t, setupFixture)
	store := manifest.NewSetupFile(path)

	m, err := store.Read()
	require.NoError(t, err)
	m.Install[0].Specifiers = nil // six==1.12.0 -> six
	require.NoError(t, store.Write(m))

	reread, err := manifest.NewSetupFile(path).Read()
	require.NoError(t, err)
	assert.Equal(t, "six", reread.Install[0].String())
	assert.Equal(t, "aiida-core", reread.Name)

	// Unrelated keys survive the rewrite.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"url": "http://www.aiida.net/"`)
}

func TestSetupFile_WriteWithoutRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.json")
	store := manifest.NewSetupFile(path)

	m := &domain.Manifest{
		Name:    "demo",
		Install: []domain.Requirement{{Name: "six"}},
		Extras: []domain.Group{
			{Name: "testing", Requirements: []domain.Requirement{{Name: "pytest"}}},
		},
	}
	require.NoError(t, store.Write(m))

	reread, err := manifest.NewSetupFile(path).Read()
	require.NoError(t, err)
	assert.Equal(t, "demo", reread.Name)
	require.Len(t, reread.Install, 1)
	assert.Equal(t, "six", reread.Install[0].Name)
	require.Len(t, reread.Extras, 1)
	assert.Equal(t, "testing", reread.Extras[0].Name)
}
