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

func TestRequirementsFile_Read(t *testing.T) {
	content := `# generated, do not edit
six==1.12.0

sphinx>=2.0
pytest==5.3.5
`
	path := filepath.Join(t.TempDir(), "requirements_for_rtd.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	m, err := manifest.NewRequirementsFile(path).Read()
	require.NoError(t, err)

	require.Len(t, m.Install, 3)
	assert.Equal(t, "six==1.12.0", m.Install[0].String())
	assert.Equal(t, "sphinx>=2.0", m.Install[1].String())
}

func TestRequirementsFile_ReadInvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("six==1.12.0\n!!bogus!!\n"), 0o600))

	_, err := manifest.NewRequirementsFile(path).Read()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidManifest))
}

func TestRequirementsFile_WriteSorts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	store := manifest.NewRequirementsFile(path)

	m := &domain.Manifest{Install: []domain.Requirement{
		mustParse(t, "sphinx>=2.0"),
		mustParse(t, "aldjemy>=0.9.1"),
		mustParse(t, "pytest==5.3.5"),
	}}
	require.NoError(t, store.Write(m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "aldjemy>=0.9.1\npytest==5.3.5\nsphinx>=2.0\n", string(data))
}

func TestRequirementsFile_ReadSnapshot(t *testing.T) {
	content := `# pip freeze output
Six==1.16.0
pyyaml==5.4.1
-e git+https://example.org/repo.git#egg=devpkg
sphinx>=2.0
wheel
`
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	snap, err := manifest.NewRequirementsFile(path).ReadSnapshot()
	require.NoError(t, err)

	// Only exact name==version lines are consumed; everything else is
	// skipped, not rejected.
	require.Len(t, snap, 2)
	assert.Equal(t, domain.Pin{Name: "Six", Version: "1.16.0"}, snap[0])
	assert.Equal(t, domain.Pin{Name: "pyyaml", Version: "5.4.1"}, snap[1])
}
