package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsync/internal/core/domain"
)

func mustRequirement(t *testing.T, text string) domain.Requirement {
	t.Helper()
	req, err := domain.ParseRequirement(text)
	require.NoError(t, err)
	return req
}

func TestManifest_Combined(t *testing.T) {
	m := &domain.Manifest{
		Install: []domain.Requirement{
			mustRequirement(t, "six==1.12.0"),
			mustRequirement(t, "pyyaml<6.0"),
		},
		Extras: []domain.Group{
			{Name: "testing", Requirements: []domain.Requirement{
				mustRequirement(t, "pytest>=5.0"),
				mustRequirement(t, "six==1.12.0"), // duplicate of install
			}},
			{Name: "docs", Requirements: []domain.Requirement{
				mustRequirement(t, "sphinx>=2.0"),
			}},
		},
	}

	combined := m.Combined([]string{"testing", "docs", "nonexistent"})

	var names []string
	for _, req := range combined {
		names = append(names, req.String())
	}
	assert.Equal(t, []string{"six==1.12.0", "pyyaml<6.0", "pytest>=5.0", "sphinx>=2.0"}, names)
}

func TestManifest_Group(t *testing.T) {
	m := &domain.Manifest{
		Extras: []domain.Group{
			{Name: "testing", Requirements: []domain.Requirement{mustRequirement(t, "pytest>=5.0")}},
		},
	}

	reqs, ok := m.Group("testing")
	require.True(t, ok)
	assert.Len(t, reqs, 1)

	_, ok = m.Group("docs")
	assert.False(t, ok)
}

func TestManifest_Clone(t *testing.T) {
	m := &domain.Manifest{
		Name:    "aiida",
		Install: []domain.Requirement{mustRequirement(t, "six==1.12.0")},
		Extras: []domain.Group{
			{Name: "testing", Requirements: []domain.Requirement{mustRequirement(t, "pytest>=5.0")}},
		},
		Classifiers: []string{"Programming Language :: Python :: 3.7"},
	}

	clone := m.Clone()
	clone.Install[0].Name = "changed"
	clone.Extras[0].Requirements[0].Name = "changed"
	clone.Classifiers[0] = "changed"

	assert.Equal(t, "six", m.Install[0].Name)
	assert.Equal(t, "pytest", m.Extras[0].Requirements[0].Name)
	assert.Equal(t, "Programming Language :: Python :: 3.7", m.Classifiers[0])
}

func TestSnapshot_Find(t *testing.T) {
	snap := domain.Snapshot{
		{Name: "Six", Version: "1.16.0"},
		{Name: "pyyaml", Version: "5.4.1"},
	}

	pin, found := snap.Find("six")
	require.True(t, found)
	assert.Equal(t, "1.16.0", pin.Version)

	pin, found = snap.Find("PyYAML")
	require.True(t, found)
	assert.Equal(t, "5.4.1", pin.Version)

	_, found = snap.Find("numpy")
	assert.False(t, found)
}
