package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsync/internal/core/domain"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Requirement
	}{
		{
			name:  "bare name",
			input: "six",
			want:  domain.Requirement{Name: "six"},
		},
		{
			name:  "equality pin",
			input: "six==1.12.0",
			want: domain.Requirement{
				Name:       "six",
				Specifiers: domain.SpecifierSet{{Op: "==", Version: "1.12.0"}},
			},
		},
		{
			name:  "range constraints",
			input: "aldjemy>=0.9.1,<2.0",
			want: domain.Requirement{
				Name: "aldjemy",
				Specifiers: domain.SpecifierSet{
					{Op: ">=", Version: "0.9.1"},
					{Op: "<", Version: "2.0"},
				},
			},
		},
		{
			name:  "extras",
			input: "graphviz[dot]>=0.10",
			want: domain.Requirement{
				Name:       "graphviz",
				Extras:     []string{"dot"},
				Specifiers: domain.SpecifierSet{{Op: ">=", Version: "0.10"}},
			},
		},
		{
			name:  "marker",
			input: "futures; python_version=='2.7'",
			want: domain.Requirement{
				Name:   "futures",
				Marker: "python_version=='2.7'",
			},
		},
		{
			name:  "specifier and marker",
			input: "mock==2.0.0 ; python_version<'3.0'",
			want: domain.Requirement{
				Name:       "mock",
				Specifiers: domain.SpecifierSet{{Op: "==", Version: "2.0.0"}},
				Marker:     "python_version<'3.0'",
			},
		},
		{
			name:  "compatible release",
			input: "python~=3.7",
			want: domain.Requirement{
				Name:       "python",
				Specifiers: domain.SpecifierSet{{Op: "~=", Version: "3.7"}},
			},
		},
		{
			name:  "surrounding whitespace",
			input: "  pg8000 >= 1.13 ",
			want: domain.Requirement{
				Name:       "pg8000",
				Specifiers: domain.SpecifierSet{{Op: ">=", Version: "1.13"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseRequirement(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRequirement_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"==1.0",
		"six ==",
		"six=1.0",
		"two words",
		"name[]==1.0",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := domain.ParseRequirement(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidRequirement))
		})
	}
}

func TestRequirement_String(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"six==1.12.0", "six==1.12.0"},
		{"  pg8000 >= 1.13 ", "pg8000>=1.13"},
		{"graphviz[dot] >=0.10", "graphviz[dot]>=0.10"},
		{"futures; python_version=='2.7'", "futures; python_version=='2.7'"},
		{"aldjemy >= 0.9.1, < 2.0", "aldjemy>=0.9.1,<2.0"},
	}

	for _, tt := range tests {
		req, err := domain.ParseRequirement(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, req.String())
	}
}

func TestRequirement_Key(t *testing.T) {
	a, err := domain.ParseRequirement("PyYAML>=5.1,<6.0")
	require.NoError(t, err)
	b, err := domain.ParseRequirement("pyyaml<6.0,>=5.1")
	require.NoError(t, err)

	// Same name modulo case, same constraints modulo order.
	assert.Equal(t, a.Key(), b.Key())

	c, err := domain.ParseRequirement("pyyaml>=5.1")
	require.NoError(t, err)
	assert.NotEqual(t, a.Key(), c.Key())

	// Extras do not participate in the comparison key.
	d, err := domain.ParseRequirement("pyyaml[full]>=5.1,<6.0")
	require.NoError(t, err)
	assert.Equal(t, a.Key(), d.Key())
}

func TestRequirement_Clone(t *testing.T) {
	original, err := domain.ParseRequirement("graphviz[dot]>=0.10")
	require.NoError(t, err)

	clone := original.Clone()
	clone.Extras[0] = "changed"
	clone.Specifiers[0].Version = "9.9"

	assert.Equal(t, "dot", original.Extras[0])
	assert.Equal(t, "0.10", original.Specifiers[0].Version)
}
