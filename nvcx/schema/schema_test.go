package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Version
		wantErr  bool
	}{
		{
			name:     "go case",
			input:    "1.0",
			expected: Version{Major: 1, Minor: 0},
		},
		{
			name:     "multi digit",
			input:    "12.34",
			expected: Version{Major: 12, Minor: 34},
		},
		{
			name:     "surrounding whitespace in fields",
			input:    "1 . 0",
			expected: Version{Major: 1, Minor: 0},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "major only",
			input:   "1",
			wantErr: true,
		},
		{
			name:    "too many fields",
			input:   "1.0.0",
			wantErr: true,
		},
		{
			name:    "trailing dot",
			input:   "1.",
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   "one.zero",
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := Parse(test.input)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "1.0", Version{Major: 1, Minor: 0}.String())
	assert.Equal(t, "12.34", Version{Major: 12, Minor: 34}.String())
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		name     string
		version  Version
		other    Version
		expected int
	}{
		{
			name:     "equal",
			version:  Version{1, 0},
			other:    Version{1, 0},
			expected: 0,
		},
		{
			name:     "older major",
			version:  Version{1, 9},
			other:    Version{2, 0},
			expected: -1,
		},
		{
			name:     "newer major",
			version:  Version{2, 0},
			other:    Version{1, 9},
			expected: 1,
		},
		{
			name:     "older minor",
			version:  Version{1, 0},
			other:    Version{1, 1},
			expected: -1,
		},
		{
			name:     "newer minor",
			version:  Version{1, 2},
			other:    Version{1, 1},
			expected: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := test.version.Compare(test.other)
			switch {
			case test.expected < 0:
				assert.Less(t, actual, 0)
			case test.expected > 0:
				assert.Greater(t, actual, 0)
			default:
				assert.Zero(t, actual)
			}
		})
	}
}

func TestVersionCheck(t *testing.T) {
	supported := Version{Major: 2, Minor: 1}

	tests := []struct {
		name    string
		have    Version
		wantErr error
	}{
		{
			name: "same version",
			have: Version{2, 1},
		},
		{
			name: "older minor is readable",
			have: Version{2, 0},
		},
		{
			name:    "newer major",
			have:    Version{3, 0},
			wantErr: &NewerSchemaError{},
		},
		{
			name:    "older major",
			have:    Version{1, 9},
			wantErr: &OlderSchemaError{},
		},
		{
			name:    "newer minor",
			have:    Version{2, 2},
			wantErr: &NewerSchemaError{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.have.Check(supported)
			switch expected := test.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
			case *NewerSchemaError:
				var newerErr *NewerSchemaError
				require.ErrorAs(t, err, &newerErr)
				assert.Equal(t, test.have, newerErr.Have)
				assert.Equal(t, supported, newerErr.Want)
			case *OlderSchemaError:
				var olderErr *OlderSchemaError
				require.ErrorAs(t, err, &olderErr)
				assert.Equal(t, test.have, olderErr.Have)
				assert.Equal(t, supported, olderErr.Want)
			default:
				t.Fatalf("unexpected expectation type: %T", expected)
			}
		})
	}
}

func TestDefinitionMatchesCurrentVersion(t *testing.T) {
	// the embedded DTD must describe the same format version the library claims to write
	require.NotEmpty(t, Definition())
	assert.True(t, strings.Contains(Definition(), "version "+Current().String()),
		"DTD does not mention format version %s", Current())

	for _, element := range []string{RootElement, "SERIES", "BOOK", "Title", "Desc", "Notes"} {
		assert.Contains(t, Definition(), "<!ELEMENT "+element)
	}
	assert.Contains(t, Definition(), VersionAttribute)
}
