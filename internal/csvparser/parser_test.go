package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/masterdata-converter/internal/config"
)

var defaults = config.InputConfig{Delimiter: ","}

func TestParseReader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		settings config.InputConfig
		expected [][]string
	}{
		{
			name:     "header and rows",
			input:    "Country,Id,Company\nAT,1,Acme Corp\nNL,2,Beta BV\n",
			settings: defaults,
			expected: [][]string{
				{"Country", "Id", "Company"},
				{"AT", "1", "Acme Corp"},
				{"NL", "2", "Beta BV"},
			},
		},
		{
			name:     "variable field counts",
			input:    "a,b,c\n1\n1,2,3,4\n",
			settings: defaults,
			expected: [][]string{{"a", "b", "c"}, {"1"}, {"1", "2", "3", "4"}},
		},
		{
			name:     "quoted comma and leading space kept",
			input:    "h\n\"Acme, Inc.\", x\n",
			settings: defaults,
			expected: [][]string{{"h"}, {"Acme, Inc.", " x"}},
		},
		{
			name:     "blank lines are not rows",
			input:    "h\n\nAT,1\n\n",
			settings: defaults,
			expected: [][]string{{"h"}, {"AT", "1"}},
		},
		{
			name:     "semicolon delimiter",
			input:    "a;b\n1;2\n",
			settings: config.InputConfig{Delimiter: ";"},
			expected: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:     "non-ascii preserved",
			input:    "h\nAT,Österreichische Stromnetz\n",
			settings: defaults,
			expected: [][]string{{"h"}, {"AT", "Österreichische Stromnetz"}},
		},
		{
			name:     "empty input",
			input:    "",
			settings: defaults,
			expected: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseReader(strings.NewReader(tt.input), tt.settings)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, table.Rows)
		})
	}
}

func TestParse_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pa.csv")
	require.NoError(t, os.WriteFile(path, []byte("Country,Id\nAT,1\n"), 0644))

	table, err := Parse(path, defaults)
	require.NoError(t, err)
	assert.Equal(t, path, table.SourceFile)
	assert.Len(t, table.Rows, 2)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.csv"), defaults)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
