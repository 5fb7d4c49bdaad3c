package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryParser_ParseBasic(t *testing.T) {
	parser := NewQueryParser()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple term",
			input:    "csv",
			expected: "csv",
		},
		{
			name:     "multiple words keep order",
			input:    "ingest csv reader",
			expected: "ingest csv reader",
		},
		{
			name:     "whitespace collapsed",
			input:    "  ingest \t  csv  ",
			expected: "ingest csv",
		},
		{
			name:     "unknown key kept in term",
			input:    "https://dr.example.com",
			expected: "https://dr.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Term())
			assert.False(t, result.HasFilters())
		})
	}
}

func TestQueryParser_ParseFilters(t *testing.T) {
	parser := NewQueryParser()

	tests := []struct {
		name    string
		input   string
		term    string
		filters map[string]string
	}{
		{
			name:    "group filter",
			input:   "csv group:g1",
			term:    "csv",
			filters: map[string]string{"group": "g1"},
		},
		{
			name:    "kind filter first",
			input:   "kind:connection csv",
			term:    "csv",
			filters: map[string]string{"kind": "connection"},
		},
		{
			name:    "quoted value",
			input:   `group:"Error Handling" retry`,
			term:    "retry",
			filters: map[string]string{"group": "Error Handling"},
		},
		{
			name:    "case-insensitive key",
			input:   "KIND:processor archive",
			term:    "archive",
			filters: map[string]string{"kind": "processor"},
		},
		{
			name:    "filters between words",
			input:   "ingest kind:processor reader",
			term:    "ingest reader",
			filters: map[string]string{"kind": "processor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.term, result.Term())
			assert.Equal(t, tt.filters, result.Filters())
		})
	}
}

func TestQueryParser_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "group:g1", `kind:"connection"  `} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseQuery(input)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}
