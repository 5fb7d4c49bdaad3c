package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery(t *testing.T) {
	q, err := NewQuery("csv", nil)
	require.NoError(t, err)
	assert.Equal(t, "csv", q.Term())
	assert.False(t, q.HasFilters())
	assert.Equal(t, "csv", q.String())
}

func TestNewQuery_Blank(t *testing.T) {
	for _, term := range []string{"", " ", "\t\n", "    "} {
		_, err := NewQuery(term, nil)
		assert.ErrorIs(t, err, ErrInvalidQuery, "term %q", term)
	}
}

func TestNewQuery_TermKeptVerbatim(t *testing.T) {
	q, err := NewQuery(" csv ", nil)
	require.NoError(t, err)
	assert.Equal(t, " csv ", q.Term())
}

func TestQuery_FiltersAreCopied(t *testing.T) {
	filters := map[string]string{"Group": "g1"}
	q, err := NewQuery("csv", filters)
	require.NoError(t, err)

	filters["Group"] = "changed"
	v, ok := q.Filter("group")
	require.True(t, ok)
	assert.Equal(t, "g1", v)

	out := q.Filters()
	out["group"] = "changed"
	v, _ = q.Filter("GROUP")
	assert.Equal(t, "g1", v)
}

func TestQuery_String(t *testing.T) {
	q, err := NewQuery("csv", map[string]string{"kind": "connection", "group": "Error Handling"})
	require.NoError(t, err)
	assert.Equal(t, `group:"Error Handling" kind:"connection" csv`, q.String())
}

func TestQuery_Key(t *testing.T) {
	scoped, err := NewQuery("a", map[string]string{"kind": "processor"})
	require.NoError(t, err)
	literal, err := NewQuery(`kind:"processor" a`, nil)
	require.NoError(t, err)

	assert.Equal(t, scoped.String(), literal.String())
	assert.NotEqual(t, scoped.Key(), literal.Key())

	t.Run("stable across filter order", func(t *testing.T) {
		first, err := NewQuery("csv", map[string]string{"kind": "connection", "group": "g1"})
		require.NoError(t, err)
		second, err := NewQuery("csv", map[string]string{"group": "g1", "kind": "connection"})
		require.NoError(t, err)
		assert.Equal(t, first.Key(), second.Key())
	})

	t.Run("term and filter value separated", func(t *testing.T) {
		first, err := NewQuery(`a" "kind"="b`, nil)
		require.NoError(t, err)
		second, err := NewQuery("a", map[string]string{"kind": "b"})
		require.NoError(t, err)
		assert.NotEqual(t, first.Key(), second.Key())
	})
}
