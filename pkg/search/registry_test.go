package search

import (
	"sync"
	"testing"

	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nameMatcher matches the component name only
var nameMatcher = MatcherFunc[flow.Component](func(c flow.Component, q *Query, m *[]string) {
	AddIfMatching(q.Term(), c.Name(), "Name", m)
})

// otherKind is a component type with a kind no matcher is registered for
type otherKind struct {
	flow.Base
}

func (o *otherKind) Kind() flow.Kind { return "widget" }

func mustQuery(t *testing.T, term string) *Query {
	t.Helper()
	q, err := NewQuery(term, nil)
	require.NoError(t, err)
	return q
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Kinds())
	assert.False(t, r.Frozen())
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(flow.KindFunnel, nameMatcher))
	assert.True(t, r.Has(flow.KindFunnel))
	assert.Equal(t, 1, r.Len())

	t.Run("duplicate kind", func(t *testing.T) {
		err := r.Register(flow.KindFunnel, nameMatcher)
		assert.ErrorIs(t, err, ErrDuplicateMatcher)
	})

	t.Run("nil matcher", func(t *testing.T) {
		err := r.Register(flow.KindLabel, nil)
		assert.ErrorIs(t, err, ErrInvalidMatcher)
		assert.False(t, r.Has(flow.KindLabel))
	})

	t.Run("empty kind", func(t *testing.T) {
		err := r.Register("", nameMatcher)
		assert.ErrorIs(t, err, ErrInvalidMatcher)
	})

	t.Run("frozen", func(t *testing.T) {
		r.Freeze()
		err := r.Register(flow.KindLabel, nameMatcher)
		assert.ErrorIs(t, err, ErrRegistryFrozen)
		assert.True(t, r.Frozen())
	})
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(flow.KindFunnel, nameMatcher)
	assert.Panics(t, func() {
		r.MustRegister(flow.KindFunnel, nameMatcher)
	})
}

func TestRegistry_Kinds(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(flow.KindProcessor, nameMatcher)
	r.MustRegister(flow.KindConnection, nameMatcher)
	r.MustRegister(flow.KindFunnel, nameMatcher)

	assert.Equal(t, []flow.Kind{flow.KindConnection, flow.KindFunnel, flow.KindProcessor}, r.Kinds())
}

func TestRegistry_Dispatch(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(flow.KindFunnel, nameMatcher)
	r.Freeze()

	t.Run("match", func(t *testing.T) {
		matches, err := r.Dispatch(&flow.Funnel{Base: flow.Base{Identifier: "f1", DisplayName: "Merge CSV"}}, mustQuery(t, "csv"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Name: Merge CSV"}, matches)
	})

	t.Run("no match is empty not nil", func(t *testing.T) {
		matches, err := r.Dispatch(&flow.Funnel{Base: flow.Base{Identifier: "f1"}}, mustQuery(t, "csv"))
		require.NoError(t, err)
		assert.NotNil(t, matches)
		assert.Empty(t, matches)
	})

	t.Run("unregistered kind", func(t *testing.T) {
		_, err := r.Dispatch(&flow.Label{Base: flow.Base{Identifier: "l1"}}, mustQuery(t, "csv"))
		assert.ErrorIs(t, err, ErrUnsupportedComponentKind)
		assert.Contains(t, err.Error(), "label")
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := r.Dispatch(&otherKind{}, mustQuery(t, "csv"))
		assert.ErrorIs(t, err, ErrUnsupportedComponentKind)
	})

	t.Run("nil component", func(t *testing.T) {
		_, err := r.Dispatch(nil, mustQuery(t, "csv"))
		assert.ErrorIs(t, err, ErrUnsupportedComponentKind)
	})

	t.Run("nil query", func(t *testing.T) {
		_, err := r.Dispatch(&flow.Funnel{}, nil)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})
}

func TestRegistry_DispatchRejectsForeignType(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(flow.KindLabel, Typed[*flow.Label](MatcherFunc[*flow.Label](
		func(l *flow.Label, q *Query, m *[]string) {
			AddIfMatching(q.Term(), l.Value, "Label", m)
		},
	)))

	_, err := r.Dispatch(&labelImpostor{}, mustQuery(t, "x"))
	assert.ErrorIs(t, err, ErrUnsupportedComponentKind)
}

// labelImpostor claims the label kind without being a *flow.Label
type labelImpostor struct {
	flow.Base
}

func (l *labelImpostor) Kind() flow.Kind { return flow.KindLabel }

func TestRegistry_Match(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(flow.KindFunnel, nameMatcher)

	funnel := &flow.Funnel{Base: flow.Base{Identifier: "f1", DisplayName: "CSV merge", Group: "g1"}}
	result, err := r.Match(funnel, mustQuery(t, "csv"))
	require.NoError(t, err)

	assert.Equal(t, &Result{
		ID:      "f1",
		GroupID: "g1",
		Name:    "CSV merge",
		Kind:    flow.KindFunnel,
		Matches: []string{"Name: CSV merge"},
	}, result)
	assert.True(t, result.Matched())
}

func TestRegistry_ConcurrentDispatch(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(flow.KindFunnel, nameMatcher)
	r.Freeze()

	funnel := &flow.Funnel{Base: flow.Base{Identifier: "f1", DisplayName: "csv csv"}}
	query := mustQuery(t, "CSV")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			matches, err := r.Dispatch(funnel, query)
			assert.NoError(t, err)
			assert.Equal(t, []string{"Name: csv csv"}, matches)
		}()
	}
	wg.Wait()
}
