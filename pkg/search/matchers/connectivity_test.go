package matchers

import (
	"testing"

	"github.com/platinummonkey/flowsearch/pkg/flow"
	"github.com/platinummonkey/flowsearch/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func query(t *testing.T, term string) *search.Query {
	t.Helper()
	q, err := search.NewQuery(term, nil)
	require.NoError(t, err)
	return q
}

func csvConnection() *flow.Connection {
	source := &flow.Processor{Base: flow.Base{Identifier: "n1", DisplayName: "Ingest-CSV-Reader"}}
	destination := &flow.Processor{Base: flow.Base{Identifier: "n2", DisplayName: "Archive", Comment: "writes csv backups"}}
	return flow.NewConnection(flow.Base{Identifier: "c1"}, source, destination)
}

func runConnectivity(t *testing.T, conn *flow.Connection, term string) []string {
	t.Helper()
	var matches []string
	ConnectivityMatcher{}.Match(conn, query(t, term), &matches)
	return matches
}

func TestConnectivityMatcher_SourceAndDestination(t *testing.T) {
	matches := runConnectivity(t, csvConnection(), "csv")
	assert.Equal(t, []string{
		"Source name: Ingest-CSV-Reader",
		"Destination comments: writes csv backups",
	}, matches)
}

func TestConnectivityMatcher_CaseInsensitive(t *testing.T) {
	matches := runConnectivity(t, csvConnection(), "N1")
	assert.Equal(t, []string{"Source id: n1"}, matches)
}

func TestConnectivityMatcher_Order(t *testing.T) {
	source := &flow.Processor{Base: flow.Base{Identifier: "x-src", DisplayName: "x source", Comment: "x notes"}}
	destination := &flow.Funnel{Base: flow.Base{Identifier: "x-dst", DisplayName: "x dest", Comment: "x more notes"}}
	conn := flow.NewConnection(flow.Base{Identifier: "c1"}, source, destination)

	matches := runConnectivity(t, conn, "x")
	assert.Equal(t, []string{
		"Source id: x-src",
		"Source name: x source",
		"Source comments: x notes",
		"Destination id: x-dst",
		"Destination name: x dest",
		"Destination comments: x more notes",
	}, matches)
}

func TestConnectivityMatcher_NullComments(t *testing.T) {
	source := &flow.Processor{Base: flow.Base{Identifier: "a", DisplayName: "comments"}}
	destination := &flow.Processor{Base: flow.Base{Identifier: "b", DisplayName: "b"}}
	conn := flow.NewConnection(flow.Base{Identifier: "c1"}, source, destination)

	var matches []string
	assert.NotPanics(t, func() {
		ConnectivityMatcher{}.Match(conn, query(t, "comments"), &matches)
	})
	assert.Equal(t, []string{"Source name: comments"}, matches)
	for _, m := range matches {
		assert.NotContains(t, m, "comments:")
	}
}

func TestConnectivityMatcher_OneHopOnly(t *testing.T) {
	// The destination is itself connected onward; only its own attributes count.
	far := &flow.Processor{Base: flow.Base{Identifier: "far", DisplayName: "needle"}}
	mid := &flow.Funnel{Base: flow.Base{Identifier: "mid"}}
	flow.NewConnection(flow.Base{Identifier: "c2"}, mid, far)

	src := &flow.Processor{Base: flow.Base{Identifier: "src"}}
	conn := flow.NewConnection(flow.Base{Identifier: "c1"}, src, mid)

	assert.Empty(t, runConnectivity(t, conn, "needle"))
}

func TestConnectivityMatcher_UnresolvedEndpoints(t *testing.T) {
	conn := &flow.Connection{Base: flow.Base{Identifier: "c1"}, SourceID: "n1"}
	assert.Empty(t, runConnectivity(t, conn, "n1"))
}

func TestConnectivityMatcher_Deterministic(t *testing.T) {
	conn := csvConnection()
	first := runConnectivity(t, conn, "r")
	second := runConnectivity(t, conn, "r")
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestConnectivityMatcher_AppendsToExisting(t *testing.T) {
	matches := []string{"Id: c1"}
	ConnectivityMatcher{}.Match(csvConnection(), query(t, "archive"), &matches)
	assert.Equal(t, []string{"Id: c1", "Destination name: Archive"}, matches)
}
