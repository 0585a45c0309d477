package rolegraph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-search/lattice/internal/domain/thesaurus"
)

// electronicsThesaurus: battery(1, synonym cr2032), motor(2), wire(3),
// solar(4). solar never co-occurs with anything in the test corpora.
func electronicsThesaurus() *thesaurus.Thesaurus {
	th := thesaurus.New("electronics")
	battery := thesaurus.NormalizedTerm{ID: 1, Value: "battery"}
	th.Insert("battery", battery)
	th.Insert("cr2032", battery)
	th.Insert("motor", thesaurus.NormalizedTerm{ID: 2, Value: "motor"})
	th.Insert("wire", thesaurus.NormalizedTerm{ID: 3, Value: "wire"})
	th.Insert("solar", thesaurus.NormalizedTerm{ID: 4, Value: "solar"})
	return th
}

func newTestGraph(t *testing.T, opts ...Option) *RoleGraph {
	t.Helper()
	rg, err := New("electronics", electronicsThesaurus(), opts...)
	require.NoError(t, err)
	return rg
}

func TestIngest_NodeRankIsTermFrequency(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery battery motor")

	assert.Equal(t, uint64(2), rg.NodeRank(1), "two battery occurrences")
	assert.Equal(t, uint64(1), rg.NodeRank(2))
	assert.Equal(t, uint64(0), rg.NodeRank(3), "wire never ingested")
	assert.Equal(t, 2, rg.NodeCount())
	assert.Equal(t, 1, rg.EdgeCount())
}

func TestIngest_SynonymResolvesToConcept(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "the cr2032 drives the motor")

	assert.Equal(t, uint64(1), rg.NodeRank(1), "cr2032 counts toward battery")
	assert.Equal(t, []uint64{1, 2}, rg.FindMatchingNodeIDs("cr2032 motor"))
}

func TestIngest_AllDistinctPairsGetEdges(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor wire")

	// 3 concepts → 3 unordered pairs.
	assert.Equal(t, 3, rg.EdgeCount())
}

func TestIngest_RepeatBumpsEdgeRank(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor")
	rg.Ingest("d2", "battery motor")

	assert.Equal(t, 1, rg.EdgeCount(), "same pair, same edge")
	snap := rg.Snapshot()
	require.Len(t, snap.Edges, 1)
	assert.Equal(t, uint64(2), snap.Edges[0].Rank)
	assert.Equal(t, []string{"d1", "d2"}, snap.Edges[0].DocIDs)
}

func TestQuery_AggregatesNodeEdgeAndDocRank(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery powers the motor")

	results := rg.Query("battery", 0, 0)
	require.Len(t, results, 1)
	// node rank 1 + edge rank 1 + per-doc rank 1
	assert.Equal(t, "d1", results[0].ID)
	assert.Equal(t, uint64(3), results[0].Rank)
	assert.Equal(t, []string{"battery"}, results[0].Tags)
	assert.Equal(t, []uint64{1}, results[0].Nodes)
}

func TestQuery_RanksAcrossDocuments(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor")
	rg.Ingest("d2", "battery wire")
	rg.Ingest("d2", "battery wire") // d2 mentions the pair twice

	results := rg.Query("battery", 0, 0)
	require.Len(t, results, 2)
	assert.Equal(t, "d2", results[0].ID, "heavier co-occurrence ranks first")
	assert.Greater(t, results[0].Rank, results[1].Rank)
}

func TestQuery_TieBreaksByDocID(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d2", "battery motor")
	rg.Ingest("d1", "battery wire")

	results := rg.Query("battery", 0, 0)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Rank, results[1].Rank)
	assert.Equal(t, "d1", results[0].ID, "equal ranks ordered by ID")
}

func TestQuery_SurfacesRelatedDocuments(t *testing.T) {
	// d1 never mentions wire, but wire co-occurred with battery in d2 and
	// battery links back into d1 — querying battery surfaces both.
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor")
	rg.Ingest("d2", "battery wire")

	results := rg.Query("battery", 0, 0)
	ids := []string{results[0].ID, results[1].ID}
	assert.ElementsMatch(t, []string{"d1", "d2"}, ids)
}

func TestQuery_OffsetAndLimit(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor")
	rg.Ingest("d2", "battery wire")

	page := rg.Query("battery", 1, 1)
	require.Len(t, page, 1)

	beyond := rg.Query("battery", 10, 5)
	assert.Empty(t, beyond)
}

func TestQuery_NoMatchesIsEmpty(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor")
	assert.Empty(t, rg.Query("unrelated prose", 0, 0))
}

func TestGranularityParagraph_LimitsCooccurrence(t *testing.T) {
	text := "battery in the first paragraph\n\nmotor in the second"

	whole := newTestGraph(t)
	whole.Ingest("d1", text)
	assert.Equal(t, 1, whole.EdgeCount(), "document scope links across paragraphs")

	para := newTestGraph(t, WithGranularity(GranularityParagraph))
	para.Ingest("d1", text)
	assert.Equal(t, 0, para.EdgeCount(), "paragraph scope does not")
	assert.Equal(t, uint64(1), para.NodeRank(1), "ranks still accumulate")
}

func TestPairKey_OrderInsensitive(t *testing.T) {
	assert.Equal(t, pairKey(2, 7), pairKey(7, 2))
	assert.NotEqual(t, pairKey(1, 2), pairKey(1, 3))
	// x*x+x+y with x >= y
	assert.Equal(t, uint64(7*7+7+2), pairKey(2, 7))
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor wire")
	rg.Ingest("d2", "battery wire")

	snap := rg.Snapshot()

	fresh := newTestGraph(t)
	fresh.Restore(snap)

	assert.Equal(t, rg.NodeCount(), fresh.NodeCount())
	assert.Equal(t, rg.EdgeCount(), fresh.EdgeCount())
	assert.Equal(t, rg.Query("battery", 0, 0), fresh.Query("battery", 0, 0))
	assert.Equal(t, snap, fresh.Snapshot(), "snapshot of a restore is identical")
}

func TestPathCheck_TrivialAndMissing(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor")

	// Zero or one matched concept is trivially connected.
	connected, approx := rg.PathCheck("no terms at all")
	assert.True(t, connected)
	assert.False(t, approx)

	connected, _ = rg.PathCheck("just a battery")
	assert.True(t, connected)

	// wire matched but never ingested: no node, no path.
	connected, approx = rg.PathCheck("battery and wire")
	assert.False(t, connected)
	assert.False(t, approx)
}

func TestPathCheck_ConnectedPair(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor")

	assert.True(t, rg.IsAllTermsConnectedByPath("battery motor"))
	assert.True(t, rg.IsAllTermsConnectedByPath("motor battery"), "verdict is order-insensitive")
}

func TestPathCheck_DisconnectedComponents(t *testing.T) {
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor")
	rg.Ingest("d2", "wire solar")

	// Two components: {battery,motor} and {wire,solar}.
	assert.False(t, rg.IsAllTermsConnectedByPath("battery solar"))
	assert.True(t, rg.IsAllTermsConnectedByPath("wire solar"))
}

func TestPathCheck_SteppingStone(t *testing.T) {
	// battery-motor and motor-wire: battery and wire connect through
	// motor even though motor is not in the checked text.
	rg := newTestGraph(t)
	rg.Ingest("d1", "battery motor")
	rg.Ingest("d2", "motor wire")

	assert.True(t, rg.IsAllTermsConnectedByPath("battery wire"))
}

func TestPathCheck_ApproximateBeyondBound(t *testing.T) {
	th := thesaurus.New("wide")
	var text string
	for i := 1; i <= 9; i++ {
		key := fmt.Sprintf("concept%d", i)
		th.Insert(thesaurus.NormalizedTermValue(key), thesaurus.NormalizedTerm{ID: uint64(i), Value: thesaurus.NormalizedTermValue(key)})
		text += key + " "
	}
	rg, err := New("wide", th)
	require.NoError(t, err)
	rg.Ingest("d1", text)

	// 9 targets exceed the exact bound; verdict is flagged approximate.
	connected, approx := rg.PathCheck(text)
	assert.True(t, connected)
	assert.True(t, approx)
}
