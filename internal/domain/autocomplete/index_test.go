package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-search/lattice/internal/domain/thesaurus"
)

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	th := thesaurus.New("test")
	th.Insert("graph", thesaurus.NormalizedTerm{ID: 1, Value: "graph", URL: "https://example.com/graph"})
	th.Insert("grant", thesaurus.NormalizedTerm{ID: 2, Value: "grant"})
	th.Insert("gravity", thesaurus.NormalizedTerm{ID: 3, Value: "gravity"})
	th.Insert("motor", thesaurus.NormalizedTerm{ID: 4, Value: "motor"})
	th.Insert("power source", thesaurus.NormalizedTerm{ID: 5, Value: "battery"})

	ix, err := Build(th)
	require.NoError(t, err)
	return ix
}

func TestLookupPrefix_LexicalOrder(t *testing.T) {
	ix := buildTestIndex(t)
	results := ix.LookupPrefix("gra", 0)
	require.Len(t, results, 3)
	assert.Equal(t, "grant", results[0].Term)
	assert.Equal(t, "graph", results[1].Term)
	assert.Equal(t, "gravity", results[2].Term)
}

func TestLookupPrefix_Limit(t *testing.T) {
	ix := buildTestIndex(t)
	results := ix.LookupPrefix("gra", 2)
	require.Len(t, results, 2)
	assert.Equal(t, "grant", results[0].Term)
	assert.Equal(t, "graph", results[1].Term)
}

func TestLookupPrefix_NormalizesInput(t *testing.T) {
	ix := buildTestIndex(t)
	results := ix.LookupPrefix("  GRA ", 0)
	assert.Len(t, results, 3)
}

func TestLookupPrefix_EmptyPrefixIsNil(t *testing.T) {
	// Contract: an empty prefix never dumps the dictionary.
	ix := buildTestIndex(t)
	assert.Nil(t, ix.LookupPrefix("", 0))
}

func TestLookupPrefix_WhitespacePrefixIsNil(t *testing.T) {
	// Whitespace normalizes to the empty string and must hit the same
	// contract as "", not iterate the FST from the empty key.
	ix := buildTestIndex(t)
	assert.Nil(t, ix.LookupPrefix("   ", 0))
	assert.Nil(t, ix.LookupPrefix("\t \n", 0))
}

func TestLookupPrefix_Unscored(t *testing.T) {
	ix := buildTestIndex(t)
	for _, r := range ix.LookupPrefix("gra", 0) {
		assert.Zero(t, r.Score)
	}
}

func TestLookupPrefix_NoMatch(t *testing.T) {
	ix := buildTestIndex(t)
	assert.Empty(t, ix.LookupPrefix("zzz", 0))
}

func TestLookupPrefix_CarriesConceptMetadata(t *testing.T) {
	ix := buildTestIndex(t)
	results := ix.LookupPrefix("power", 0)
	require.Len(t, results, 1)
	assert.Equal(t, "power source", results[0].Term)
	assert.Equal(t, thesaurus.NormalizedTermValue("battery"), results[0].Value)
	assert.Equal(t, uint64(5), results[0].ID)
}

func TestBuild_EmptyThesaurus(t *testing.T) {
	ix, err := Build(thesaurus.New("empty"))
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
	assert.Empty(t, ix.LookupPrefix("a", 0))
}
