package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzySearch_ToleratesTransposition(t *testing.T) {
	ix := buildTestIndex(t)
	// "grpah" is "graph" with one transposition; only graph clears 0.8.
	results := ix.FuzzySearch("grpah", 0.8, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "graph", results[0].Term)
	assert.Greater(t, results[0].Score, 0.9)
}

func TestFuzzySearch_SortedByScoreDesc(t *testing.T) {
	ix := buildTestIndex(t)
	results := ix.FuzzySearch("grpah", 0.5, 0)
	require.GreaterOrEqual(t, len(results), 2)
	assert.Equal(t, "graph", results[0].Term, "closest candidate first")
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestFuzzySearch_ZeroThresholdReturnsAll(t *testing.T) {
	ix := buildTestIndex(t)
	results := ix.FuzzySearch("x", 0, 0)
	assert.Len(t, results, ix.Len())
}

func TestFuzzySearch_Limit(t *testing.T) {
	ix := buildTestIndex(t)
	results := ix.FuzzySearch("gr", 0, 2)
	assert.Len(t, results, 2)
}

func TestFuzzySearch_EmptyQueryIsNil(t *testing.T) {
	ix := buildTestIndex(t)
	assert.Nil(t, ix.FuzzySearch("", 0, 0))
}

func TestFuzzySearchLevenshtein_WithinDistance(t *testing.T) {
	ix := buildTestIndex(t)
	// "grph" is one deletion away from "graph".
	results := ix.FuzzySearchLevenshtein("grph", 1, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "graph", results[0].Term)
	assert.InDelta(t, 0.5, results[0].Score, 1e-9) // 1/(1+1)
}

func TestFuzzySearchLevenshtein_MatchesSingleWordOfPhrase(t *testing.T) {
	// "sorce" is one edit from "source", a word inside "power source".
	ix := buildTestIndex(t)
	results := ix.FuzzySearchLevenshtein("sorce", 1, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "power source", results[0].Term)
}

func TestFuzzySearchLevenshtein_BeyondDistanceExcluded(t *testing.T) {
	ix := buildTestIndex(t)
	assert.Empty(t, ix.FuzzySearchLevenshtein("zzzzzz", 2, 0))
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"power", "source"}, splitWords("power source"))
	assert.Equal(t, []string{"graph"}, splitWords("graph"))
	assert.Nil(t, splitWords(""))
}
