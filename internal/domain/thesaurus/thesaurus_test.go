package thesaurus

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_LowercasesAndTrims(t *testing.T) {
	assert.Equal(t, NormalizedTermValue("rust graph"), Normalize("  Rust Graph  "))
	assert.Equal(t, NormalizedTermValue("cr2032"), Normalize("CR2032"))
}

func TestNormalize_CollapsesInnerWhitespace(t *testing.T) {
	assert.Equal(t, NormalizedTermValue("power source"), Normalize("power \t  source"))
	assert.Equal(t, NormalizedTermValue(""), Normalize("   "))
}

func TestThesaurus_InsertGet(t *testing.T) {
	th := New("test")
	concept := NormalizedTerm{ID: 3, Value: "graph"}
	th.Insert("graph", concept)
	th.Insert("rust graph", concept)

	got, ok := th.Get("rust graph")
	require.True(t, ok)
	assert.Equal(t, uint64(3), got.ID)
	assert.Equal(t, NormalizedTermValue("graph"), got.Value)

	_, ok = th.Get("unknown")
	assert.False(t, ok)
	assert.Equal(t, 2, th.Len())
}

func TestThesaurus_KeysSorted(t *testing.T) {
	th := New("test")
	th.Insert("zebra", NormalizedTerm{ID: 1, Value: "zebra"})
	th.Insert("apple", NormalizedTerm{ID: 2, Value: "apple"})
	th.Insert("mango", NormalizedTerm{ID: 3, Value: "mango"})

	keys := th.Keys()
	assert.Equal(t, []NormalizedTermValue{"apple", "mango", "zebra"}, keys)
}

func TestThesaurus_JSONRoundTrip(t *testing.T) {
	th := New("engineer")
	th.Insert("graph", NormalizedTerm{ID: 3, Value: "graph", URL: "https://example.com/graph"})
	th.Insert("knowledge graph based embeddings", NormalizedTerm{ID: 3, Value: "graph"})

	data, err := json.Marshal(th)
	require.NoError(t, err)

	var back Thesaurus
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "engineer", back.Name())
	assert.Equal(t, 2, back.Len())

	got, ok := back.Get("graph")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/graph", got.URL)
}

func TestThesaurus_JSONShape(t *testing.T) {
	// Wire format: {"name":..., "data":{term:{"id":..,"nterm":..}}}
	th := New("n")
	th.Insert("life cycle concepts", NormalizedTerm{ID: 1, Value: "life cycle models"})

	data, err := json.Marshal(th)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "name")
	assert.Contains(t, raw, "data")

	var entries map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw["data"], &entries))
	entry := entries["life cycle concepts"]
	assert.Equal(t, float64(1), entry["id"])
	assert.Equal(t, "life cycle models", entry["nterm"])
	assert.NotContains(t, entry, "url", "empty url omitted")
}

func TestThesaurus_UnmarshalEmptyData(t *testing.T) {
	var th Thesaurus
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &th))
	assert.Equal(t, 0, th.Len())
	th.Insert("a", NormalizedTerm{ID: 1, Value: "a"}) // must not panic on nil map
}
