package thesaurus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{"name":"engineer","data":{"graph":{"id":3,"nterm":"graph"},"knowledge graph":{"id":3,"nterm":"graph"}}}`

func TestLoadJSON_Valid(t *testing.T) {
	th, err := LoadJSON([]byte(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, "engineer", th.Name())
	assert.Equal(t, 2, th.Len())
}

func TestLoadJSON_Invalid(t *testing.T) {
	_, err := LoadJSON([]byte("{not json"))
	require.Error(t, err)
	var be *BuildError
	assert.ErrorAs(t, err, &be)
}

func TestLoadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thesaurus.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))

	th, err := LoadFile(path)
	require.NoError(t, err)
	got, ok := th.Get("knowledge graph")
	require.True(t, ok)
	assert.Equal(t, uint64(3), got.ID)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestFetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	th, err := Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, th.Len())
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
