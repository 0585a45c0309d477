// Package thesaurus holds the curated term dictionary every other engine
// component is built from: a mapping from raw term strings (synonyms) to
// normalized concepts. It is pure data — matching, indexing and ranking
// live in their own packages.
package thesaurus

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NormalizedTermValue is a term string normalized for matching:
// lowercased, trimmed, inner whitespace collapsed to single spaces.
// Query-time input goes through the same normalization so capitalization
// differences never cause false negatives.
type NormalizedTermValue string

// Normalize produces the canonical matching form of a raw term string.
func Normalize(s string) NormalizedTermValue {
	fields := strings.Fields(strings.ToLower(s))
	return NormalizedTermValue(strings.Join(fields, " "))
}

// String returns the underlying string.
func (v NormalizedTermValue) String() string { return string(v) }

// NormalizedTerm is the canonical concept a raw term resolves to.
// Identity is by ID; Value is the display/matching form.
type NormalizedTerm struct {
	ID    uint64              `json:"id"`
	Value NormalizedTermValue `json:"nterm"`
	URL   string              `json:"url,omitempty"`
}

// Thesaurus maps raw term strings (normalized) to concepts. Many keys may
// fan in to the same concept; each key maps to exactly one.
type Thesaurus struct {
	name string
	data map[NormalizedTermValue]NormalizedTerm
}

// New creates an empty thesaurus with the given name.
func New(name string) *Thesaurus {
	return &Thesaurus{
		name: name,
		data: make(map[NormalizedTermValue]NormalizedTerm),
	}
}

// Name returns the thesaurus name (usually the role it belongs to).
func (t *Thesaurus) Name() string { return t.name }

// Len returns the number of raw-term keys.
func (t *Thesaurus) Len() int { return len(t.data) }

// Insert adds or replaces the concept for a raw term key.
func (t *Thesaurus) Insert(key NormalizedTermValue, term NormalizedTerm) {
	t.data[key] = term
}

// Get returns the concept for a raw term key.
func (t *Thesaurus) Get(key NormalizedTermValue) (NormalizedTerm, bool) {
	term, ok := t.data[key]
	return term, ok
}

// Keys returns all raw-term keys in lexical order. Sorted so that every
// structure built from the thesaurus (automaton, FST, graph) is
// deterministic for identical input.
func (t *Thesaurus) Keys() []NormalizedTermValue {
	keys := make([]NormalizedTermValue, 0, len(t.data))
	for k := range t.data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// thesaurusJSON is the serialized shape:
//
//	{"name": "...", "data": {"raw term": {"id": 1, "nterm": "...", "url": "..."}}}
type thesaurusJSON struct {
	Name string                                 `json:"name"`
	Data map[NormalizedTermValue]NormalizedTerm `json:"data"`
}

// MarshalJSON implements json.Marshaler.
func (t *Thesaurus) MarshalJSON() ([]byte, error) {
	return json.Marshal(thesaurusJSON{Name: t.name, Data: t.data})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Thesaurus) UnmarshalJSON(b []byte) error {
	var tj thesaurusJSON
	if err := json.Unmarshal(b, &tj); err != nil {
		return err
	}
	t.name = tj.Name
	t.data = tj.Data
	if t.data == nil {
		t.data = make(map[NormalizedTermValue]NormalizedTerm)
	}
	return nil
}

// BuildError reports a failed thesaurus build. Construction-time problems
// are configuration errors and must be visible; query-time "no match" is
// never an error.
type BuildError struct {
	Source string // file path, URL, or source description
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("thesaurus build from %s: %v", e.Source, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
