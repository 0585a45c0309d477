// Package autocomplete provides prefix lookup and typo-tolerant
// suggestion over the thesaurus term dictionary. The prefix side is a
// finite state transducer (vellum) over the sorted term set; the fuzzy
// side scores the same bounded candidate list with Jaro-Winkler, so no
// stop-word dictionary is needed — matching is always against curated
// terms, never free text.
package autocomplete

import (
	"bytes"
	"sort"
	"strings"

	"github.com/blevesearch/vellum"

	"github.com/lattice-search/lattice/internal/domain/thesaurus"
)

// Result is one suggested term.
type Result struct {
	Term  string                        // raw term key as stored in the index
	Value thesaurus.NormalizedTermValue // canonical concept value
	ID    uint64
	URL   string
	Score float64
}

// Index is an immutable autocomplete index over thesaurus keys.
type Index struct {
	fst  *vellum.FST
	meta map[string]thesaurus.NormalizedTerm
	keys []string // sorted; fuzzy candidate list
	name string
}

// Build constructs the index from every key in the thesaurus. Keys are
// inserted in lexical order (the FST builder requires it); the same
// order makes rebuilds byte-identical for identical input.
func Build(t *thesaurus.Thesaurus) (*Index, error) {
	keys := t.Keys()
	meta := make(map[string]thesaurus.NormalizedTerm, len(keys))
	flat := make([]string, 0, len(keys))

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		term, _ := t.Get(key)
		if err := builder.Insert([]byte(key), term.ID); err != nil {
			return nil, err
		}
		meta[string(key)] = term
		flat = append(flat, string(key))
	}
	if err := builder.Close(); err != nil {
		return nil, err
	}

	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return &Index{fst: fst, meta: meta, keys: flat, name: t.Name()}, nil
}

// Name returns the name of the thesaurus this index was built from.
func (ix *Index) Name() string { return ix.name }

// Len returns the number of indexed terms.
func (ix *Index) Len() int { return len(ix.keys) }

// LookupPrefix returns all terms starting with prefix, in lexical order.
// A prefix that normalizes to the empty string returns no results — by
// contract, so a stray empty query can never dump the whole dictionary.
// limit <= 0 means unbounded. Prefix results carry no score; ordering is
// lexical.
func (ix *Index) LookupPrefix(prefix string, limit int) []Result {
	prefix = string(thesaurus.Normalize(prefix))
	if prefix == "" {
		return nil
	}

	var results []Result
	itr, err := ix.fst.Iterator([]byte(prefix), nil)
	for err == nil {
		key, id := itr.Current()
		if !strings.HasPrefix(string(key), prefix) {
			break
		}
		results = append(results, ix.result(string(key), id, 0))
		if limit > 0 && len(results) >= limit {
			break
		}
		err = itr.Next()
	}
	return results
}

// result assembles a Result from the metadata table.
func (ix *Index) result(key string, id uint64, score float64) Result {
	term := ix.meta[key]
	return Result{
		Term:  key,
		Value: term.Value,
		ID:    id,
		URL:   term.URL,
		Score: score,
	}
}

// sortByScore orders results by descending score, ties broken lexically
// by term.
func sortByScore(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Term < results[j].Term
	})
}
