// Package automata implements multi-pattern term matching over a
// thesaurus: find every thesaurus key occurring in arbitrary text, in one
// pass, with byte positions. Built once per thesaurus, immutable after,
// safe for concurrent scans.
package automata

import (
	"fmt"

	"github.com/lattice-search/lattice/internal/adapters/ahocorasick"
	"github.com/lattice-search/lattice/internal/domain/thesaurus"
)

// Match is one term occurrence in scanned text.
type Match struct {
	Concept thesaurus.NormalizedTerm // the concept the matched key resolves to
	Term    string                   // as-matched substring of the input
	Start   int                      // byte offset, inclusive
	End     int                      // byte offset, exclusive
}

// BuildError reports structurally invalid thesaurus data at automaton
// construction time. Scanning never fails; zero matches is a valid result.
type BuildError struct {
	Reason string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("automaton build: %s", e.Reason)
}

// Automaton is an immutable multi-pattern matcher over thesaurus keys.
type Automaton struct {
	scanner *ahocorasick.Scanner
	terms   []thesaurus.NormalizedTerm // concept per pattern index
}

// Build constructs an automaton from every key in the thesaurus.
// Keys are taken in lexical order so identical input yields an identical
// automaton. Fails only on structurally invalid data (empty key).
func Build(t *thesaurus.Thesaurus) (*Automaton, error) {
	keys := t.Keys()
	patterns := make([]string, 0, len(keys))
	terms := make([]thesaurus.NormalizedTerm, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			return nil, &BuildError{Reason: "empty term string in thesaurus"}
		}
		term, _ := t.Get(key)
		patterns = append(patterns, string(key))
		terms = append(terms, term)
	}
	return &Automaton{
		scanner: ahocorasick.NewScanner(patterns),
		terms:   terms,
	}, nil
}

// Len returns the number of patterns in the automaton.
func (a *Automaton) Len() int { return a.scanner.PatternCount() }

// FindMatches scans text and returns every term occurrence in text order.
// Matching is leftmost-longest: at a given start offset the longest
// thesaurus key wins and the shorter keys it contains are suppressed.
// Total function over arbitrary UTF-8 input.
func (a *Automaton) FindMatches(text string) []Match {
	raw := a.scanner.Scan(text)
	if len(raw) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(raw))
	for _, m := range raw {
		matches = append(matches, Match{
			Concept: a.terms[m.PatternIndex],
			Term:    text[m.Start:m.End],
			Start:   m.Start,
			End:     m.End,
		})
	}
	return matches
}

// ConceptIDs returns the distinct concept IDs matched in text, in
// first-occurrence order.
func (a *Automaton) ConceptIDs(text string) []uint64 {
	var ids []uint64
	seen := make(map[uint64]bool)
	for _, m := range a.FindMatches(text) {
		if !seen[m.Concept.ID] {
			seen[m.Concept.ID] = true
			ids = append(ids, m.Concept.ID)
		}
	}
	return ids
}

// ConceptSequence returns every matched concept ID in text order,
// including repeats. The ingestion and scoring paths consume this.
func (a *Automaton) ConceptSequence(text string) []uint64 {
	matches := a.FindMatches(text)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]uint64, len(matches))
	for i, m := range matches {
		ids[i] = m.Concept.ID
	}
	return ids
}
