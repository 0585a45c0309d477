// Package ahocorasick provides multi-pattern string matching using an
// Aho-Corasick automaton. It wraps the petar-dambovaliev/aho-corasick
// library: a trie over all patterns plus failure links, one left-to-right
// pass over the input, O(n + m + z) total.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// TextMatch is one pattern occurrence with byte offsets.
type TextMatch struct {
	PatternIndex int // index into the original patterns slice
	Start        int // byte offset start (inclusive)
	End          int // byte offset end (exclusive)
}

// Scanner wraps an Aho-Corasick automaton for thesaurus-key scanning.
// Matching is case-insensitive and leftmost-longest: when several
// patterns start at the same position only the longest is reported, so
// nested terms ("battery" inside "battery cr2032") never double-report.
type Scanner struct {
	automaton aho.AhoCorasick
	patterns  []string
}

// NewScanner builds a scanner from the given patterns.
func NewScanner(patterns []string) *Scanner {
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		AsciiCaseInsensitive: true,
		MatchKind:            aho.LeftMostLongestMatch,
		DFA:                  true,
	})
	p := make([]string, len(patterns))
	copy(p, patterns)
	return &Scanner{
		automaton: builder.Build(p),
		patterns:  p,
	}
}

// Scan finds all pattern matches in content in one pass, in text order.
func (s *Scanner) Scan(content string) []TextMatch {
	iter := s.automaton.Iter(content)
	var matches []TextMatch
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		matches = append(matches, TextMatch{
			PatternIndex: m.Pattern(),
			Start:        m.Start(),
			End:          m.End(),
		})
	}
	return matches
}

// PatternCount returns the number of patterns in the automaton.
func (s *Scanner) PatternCount() int {
	return len(s.patterns)
}

// Pattern returns the pattern string at the given index.
func (s *Scanner) Pattern(idx int) string {
	if idx < 0 || idx >= len(s.patterns) {
		return ""
	}
	return s.patterns[idx]
}
