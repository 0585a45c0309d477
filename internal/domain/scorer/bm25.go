package scorer

import (
	"math"
	"strings"
	"unicode"
)

// Okapi BM25 parameters. Stock values; tuning them is corpus work this
// engine does not do.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// BM25 is a classic Okapi BM25 scorer over an in-memory corpus. Add the
// corpus once with AddDocument, then Score is read-only. Without any
// corpus it degrades to term-frequency scoring (idf defaults apply).
type BM25 struct {
	docCount  int
	docFreq   map[string]int // term -> number of docs containing it
	totalLen  int
	docTokens map[string]int // docID -> token count
}

// NewBM25 returns an empty BM25 scorer.
func NewBM25() *BM25 {
	return &BM25{
		docFreq:   make(map[string]int),
		docTokens: make(map[string]int),
	}
}

// Name implements Scorer.
func (s *BM25) Name() string { return string(KindBM25) }

// AddDocument feeds one document into the corpus statistics.
func (s *BM25) AddDocument(doc Document) {
	tokens := tokenize(doc.Title + " " + doc.Body)
	s.docCount++
	s.totalLen += len(tokens)
	s.docTokens[doc.ID] = len(tokens)

	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if !seen[tok] {
			seen[tok] = true
			s.docFreq[tok]++
		}
	}
}

// Score implements Scorer.
func (s *BM25) Score(query string, doc Document) float64 {
	queryTerms := tokenize(query)
	docTerms := tokenize(doc.Title + " " + doc.Body)
	if len(queryTerms) == 0 || len(docTerms) == 0 {
		return 0
	}

	tf := make(map[string]int, len(docTerms))
	for _, t := range docTerms {
		tf[t]++
	}

	avgLen := float64(len(docTerms))
	if s.docCount > 0 {
		avgLen = float64(s.totalLen) / float64(s.docCount)
	}

	var score float64
	for _, term := range queryTerms {
		freq := tf[term]
		if freq == 0 {
			continue
		}
		idf := s.idf(term)
		num := float64(freq) * (bm25K1 + 1)
		den := float64(freq) + bm25K1*(1-bm25B+bm25B*float64(len(docTerms))/avgLen)
		score += idf * num / den
	}
	return score
}

// idf computes the standard smoothed inverse document frequency. With an
// empty corpus every term gets the neutral idf of a singleton corpus.
func (s *BM25) idf(term string) float64 {
	n := s.docCount
	if n == 0 {
		n = 1
	}
	df := s.docFreq[term]
	return math.Log(1 + (float64(n)-float64(df)+0.5)/(float64(df)+0.5))
}

// tokenize lowercases and splits on any non-letter, non-digit rune.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
