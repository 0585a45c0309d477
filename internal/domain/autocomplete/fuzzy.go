package autocomplete

import (
	"github.com/xrash/smetrics"

	"github.com/lattice-search/lattice/internal/domain/thesaurus"
)

// Jaro-Winkler parameters: standard boost threshold and prefix size.
// Winkler's prefix bonus is what makes this a good autocomplete metric —
// typos tend to come after a correct first few characters.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// FuzzySearch scores every indexed term against query with Jaro-Winkler
// similarity and returns all candidates at or above threshold, sorted by
// descending similarity, ties broken lexically. A threshold of 0 returns
// the full candidate set. limit <= 0 means unbounded.
func (ix *Index) FuzzySearch(query string, threshold float64, limit int) []Result {
	if query == "" {
		return nil
	}
	q := string(thesaurus.Normalize(query))

	var results []Result
	for _, key := range ix.keys {
		score := smetrics.JaroWinkler(q, key, jwBoostThreshold, jwPrefixSize)
		if score < threshold {
			continue
		}
		term := ix.meta[key]
		results = append(results, Result{
			Term:  key,
			Value: term.Value,
			ID:    term.ID,
			URL:   term.URL,
			Score: score,
		})
	}
	sortByScore(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// FuzzySearchLevenshtein is the edit-distance variant: candidates within
// maxDistance of the query (whole term or any single word of it), scored
// as 1/(1+distance). Useful when exact edit-distance control matters.
func (ix *Index) FuzzySearchLevenshtein(query string, maxDistance int, limit int) []Result {
	if query == "" {
		return nil
	}
	q := string(thesaurus.Normalize(query))

	var results []Result
	for _, key := range ix.keys {
		dist := smetrics.WagnerFischer(q, key, 1, 1, 1)
		for _, word := range splitWords(key) {
			if d := smetrics.WagnerFischer(q, word, 1, 1, 1); d < dist {
				dist = d
			}
		}
		if dist > maxDistance {
			continue
		}
		term := ix.meta[key]
		results = append(results, Result{
			Term:  key,
			Value: term.Value,
			ID:    term.ID,
			URL:   term.URL,
			Score: 1.0 / (1.0 + float64(dist)),
		})
	}
	sortByScore(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// splitWords splits a multi-word term on spaces. Keys are already
// whitespace-collapsed by normalization.
func splitWords(term string) []string {
	var words []string
	start := -1
	for i := 0; i < len(term); i++ {
		if term[i] == ' ' {
			if start >= 0 {
				words = append(words, term[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, term[start:])
	}
	return words
}
