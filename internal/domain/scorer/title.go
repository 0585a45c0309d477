package scorer

import (
	"strings"

	"github.com/xrash/smetrics"
)

// TitleScorer ranks on query-to-title similarity only. Cheap fallback
// for roles without a knowledge graph: exact substring containment wins,
// otherwise Jaro-Winkler similarity of the full strings.
type TitleScorer struct{}

// NewTitleScorer returns the title-similarity scorer.
func NewTitleScorer() *TitleScorer { return &TitleScorer{} }

// Name implements Scorer.
func (s *TitleScorer) Name() string { return string(KindTitle) }

// Score implements Scorer.
func (s *TitleScorer) Score(query string, doc Document) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	title := strings.ToLower(strings.TrimSpace(doc.Title))
	if q == "" || title == "" {
		return 0
	}
	if strings.Contains(title, q) {
		return 1
	}
	return smetrics.JaroWinkler(q, title, 0.7, 4)
}
