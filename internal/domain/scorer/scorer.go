// Package scorer holds the relevance functions. Scorers are a tagged set
// of kinds dispatched through one interface rather than a type
// hierarchy, so the graph scorer stays fully decoupled from the lexical
// alternatives.
package scorer

import (
	"fmt"

	"github.com/lattice-search/lattice/internal/domain/rolegraph"
)

// Kind selects a relevance function.
type Kind string

const (
	// KindGraph is the position-preserving knowledge-graph scorer.
	KindGraph Kind = "terraphim-graph"
	// KindTitle scores on query/title string similarity.
	KindTitle Kind = "title-scorer"
	// KindBM25 is classic Okapi BM25 over document text.
	KindBM25 Kind = "bm25"
)

// Scorer computes a deterministic relevance score for a document against
// a query. Zero matched content yields exactly 0.0; scoring never fails.
type Scorer interface {
	Name() string
	Score(query string, doc Document) float64
}

// Document is the unit of scored content. Only ID, Title and Body feed
// the scoring math; the rest travels with the document for callers that
// enrich results.
type Document struct {
	ID          string
	URL         string
	Title       string
	Body        string
	Description string
	Tags        []string
	Rank        uint64
}

// New returns the scorer for the given kind. The graph is only consulted
// by KindGraph; the lexical scorers ignore it.
func New(kind Kind, graph *rolegraph.RoleGraph) (Scorer, error) {
	switch kind {
	case KindGraph:
		return NewGraphScorer(graph), nil
	case KindTitle:
		return NewTitleScorer(), nil
	case KindBM25:
		return NewBM25(), nil
	default:
		return nil, fmt.Errorf("unknown scorer kind %q", kind)
	}
}
