package scorer

import "github.com/lattice-search/lattice/internal/domain/rolegraph"

// GraphScorer is the position-preserving knowledge-graph relevance
// function. Both query and document are reduced to ordered sequences of
// matched concept IDs; the sum of graph ranks over shared concepts is
// weighted by how well the document preserves the query's concept order.
// That is what separates "battery cr2032" from "aa battery" even though
// both contain "battery". No stop-word list: filtering by exact term
// identity against the thesaurus substitutes for it.
type GraphScorer struct {
	graph *rolegraph.RoleGraph
}

// NewGraphScorer builds a scorer over the given role graph.
func NewGraphScorer(graph *rolegraph.RoleGraph) *GraphScorer {
	return &GraphScorer{graph: graph}
}

// Name implements Scorer.
func (s *GraphScorer) Name() string { return string(KindGraph) }

// Score implements Scorer. Deterministic for fixed graph state: no
// randomness, no model calls. Zero shared concepts yields exactly 0.
func (s *GraphScorer) Score(query string, doc Document) float64 {
	a := s.graph.Automaton()
	querySeq := a.ConceptIDs(query)
	docSeq := a.ConceptIDs(doc.Title + " " + doc.Body)
	if len(querySeq) == 0 || len(docSeq) == 0 {
		return 0
	}

	docPos := make(map[uint64]int, len(docSeq))
	for i, id := range docSeq {
		docPos[id] = i
	}

	// Shared concepts in query order.
	var shared []uint64
	var base float64
	for _, id := range querySeq {
		if _, ok := docPos[id]; ok {
			shared = append(shared, id)
			base += float64(s.graph.NodeRank(id))
		}
	}
	if len(shared) == 0 {
		return 0
	}

	// Order agreement: fraction of shared-concept pairs whose relative
	// order in the document matches the query. A lone shared concept
	// agrees trivially.
	agreement := 1.0
	if len(shared) > 1 {
		concordant, total := 0, 0
		for i := 0; i < len(shared); i++ {
			for j := i + 1; j < len(shared); j++ {
				total++
				if docPos[shared[i]] < docPos[shared[j]] {
					concordant++
				}
			}
		}
		agreement = float64(concordant) / float64(total)
	}

	// Reversed order halves the contribution rather than zeroing it:
	// the concepts are still present, just weaker evidence.
	return base * (0.5 + 0.5*agreement)
}
