// Package rolegraph maintains the concept graph for one role: nodes are
// normalized concepts from the thesaurus, edges record observed
// co-occurrence in ingested documents. The graph ranks documents for a
// query and answers connectivity questions about matched terms.
//
// Concurrency: many read-only scans (query, connectivity, rank reads) may
// run in parallel; Ingest is the only mutating operation and takes the
// write lock. The whole graph is rebuilt when the thesaurus changes —
// nodes and edges are never deleted individually.
package rolegraph

import (
	"sort"
	"sync"

	"github.com/lattice-search/lattice/internal/domain/automata"
	"github.com/lattice-search/lattice/internal/domain/thesaurus"
)

// Granularity selects the co-occurrence scope used during ingestion.
type Granularity int

const (
	// GranularityDocument links concepts co-occurring anywhere in a document.
	GranularityDocument Granularity = iota
	// GranularityParagraph links only concepts within the same paragraph
	// (blank-line separated). Tighter edges, sparser graph.
	GranularityParagraph
)

// Node is a concept in the graph. Rank accumulates term frequency across
// ingested documents; ConnectedWith holds edge IDs.
type Node struct {
	ID            uint64
	Rank          uint64
	ConnectedWith map[uint64]struct{}
	Documents     map[string]struct{}
}

// Edge records co-occurrence between two concepts. The ID is the elegant
// pairing of the two node IDs; Rank is the co-occurrence weight; DocHash
// counts occurrences per document.
type Edge struct {
	ID      uint64
	A, B    uint64
	Rank    uint64
	DocHash map[string]uint64
}

// DocumentRank is one ranked query result.
type DocumentRank struct {
	ID    string
	Rank  uint64
	Tags  []string // matched concepts, human readable
	Nodes []uint64 // matched node IDs, for validation
}

// RoleGraph is the concept graph for one role. It owns its nodes and
// edges; the automaton and thesaurus are shared, immutable inputs.
type RoleGraph struct {
	role        string
	granularity Granularity

	mu    sync.RWMutex
	nodes map[uint64]*Node
	edges map[uint64]*Edge

	thesaurus *thesaurus.Thesaurus
	automaton *automata.Automaton
	nterm     map[uint64]thesaurus.NormalizedTermValue
}

// Option configures graph construction.
type Option func(*RoleGraph)

// WithGranularity sets the co-occurrence scope (default: document).
func WithGranularity(g Granularity) Option {
	return func(rg *RoleGraph) { rg.granularity = g }
}

// New builds an empty graph for the role, constructing the term automaton
// from the thesaurus.
func New(role string, t *thesaurus.Thesaurus, opts ...Option) (*RoleGraph, error) {
	a, err := automata.Build(t)
	if err != nil {
		return nil, err
	}

	nterm := make(map[uint64]thesaurus.NormalizedTermValue, t.Len())
	for _, key := range t.Keys() {
		term, _ := t.Get(key)
		nterm[term.ID] = term.Value
	}

	rg := &RoleGraph{
		role:        role,
		granularity: GranularityDocument,
		nodes:       make(map[uint64]*Node),
		edges:       make(map[uint64]*Edge),
		thesaurus:   t,
		automaton:   a,
		nterm:       nterm,
	}
	for _, opt := range opts {
		opt(rg)
	}
	return rg, nil
}

// Role returns the role name this graph belongs to.
func (rg *RoleGraph) Role() string { return rg.role }

// Thesaurus returns the thesaurus the graph was built from.
func (rg *RoleGraph) Thesaurus() *thesaurus.Thesaurus { return rg.thesaurus }

// Automaton returns the term matcher built from the thesaurus.
func (rg *RoleGraph) Automaton() *automata.Automaton { return rg.automaton }

// NodeCount returns the number of concept nodes.
func (rg *RoleGraph) NodeCount() int {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return len(rg.nodes)
}

// EdgeCount returns the number of co-occurrence edges.
func (rg *RoleGraph) EdgeCount() int {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return len(rg.edges)
}

// NodeRank returns the accumulated rank for a concept, 0 if the concept
// never appeared in an ingested document.
func (rg *RoleGraph) NodeRank(id uint64) uint64 {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	if n, ok := rg.nodes[id]; ok {
		return n.Rank
	}
	return 0
}

// FindMatchingNodeIDs scans text and returns the distinct matched concept
// IDs in first-occurrence order. Total function; no matches means an
// empty result, not an error.
func (rg *RoleGraph) FindMatchingNodeIDs(text string) []uint64 {
	return rg.automaton.ConceptIDs(text)
}

// Ingest indexes one document into the graph: every matched concept's
// rank is incremented per occurrence, the document is recorded on the
// node, and an edge is added (or its weight bumped) for every distinct
// pair of concepts co-occurring within the configured scope. Single
// writer; serialized against concurrent readers by the graph lock.
func (rg *RoleGraph) Ingest(docID, text string) {
	scopes := [][]uint64{rg.automaton.ConceptSequence(text)}
	if rg.granularity == GranularityParagraph {
		scopes = scopes[:0]
		for _, para := range splitParagraphs(text) {
			if seq := rg.automaton.ConceptSequence(para); len(seq) > 0 {
				scopes = append(scopes, seq)
			}
		}
	}

	rg.mu.Lock()
	defer rg.mu.Unlock()
	for _, seq := range scopes {
		rg.ingestScope(docID, seq)
	}
}

// ingestScope applies one co-occurrence scope under the write lock.
func (rg *RoleGraph) ingestScope(docID string, seq []uint64) {
	if len(seq) == 0 {
		return
	}

	// Rank accumulates term frequency: one increment per occurrence.
	distinct := make([]uint64, 0, len(seq))
	seen := make(map[uint64]bool, len(seq))
	for _, id := range seq {
		rg.touchNode(id, docID)
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}

	// Every distinct unordered pair in the scope gets an edge.
	for i := 0; i < len(distinct); i++ {
		for j := i + 1; j < len(distinct); j++ {
			rg.touchEdge(distinct[i], distinct[j], docID)
		}
	}
}

// touchNode creates or updates the node for one concept occurrence.
func (rg *RoleGraph) touchNode(id uint64, docID string) {
	n, ok := rg.nodes[id]
	if !ok {
		n = &Node{
			ID:            id,
			ConnectedWith: make(map[uint64]struct{}),
			Documents:     make(map[string]struct{}),
		}
		rg.nodes[id] = n
	}
	n.Rank++
	n.Documents[docID] = struct{}{}
}

// touchEdge creates or updates the undirected edge between two concepts
// and links it symmetrically from both nodes.
func (rg *RoleGraph) touchEdge(x, y uint64, docID string) {
	key := pairKey(x, y)
	e, ok := rg.edges[key]
	if !ok {
		a, b := x, y
		if a > b {
			a, b = b, a
		}
		e = &Edge{ID: key, A: a, B: b, DocHash: make(map[string]uint64)}
		rg.edges[key] = e
	}
	e.Rank++
	e.DocHash[docID]++

	rg.nodes[x].ConnectedWith[key] = struct{}{}
	rg.nodes[y].ConnectedWith[key] = struct{}{}
}

// Query matches concepts in text, expands through each matched node's
// edges (so documents mentioning a related concept surface even when the
// exact query term is absent) and aggregates node, edge and per-document
// ranks per candidate document. Results are sorted by descending rank,
// ties broken by document ID for determinism.
func (rg *RoleGraph) Query(text string, offset, limit int) []DocumentRank {
	ids := rg.FindMatchingNodeIDs(text)

	rg.mu.RLock()
	defer rg.mu.RUnlock()

	acc := make(map[string]*DocumentRank)
	for _, id := range ids {
		node, ok := rg.nodes[id]
		if !ok {
			continue
		}
		tag := string(rg.nterm[id])

		for edgeID := range node.ConnectedWith {
			edge := rg.edges[edgeID]
			for docID, docRank := range edge.DocHash {
				total := node.Rank + edge.Rank + docRank
				dr, ok := acc[docID]
				if !ok {
					dr = &DocumentRank{ID: docID}
					acc[docID] = dr
				}
				dr.Rank += total
				dr.Tags = appendUnique(dr.Tags, tag)
				dr.Nodes = appendUniqueID(dr.Nodes, id)
			}
		}
	}

	ranked := make([]DocumentRank, 0, len(acc))
	for _, dr := range acc {
		ranked = append(ranked, *dr)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Rank != ranked[j].Rank {
			return ranked[i].Rank > ranked[j].Rank
		}
		return ranked[i].ID < ranked[j].ID
	})

	if offset > len(ranked) {
		offset = len(ranked)
	}
	ranked = ranked[offset:]
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func appendUniqueID(list []uint64, id uint64) []uint64 {
	for _, v := range list {
		if v == id {
			return list
		}
	}
	return append(list, id)
}
