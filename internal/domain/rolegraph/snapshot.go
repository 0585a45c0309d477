package rolegraph

import "sort"

// NodeSnap is the serializable form of one node.
type NodeSnap struct {
	ID        uint64
	Rank      uint64
	Edges     []uint64
	Documents []string
}

// EdgeSnap is the serializable form of one edge.
type EdgeSnap struct {
	ID      uint64
	A, B    uint64
	Rank    uint64
	DocIDs  []string
	DocRank []uint64
}

// Snapshot is a consistent copy of the graph tables, used by the storage
// adapter to cache a built graph between runs. Slices are sorted so
// identical graph state serializes identically.
type Snapshot struct {
	Role        string
	Granularity Granularity
	Nodes       []NodeSnap
	Edges       []EdgeSnap
}

// Snapshot copies the graph tables under the read lock.
func (rg *RoleGraph) Snapshot() *Snapshot {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	snap := &Snapshot{Role: rg.role, Granularity: rg.granularity}

	for _, n := range rg.nodes {
		ns := NodeSnap{ID: n.ID, Rank: n.Rank}
		for e := range n.ConnectedWith {
			ns.Edges = append(ns.Edges, e)
		}
		for d := range n.Documents {
			ns.Documents = append(ns.Documents, d)
		}
		sort.Slice(ns.Edges, func(i, j int) bool { return ns.Edges[i] < ns.Edges[j] })
		sort.Strings(ns.Documents)
		snap.Nodes = append(snap.Nodes, ns)
	}
	sort.Slice(snap.Nodes, func(i, j int) bool { return snap.Nodes[i].ID < snap.Nodes[j].ID })

	for _, e := range rg.edges {
		es := EdgeSnap{ID: e.ID, A: e.A, B: e.B, Rank: e.Rank}
		docIDs := make([]string, 0, len(e.DocHash))
		for d := range e.DocHash {
			docIDs = append(docIDs, d)
		}
		sort.Strings(docIDs)
		for _, d := range docIDs {
			es.DocIDs = append(es.DocIDs, d)
			es.DocRank = append(es.DocRank, e.DocHash[d])
		}
		snap.Edges = append(snap.Edges, es)
	}
	sort.Slice(snap.Edges, func(i, j int) bool { return snap.Edges[i].ID < snap.Edges[j].ID })

	return snap
}

// Restore replaces the graph tables with the snapshot contents. Used
// after loading a cached snapshot for a thesaurus that has not changed;
// a changed thesaurus requires a full re-ingest instead.
func (rg *RoleGraph) Restore(snap *Snapshot) {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	rg.granularity = snap.Granularity
	rg.nodes = make(map[uint64]*Node, len(snap.Nodes))
	rg.edges = make(map[uint64]*Edge, len(snap.Edges))

	for _, ns := range snap.Nodes {
		n := &Node{
			ID:            ns.ID,
			Rank:          ns.Rank,
			ConnectedWith: make(map[uint64]struct{}, len(ns.Edges)),
			Documents:     make(map[string]struct{}, len(ns.Documents)),
		}
		for _, e := range ns.Edges {
			n.ConnectedWith[e] = struct{}{}
		}
		for _, d := range ns.Documents {
			n.Documents[d] = struct{}{}
		}
		rg.nodes[n.ID] = n
	}

	for _, es := range snap.Edges {
		e := &Edge{
			ID:      es.ID,
			A:       es.A,
			B:       es.B,
			Rank:    es.Rank,
			DocHash: make(map[string]uint64, len(es.DocIDs)),
		}
		for i, d := range es.DocIDs {
			e.DocHash[d] = es.DocRank[i]
		}
		rg.edges[e.ID] = e
	}
}
