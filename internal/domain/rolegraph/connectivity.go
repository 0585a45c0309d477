package rolegraph

// maxExactTargets bounds the exhaustive walk search. The walk search is
// combinatorial in the number of matched concepts, so beyond this bound
// the check degrades to pairwise connectivity via union-find and the
// verdict is flagged approximate.
const maxExactTargets = 8

// IsAllTermsConnectedByPath reports whether all concepts matched in text
// lie on a single connected walk through the graph. Zero or one matched
// concept is trivially connected. Non-matched intermediate nodes may be
// used as stepping stones, and nodes may be revisited.
func (rg *RoleGraph) IsAllTermsConnectedByPath(text string) bool {
	connected, _ := rg.PathCheck(text)
	return connected
}

// PathCheck is the diagnostic form of IsAllTermsConnectedByPath. The
// second return is true when the target set exceeded the exact-search
// bound and the verdict came from the cheaper pairwise approximation.
func (rg *RoleGraph) PathCheck(text string) (connected, approximate bool) {
	targets := rg.FindMatchingNodeIDs(text)
	if len(targets) <= 1 {
		return true, false
	}

	rg.mu.RLock()
	defer rg.mu.RUnlock()

	// A matched concept that never co-occurred with anything has no node
	// and cannot be on any path.
	for _, id := range targets {
		if _, ok := rg.nodes[id]; !ok {
			return false, false
		}
	}

	adj := rg.adjacency()
	if len(targets) > maxExactTargets {
		return allInOneComponent(targets, rg.edges), true
	}
	return walkVisitsAll(targets, adj), false
}

// adjacency derives the node-to-node neighbor lists from the edge table.
// Caller holds at least the read lock.
func (rg *RoleGraph) adjacency() map[uint64][]uint64 {
	adj := make(map[uint64][]uint64, len(rg.nodes))
	for _, e := range rg.edges {
		adj[e.A] = append(adj[e.A], e.B)
		adj[e.B] = append(adj[e.B], e.A)
	}
	return adj
}

// walkState is one configuration of the walk search: the current node
// and the bitmask of targets visited so far.
type walkState struct {
	node uint64
	mask uint16
}

// walkVisitsAll performs the exact search: does a walk exist that visits
// every target at least once? Reachability over (node, visited-mask)
// states; revisits are free because states already seen are skipped.
func walkVisitsAll(targets []uint64, adj map[uint64][]uint64) bool {
	targetBit := make(map[uint64]uint16, len(targets))
	for i, id := range targets {
		targetBit[id] = 1 << uint(i)
	}
	full := uint16(1<<uint(len(targets))) - 1

	seen := make(map[walkState]bool)
	var stack []walkState
	push := func(node uint64, mask uint16) {
		if bit, ok := targetBit[node]; ok {
			mask |= bit
		}
		s := walkState{node: node, mask: mask}
		if !seen[s] {
			seen[s] = true
			stack = append(stack, s)
		}
	}

	// Any target can start the walk; starting elsewhere never helps
	// because the walk must pass a target eventually anyway.
	push(targets[0], 0)

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.mask == full {
			return true
		}
		for _, next := range adj[s.node] {
			push(next, s.mask)
		}
	}
	return false
}

// allInOneComponent is the union-find approximation used beyond the
// exact-search bound: true when every target shares one component.
func allInOneComponent(targets []uint64, edges map[uint64]*Edge) bool {
	parent := make(map[uint64]uint64)
	var find func(x uint64) uint64
	find = func(x uint64) uint64 {
		p, ok := parent[x]
		if !ok || p == x {
			parent[x] = x
			return x
		}
		root := find(p)
		parent[x] = root
		return root
	}
	union := func(a, b uint64) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for _, e := range edges {
		union(e.A, e.B)
	}

	root := find(targets[0])
	for _, id := range targets[1:] {
		if find(id) != root {
			return false
		}
	}
	return true
}
