package mhg

import (
	"fmt"
	"sort"
)

// Partitioner drives the component-at-a-time partitioning process over a
// whole AlignmentGraph: each connected component of the input graph is
// partitioned independently with its own Index.
type Partitioner struct {
	opts Opts
}

// NewPartitioner creates a Partitioner with the given options.
func NewPartitioner(opts Opts) *Partitioner {
	return &Partitioner{opts: opts}
}

// connectedComponent is one strongly-connected-component's worth of work:
// the edge indices (into the graph's Edges slice) touching it. The
// AlignmentGraph's edges are symmetric -- an alignment relates its two
// endpoints regardless of which side is named first -- so strongly
// connected components of the underlying directed multigraph and plain
// connected components of its undirected skeleton coincide; this is a
// Kosaraju-Sharir-style two-pass computation collapsed to one BFS pass
// because reachability is already symmetric.
type connectedComponent struct {
	edges []int
}

// connectedComponents groups g's edges by which connected component of the
// node graph they belong to.
func connectedComponents(g AlignmentGraph) []connectedComponent {
	type nodeKey struct {
		seq SeqId
		iv  Interval
	}
	nodeIndex := map[nodeKey]int{}
	keyOf := func(n Node) nodeKey { return nodeKey{seq: n.Seq, iv: n.Interval} }
	nextID := 0
	idOf := func(n Node) int {
		k := keyOf(n)
		id, ok := nodeIndex[k]
		if !ok {
			id = nextID
			nextID++
			nodeIndex[k] = id
		}
		return id
	}

	adj := map[int][]int{} // node id -> edge indices touching it
	for i, e := range g.Edges {
		a, b := idOf(e.NodeA), idOf(e.NodeB)
		adj[a] = append(adj[a], i)
		adj[b] = append(adj[b], i)
	}

	seen := make([]bool, nextID)
	var ccs []connectedComponent
	for start := 0; start < nextID; start++ {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue := []int{start}
		edgeSeen := map[int]bool{}
		var edges []int
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			for _, ei := range adj[n] {
				if !edgeSeen[ei] {
					edgeSeen[ei] = true
					edges = append(edges, ei)
				}
				e := g.Edges[ei]
				a, b := idOf(e.NodeA), idOf(e.NodeB)
				other := a
				if other == n {
					other = b
				}
				if !seen[other] {
					seen[other] = true
					queue = append(queue, other)
				}
			}
		}
		ccs = append(ccs, connectedComponent{edges: edges})
	}
	return ccs
}

// pairKey deduplicates alignment edges by their sorted (node,path) pair:
// the same undirected alignment, however it appears in the input, is
// processed only once.
type pairKey struct {
	a, b string
}

func edgePairKey(e AlignmentEdge) pairKey {
	a := fmt.Sprintf("%d:%d-%d", e.NodeA.Seq, e.PathA.Lo, e.PathA.Hi)
	b := fmt.Sprintf("%d:%d-%d", e.NodeB.Seq, e.PathB.Lo, e.PathB.Hi)
	if a <= b {
		return pairKey{a: a, b: b}
	}
	return pairKey{a: b, b: a}
}

// Partition runs the full algorithm over g: every connected component is
// processed with a fresh, local Index, edges are visited in deterministic
// order, short blocks are trimmed periodically, and the surviving modules
// across every component are compacted into the final output set (see
// Compact in output.go).
func (p *Partitioner) Partition(g AlignmentGraph) []OutputModule {
	ccs := connectedComponents(g)
	var allModules []*Module
	for _, cc := range ccs {
		order := make([]int, len(cc.edges))
		copy(order, cc.edges)
		sort.Slice(order, func(i, j int) bool {
			ki := edgeSortKey(g.Edges[order[i]], order[i])
			kj := edgeSortKey(g.Edges[order[j]], order[j])
			if ki.lo != kj.lo {
				return ki.lo < kj.lo
			}
			if ki.hi != kj.hi {
				return ki.hi < kj.hi
			}
			return ki.index < kj.index
		})

		ix := NewIndex(p.opts)
		seen := map[pairKey]bool{}
		count := 0
		for _, ei := range order {
			e := g.Edges[ei]
			key := edgePairKey(e)
			if seen[key] {
				continue
			}
			seen[key] = true
			ix.ProcessEdge(e)
			count++
			if count%p.opts.TrimInterval == 0 {
				ix.trim(p.opts.TrimBlockLen)
			}
		}
		for _, m := range ix.Arena.modules {
			allModules = append(allModules, m)
		}
	}
	return Compact(allModules)
}
