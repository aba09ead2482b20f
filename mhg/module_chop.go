package mhg

// canonicalFirstLen returns the length, in v's own coordinate units, of the
// canonical-first fragment produced by splitting v at the absolute
// coordinate splitPos.  The canonical-first fragment is [v.Lo, splitPos)
// when v reads forward (Plus), or [splitPos, v.Hi) when v reads backward
// (Minus) -- the module's canonical traversal always visits the
// canonical-first fragment before the canonical-second one, regardless of
// which physical end of the sequence that is -- the order is inverted
// when the orientation is Minus. This is readingOffset specialized to a
// BlockVertex.
func canonicalFirstLen(v BlockVertex, splitPos PosType) int {
	return readingOffset(v.Interval, v.Orientation, splitPos)
}

// fragmentsOf splits v into its canonical-first and canonical-second
// fragments given the canonical-first fragment's length. Either fragment
// may be empty (firstLen == 0 or firstLen == full length), meaning v is not
// actually divided and belongs wholly to one side. This is readingSplit
// specialized to a BlockVertex.
func fragmentsOf(v BlockVertex) func(firstLen int) (first, second Interval) {
	return func(firstLen int) (Interval, Interval) {
		return readingSplit(v.Interval, v.Orientation, firstLen)
	}
}

// chopPlan is the result of propagating a split across a module: for every
// reachable vertex, the length (in its own coordinate units) of its
// canonical-first fragment.
type chopPlan struct {
	firstLen map[path]int
	order    []path // BFS visitation order, root first
}

// planChop performs the breadth-first propagation of a split across a
// module: start at v with its canonical-first fragment length set directly by the
// caller's split point, then visit every block reachable via dual edges
// exactly once, translating the split through chop_index at each edge.
// A propagation failure (IndexLookup) at one vertex does not abort the
// whole plan; that vertex is left unsplit, placed wholly in the
// canonical-first fragment, and the traversal continues from it.
func planChop(m *Module, v path, firstLen int) *chopPlan {
	plan := &chopPlan{firstLen: map[path]int{v: firstLen}}
	queue := []path{v}
	visited := map[path]bool{v: true}
	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		plan.order = append(plan.order, w)
		wOff := plan.firstLen[w]
		for _, u := range m.Neighbors(w) {
			if visited[u] {
				continue
			}
			visited[u] = true
			maskUW, ok := m.mask(u, w) // popcount == len(w)
			if !ok {
				continue
			}
			j, err := maskUW.ChopIndex(wOff)
			if err != nil {
				// Leave u unsplit: attribute it wholly to the canonical-first
				// side, so it stays reachable by the rest of the BFS rather
				// than vanishing from the plan.
				plan.firstLen[u] = lenOfVertex(m, u)
				queue = append(queue, u)
				continue
			}
			maskWU, _ := m.mask(w, u) // popcount == len(u)
			plan.firstLen[u] = maskWU.Popcount0(j)
			queue = append(queue, u)
		}
	}
	return plan
}

func lenOfVertex(m *Module, p path) int {
	v, ok := m.Vertex(p)
	if !ok {
		return 0
	}
	return int(v.Interval.Len())
}

// Popcount0 returns popcount(m[:j]).
func (m Bitmask) Popcount0(j int) int {
	if j > len(m) {
		j = len(m)
	}
	n := 0
	for _, b := range m[:j] {
		if b != 0 {
			n++
		}
	}
	return n
}

// chopModule performs a two-way module chop: split
// block-vertex v of the module at id into two fragments at the absolute
// coordinate splitPos, propagating the cut to every other block reachable
// from v, and returns the resulting modules (freshly registered in the
// arena under new ids; the original module is deleted). Fragments shorter
// than minLen are dropped rather than registered (the ShortBlock case).
//
// A side that ends up with zero surviving vertices is never registered in
// the arena at all -- ok1/ok2 report which of m1/m2 actually exist, since
// ModuleId's zero value is itself a valid id and can't double as "none".
func chopModule(arena *Arena, id ModuleId, v path, splitPos PosType, minLen int) (m1, m2 ModuleId, ok1, ok2 bool, err error) {
	m, ok := arena.Get(id)
	if !ok {
		return 0, 0, false, false, newError(MissingModule, "chopModule: module already destroyed")
	}
	vv, ok := m.Vertex(v)
	if !ok {
		return 0, 0, false, false, newError(InvariantViolation, "chopModule: vertex not in module")
	}
	firstLen := canonicalFirstLen(vv, splitPos)
	if firstLen <= 0 || firstLen >= int(vv.Interval.Len()) {
		return 0, 0, false, false, newError(ShortBlock, "chopModule: split point is not interior to the root vertex")
	}
	plan := planChop(m, v, firstLen)

	out1 := newModule(0)
	out2 := newModule(0)
	// fragIn1[p] / fragIn2[p]: the fragment of p (if any, and if long
	// enough) that lands in out1 / out2.
	fragIn1 := map[path]BlockVertex{}
	fragIn2 := map[path]BlockVertex{}
	for _, p := range plan.order {
		vert, ok := m.Vertex(p)
		if !ok {
			continue
		}
		split := fragmentsOf(vert)
		first, second := split(plan.firstLen[p])
		if first.Len() >= PosType(minLen) {
			fv := vert
			fv.Interval = first
			fragIn1[p] = fv
			out1.addVertex(fv)
		}
		if second.Len() >= PosType(minLen) {
			fv := vert
			fv.Interval = second
			fragIn2[p] = fv
			out2.addVertex(fv)
		}
	}
	doneEdge := map[path]map[path]bool{}
	markDone := func(a, b path) {
		if doneEdge[a] == nil {
			doneEdge[a] = map[path]bool{}
		}
		doneEdge[a][b] = true
		if doneEdge[b] == nil {
			doneEdge[b] = map[path]bool{}
		}
		doneEdge[b][a] = true
	}
	for _, a := range plan.order {
		for _, b := range m.Neighbors(a) {
			if doneEdge[a][b] {
				continue // visit each undirected edge once
			}
			markDone(a, b)
			aOff, aok := plan.firstLen[a]
			_, bok := plan.firstLen[b]
			if !aok || !bok {
				continue
			}
			maskBA, ok1 := m.mask(b, a) // popcount == len(a)
			maskAB, ok2 := m.mask(a, b) // popcount == len(b)
			if !ok1 || !ok2 {
				continue
			}
			j, cerr := maskBA.ChopIndex(aOff)
			if cerr != nil {
				continue
			}
			if fa, ok := fragIn1[a]; ok {
				if fb, ok := fragIn1[b]; ok {
					out1.addEdge(fa.path(), fb.path(), maskAB[:j], maskBA[:j])
				}
			}
			if fa, ok := fragIn2[a]; ok {
				if fb, ok := fragIn2[b]; ok {
					out2.addEdge(fa.path(), fb.path(), maskAB[j:], maskBA[j:])
				}
			}
		}
	}
	var id1, id2 ModuleId
	if out1.Len() > 0 {
		id1 = arena.put(out1)
		ok1 = true
	}
	if out2.Len() > 0 {
		id2 = arena.put(out2)
		ok2 = true
	}
	arena.Delete(id)
	return id1, id2, ok1, ok2, nil
}
