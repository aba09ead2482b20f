package mhg

// ModuleId is a stable handle to a Module inside an Arena.  PathToModule
// stores ModuleIds rather than *Module pointers, indirecting through the
// id, so that replacing a module never leaves stale pointers dangling in
// the shared indexes: callers always re-resolve through the Arena.
type ModuleId int64

// Module is a small directed graph whose vertices are block-vertices and
// whose edges carry gap Bitmasks. Every edge has a dual partner in the
// opposite direction. It holds at most one edge per ordered pair of
// vertices: adding an edge between a pair again replaces its masks.
//
// Edge labeling convention: edges[from][to] stores the mask m such that
// popcount(m) == len(to.Interval) -- if block-vertex u maps to v with mask
// m, then popcount(m) equals v's interval length. Mask column 0 always
// corresponds to the canonical-frame start of both endpoints: the Lo end
// when the endpoint's Orientation is Plus, the Hi end when Minus.
type Module struct {
	id       ModuleId
	vertices map[path]BlockVertex
	edges    map[path]map[path]Bitmask
}

func newModule(id ModuleId) *Module {
	return &Module{
		id:       id,
		vertices: map[path]BlockVertex{},
		edges:    map[path]map[path]Bitmask{},
	}
}

// Id returns the module's arena handle.
func (m *Module) Id() ModuleId { return m.id }

// Len returns the number of block-vertices in m.
func (m *Module) Len() int { return len(m.vertices) }

// Vertices returns every block-vertex of m, in no particular order.
func (m *Module) Vertices() []BlockVertex {
	out := make([]BlockVertex, 0, len(m.vertices))
	for _, v := range m.vertices {
		out = append(out, v)
	}
	return out
}

// Vertex looks up the block-vertex at p.
func (m *Module) Vertex(p path) (BlockVertex, bool) {
	v, ok := m.vertices[p]
	return v, ok
}

func (m *Module) addVertex(v BlockVertex) {
	m.vertices[v.path()] = v
}

func (m *Module) removeVertex(p path) {
	delete(m.vertices, p)
	delete(m.edges, p)
	for from := range m.edges {
		delete(m.edges[from], p)
	}
}

// addEdge records the dual edges u->v (mask muv, popcount == len(v)) and
// v->u (mask mvu, popcount == len(u)).
func (m *Module) addEdge(u, v path, muv, mvu Bitmask) {
	if m.edges[u] == nil {
		m.edges[u] = map[path]Bitmask{}
	}
	if m.edges[v] == nil {
		m.edges[v] = map[path]Bitmask{}
	}
	m.edges[u][v] = muv
	m.edges[v][u] = mvu
}

// Neighbors returns the paths directly connected to p by a module edge.
func (m *Module) Neighbors(p path) []path {
	nbrs := m.edges[p]
	out := make([]path, 0, len(nbrs))
	for n := range nbrs {
		out = append(out, n)
	}
	return out
}

// mask returns the mask on edge from->to, and whether it exists.
func (m *Module) mask(from, to path) (Bitmask, bool) {
	nbrs := m.edges[from]
	if nbrs == nil {
		return nil, false
	}
	mk, ok := nbrs[to]
	return mk, ok
}

// seqOverlapViolation reports whether m breaks invariant 4: two
// block-vertices on the same sequence with overlapping intervals.  Modules
// are small (a handful to a few dozen vertices), so the quadratic scan is
// not a concern.
func (m *Module) seqOverlapViolation() bool {
	bySeq := map[SeqId][]Interval{}
	for _, v := range m.vertices {
		bySeq[v.Seq] = append(bySeq[v.Seq], v.Interval)
	}
	for _, ivs := range bySeq {
		for i := 0; i < len(ivs); i++ {
			for j := i + 1; j < len(ivs); j++ {
				if ivs[i].Overlaps(ivs[j]) {
					return true
				}
			}
		}
	}
	return false
}

// reverseAll returns a new, unregistered Module equal to m under global
// sign-flip equivalence: every vertex's orientation is flipped and every
// edge mask is reversed.  Used by
// composition when the two modules being joined disagree on which
// orientation is canonical for the shared block-vertex.
func (m *Module) reverseAll() *Module {
	out := newModule(m.id)
	for p, v := range m.vertices {
		v.Orientation = v.Orientation.Flip()
		out.vertices[p] = v
	}
	for from, nbrs := range m.edges {
		for to, mk := range nbrs {
			if out.edges[from] == nil {
				out.edges[from] = map[path]Bitmask{}
			}
			out.edges[from][to] = mk.Reverse()
		}
	}
	return out
}

// clone returns a deep copy of m retaining its id.
func (m *Module) clone() *Module {
	out := newModule(m.id)
	for p, v := range m.vertices {
		out.vertices[p] = v
	}
	for from, nbrs := range m.edges {
		cp := make(map[path]Bitmask, len(nbrs))
		for to, mk := range nbrs {
			cp[to] = mk
		}
		out.edges[from] = cp
	}
	return out
}

// Arena owns the set of live modules, indexed by ModuleId, so that
// PathToModule never needs to hold a *Module directly.
type Arena struct {
	modules map[ModuleId]*Module
	nextID  ModuleId
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{modules: map[ModuleId]*Module{}}
}

// New allocates and registers a fresh, empty Module.
func (a *Arena) New() *Module {
	id := a.nextID
	a.nextID++
	m := newModule(id)
	a.modules[id] = m
	return m
}

// put registers m (used by composition/chop to install freshly-built
// modules under new ids).
func (a *Arena) put(m *Module) ModuleId {
	id := a.nextID
	a.nextID++
	m.id = id
	a.modules[id] = m
	return id
}

// Get resolves id to its live Module, or ok=false if it has been replaced
// or deleted (the MissingModule case).
func (a *Arena) Get(id ModuleId) (*Module, bool) {
	m, ok := a.modules[id]
	return m, ok
}

// Delete removes id from the arena.  The corresponding *Module must not be
// reused afterward: modules are value-like once replaced.
func (a *Arena) Delete(id ModuleId) {
	delete(a.modules, id)
}

// Len returns the number of live modules.
func (a *Arena) Len() int {
	return len(a.modules)
}
