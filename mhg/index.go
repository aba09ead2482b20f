package mhg

import (
	bi "github.com/grailbio/bio-mhg/interval"
	"github.com/grailbio/base/log"
)

// Index owns the two shared indexes, often called NodeToPaths and
// PathToModule, plus the module Arena they point into.  It is local to
// one connected component and is not safe for concurrent mutation.
type Index struct {
	Arena        *Arena
	blocks       *bi.BlockIndex // live blocks keyed by (seq, interval), for overlap queries; owner is in pathToModule
	pathToModule map[path]ModuleId
	opts         Opts
}

// NewIndex creates an empty Index for one SCC.
func NewIndex(opts Opts) *Index {
	return &Index{
		Arena:        NewArena(),
		blocks:       bi.NewBlockIndex(),
		pathToModule: map[path]ModuleId{},
		opts:         opts,
	}
}

// overlapping returns every live path on seq that intersects q.
func (ix *Index) overlapping(seq SeqId, q Interval) []path {
	hits := ix.blocks.Overlapping(seq, q)
	out := make([]path, 0, len(hits))
	for _, h := range hits {
		out = append(out, path{seq: seq, iv: h.Interval})
	}
	return out
}

// moduleOf returns the module owning the live block p, per PathToModule.
func (ix *Index) moduleOf(p path) (ModuleId, bool) {
	id, ok := ix.pathToModule[p]
	return id, ok
}

// register installs p as a live block owned by module mid: it must not
// already be live.
func (ix *Index) register(p path, mid ModuleId) {
	ix.blocks.Insert(p.seq, p.iv, nil)
	ix.pathToModule[p] = mid
}

// unregister removes p from both shared indexes.  The caller is
// responsible for removing the corresponding vertex from its module.
func (ix *Index) unregister(p path) {
	ix.blocks.Remove(p.seq, p.iv)
	delete(ix.pathToModule, p)
}

// installModule registers every vertex of a freshly built module mid as
// live, pointing at mid.
func (ix *Index) installModule(mid ModuleId) {
	m, ok := ix.Arena.Get(mid)
	if !ok {
		return
	}
	for _, v := range m.Vertices() {
		ix.register(v.path(), mid)
	}
}

// discardModule removes every live block of mid from the indexes and
// deletes the module from the arena (used when a chop/compose step
// produces a module that fails an invariant check, or when destroying a
// module fully replaced by its descendants).
func (ix *Index) discardModule(mid ModuleId) {
	m, ok := ix.Arena.Get(mid)
	if !ok {
		return
	}
	for _, v := range m.Vertices() {
		ix.unregister(v.path())
	}
	ix.Arena.Delete(mid)
}

// trim removes every live block shorter than minLen from the indexes.
// Blocks are removed from their module's vertex set too; a module left
// with fewer than 2 vertices is removed entirely.
func (ix *Index) trim(minLen int) {
	var dead []path
	for p := range ix.pathToModule {
		if int(p.iv.Len()) < minLen {
			dead = append(dead, p)
		}
	}
	touched := map[ModuleId]bool{}
	for _, p := range dead {
		mid := ix.pathToModule[p]
		touched[mid] = true
		ix.unregister(p)
		if m, ok := ix.Arena.Get(mid); ok {
			m.removeVertex(p)
		}
	}
	for mid := range touched {
		if m, ok := ix.Arena.Get(mid); ok && m.Len() < 2 {
			ix.discardModule(mid)
		}
	}
}

// chopLiveBlockAt chops the live block p at the absolute interior
// coordinate splitPos, re-indexing every vertex of both
// resulting modules in place of p's old module. It returns the two
// resulting live paths -- [p.iv.Lo, splitPos) and [splitPos, p.iv.Hi) --
// regardless of which new module each landed in, and which fragments (if
// any) survived the minimum-block-length drop: ok is false, and the
// corresponding path is the zero value, when a fragment was too short to
// register.
func (ix *Index) chopLiveBlockAt(p path, splitPos PosType) (leftPath, rightPath path, leftOK, rightOK bool) {
	mid, exists := ix.moduleOf(p)
	if !exists {
		return path{}, path{}, false, false
	}
	oldM, ok := ix.Arena.Get(mid)
	if !ok {
		return path{}, path{}, false, false
	}
	oldPaths := make([]path, 0, oldM.Len())
	for _, v := range oldM.Vertices() {
		oldPaths = append(oldPaths, v.path())
	}

	m1, m2, ok1, ok2, err := chopModule(ix.Arena, mid, p, splitPos, ix.opts.MinBlockLen)
	if err != nil {
		log.Debug.Printf("mhg: chopLiveBlockAt %v@%d: %v", p, splitPos, err)
		return path{}, path{}, false, false
	}
	for _, op := range oldPaths {
		delete(ix.pathToModule, op)
		ix.blocks.Remove(op.seq, op.iv)
	}
	if ok1 {
		ix.installModule(m1)
	}
	if ok2 {
		ix.installModule(m2)
	}

	leftPath = path{seq: p.seq, iv: Interval{Lo: p.iv.Lo, Hi: splitPos}}
	rightPath = path{seq: p.seq, iv: Interval{Lo: splitPos, Hi: p.iv.Hi}}
	_, leftOK = ix.pathToModule[leftPath]
	_, rightOK = ix.pathToModule[rightPath]
	return leftPath, rightPath, leftOK, rightOK
}

// snapshot is a point-in-time copy of the index sufficient to roll back a
// failed module<->module partition step.
type snapshot struct {
	blocks       *bi.BlockIndex
	pathToModule map[path]ModuleId
	modules      map[ModuleId]*Module
}

// snapshotAll captures the whole index.  A narrower design would
// snapshot only the two affected sequence keys; composition's
// recursive fan-out can touch an a priori unknown set of sequences, so this
// implementation snapshots globally and relies on the SCC-local Index being
// small relative to a single alignment edge's processing cost.
func (ix *Index) snapshotAll() *snapshot {
	modules := make(map[ModuleId]*Module, ix.Arena.Len())
	for id, m := range ix.Arena.modules {
		modules[id] = m.clone()
	}
	p2m := make(map[path]ModuleId, len(ix.pathToModule))
	for p, id := range ix.pathToModule {
		p2m[p] = id
	}
	return &snapshot{
		blocks:       ix.blocks.Clone(),
		pathToModule: p2m,
		modules:      modules,
	}
}

// restore rolls the index back to a previously captured snapshot.
func (ix *Index) restore(s *snapshot) {
	ix.blocks = s.blocks
	ix.pathToModule = s.pathToModule
	ix.Arena.modules = s.modules
}

// checkAndRepair runs the no-overlap invariant check over every
// module touched by the given ids, discarding any module that fails it
// (the InvariantViolation recovery path).
func (ix *Index) checkAndRepair(ids ...ModuleId) {
	for _, id := range ids {
		m, ok := ix.Arena.Get(id)
		if !ok {
			continue
		}
		if m.seqOverlapViolation() {
			ix.discardModule(id)
		}
	}
}
