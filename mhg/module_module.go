package mhg

import "github.com/grailbio/base/log"

// destPart is one piece of the cover of the destination path: a
// sub-interval of the destination path together with the module that now
// owns it.
type destPart struct {
	iv  Interval
	mid ModuleId
}

// ProcessModuleModule handles the case where both endpoints of the
// alignment edge already sit in existing modules. The destination side is
// reconciled (chopped to line up with pathB's boundaries) first; each
// resulting destination sub-block is then matched, via mask-popcount
// coordinate correspondence, against whatever modules overlap the
// corresponding region of the source sequence, and the two modules are
// composed (union of their graphs, identifying the shared block-vertex).
func (ix *Index) ProcessModuleModule(nodeA, nodeB Node, pathA, pathB Interval, dA, dB Orientation, mAB, mBA Bitmask) {
	if int(pathA.Len()) < ix.opts.MinBlockLen || int(pathB.Len()) < ix.opts.MinBlockLen {
		log.Debug.Printf("mhg: dropping module<->module alignment %v<->%v, shorter than minimum block length", pathA, pathB)
		return
	}

	snap := ix.snapshotAll()
	touched, ok := ix.reconcileModuleModule(nodeA.Seq, pathA, dA, nodeB.Seq, pathB, dB, mAB, mBA)
	if !ok {
		ix.restore(snap)
		return
	}
	ix.checkAndRepair(touched...)
}

// reconcileModuleModule covers pathB with
// destPart entries (chopping existing B-side modules, or creating
// singletons over any uncovered gap), then for each entry recursively
// reconciles the matching A-side region and composes.
func (ix *Index) reconcileModuleModule(seqA SeqId, pathA Interval, dA Orientation, seqB SeqId, pathB Interval, dB Orientation, mAB, mBA Bitmask) (touched []ModuleId, ok bool) {
	parts := ix.coverInterval(seqB, pathB)
	if len(parts) == 0 {
		return nil, false
	}
	for _, part := range parts {
		curA, ok := ix.coordCorrespondence(seqA, pathA, dA, seqB, pathB, dB, mAB, mBA, part.iv)
		if !ok {
			continue
		}
		destSeg := pairSeg{seq: seqB, iv: part.iv, o: dB, mTo: curA.mFrom, mFrom: curA.mTo}
		ix.reconcileSourceForDest(curA, destSeg, 0)
		touched = append(touched, part.mid)
	}
	return touched, true
}

// coverInterval partitions full on seq into contiguous destPart entries:
// existing live blocks overlapping full are chopped down to full's
// boundaries; any gap not covered by a live block becomes a fresh singleton
// module. Pieces that could not be registered (a gap or chop fragment
// shorter than MinBlockLen, or a failed chop) are left out, so the result
// covers full only where every piece was registered.
func (ix *Index) coverInterval(seq SeqId, full Interval) []destPart {
	hits := ix.overlapping(seq, full)
	var parts []destPart
	cursor := full.Lo
	addGap := func(gap Interval) {
		if gap.Len() <= 0 {
			return
		}
		ix.registerSingleton(seq, gap)
		if mid, ok := ix.moduleOf(path{seq: seq, iv: gap}); ok {
			parts = append(parts, destPart{iv: gap, mid: mid})
		}
	}
	for _, h := range hits {
		bIv := h.iv
		if bIv.Lo > cursor {
			hi := bIv.Lo
			if hi > full.Hi {
				hi = full.Hi
			}
			addGap(Interval{Lo: cursor, Hi: hi})
		}
		curP := h
		if full.Lo > curP.iv.Lo {
			_, right, _, rok := ix.chopLiveBlockAt(curP, full.Lo)
			if !rok {
				cursor = minPos(bIv.Hi, full.Hi)
				continue
			}
			curP = right
		}
		if full.Hi < curP.iv.Hi {
			left, _, lok, _ := ix.chopLiveBlockAt(curP, full.Hi)
			if !lok {
				cursor = minPos(curP.iv.Hi, full.Hi)
				continue
			}
			curP = left
		}
		if mid, ok := ix.moduleOf(curP); ok {
			parts = append(parts, destPart{iv: curP.iv, mid: mid})
		}
		cursor = curP.iv.Hi
		if cursor > full.Hi {
			cursor = full.Hi
		}
	}
	if cursor < full.Hi {
		addGap(Interval{Lo: cursor, Hi: full.Hi})
	}
	return parts
}

func minPos(a, b PosType) PosType {
	if a < b {
		return a
	}
	return b
}

// coordCorrespondence translates the destination sub-block bB (a subset of
// pathB) into its matching source sub-interval via mask popcounts,
// returning the source side as a pairSeg whose masks are already sliced to
// match bB exactly.
func (ix *Index) coordCorrespondence(seqA SeqId, pathA Interval, dA Orientation, seqB SeqId, pathB Interval, dB Orientation, mAB, mBA Bitmask, bB Interval) (pairSeg, bool) {
	cur := pairSeg{seq: seqB, iv: pathB, o: dB, mTo: mBA, mFrom: mAB}
	curA := pairSeg{seq: seqA, iv: pathA, o: dA, mTo: mAB, mFrom: mBA}
	if bB.Lo > cur.iv.Lo {
		_, _, after, afterA, err := splitPairAtAbs(cur, curA, bB.Lo)
		if err != nil {
			return pairSeg{}, false
		}
		cur, curA = after, afterA
	}
	if bB.Hi < cur.iv.Hi {
		before, beforeA, _, _, err := splitPairAtAbs(cur, curA, bB.Hi)
		if err != nil {
			return pairSeg{}, false
		}
		cur, curA = before, beforeA
	}
	return curA, true
}

// partitionBoundary returns the coordinate shared by x and y, which must
// together exactly partition a single interval (one's Hi equals the
// other's Lo).
func partitionBoundary(x, y Interval) PosType {
	if x.Hi == y.Lo {
		return x.Hi
	}
	return y.Hi
}

// overhangTooLong reports whether the live block existing spills more than
// threshold coordinate units beyond query at either end -- the
// long-overlap abort guard.
func overhangTooLong(existing, query Interval, threshold int) bool {
	left := 0
	if query.Lo > existing.Lo {
		left = int(query.Lo - existing.Lo)
	}
	right := 0
	if existing.Hi > query.Hi {
		right = int(existing.Hi - query.Hi)
	}
	return left > threshold || right > threshold
}

// reconcileSourceForDest is the recursive descent that reconciles the
// source side against existing modules: match curA (a source-sequence sub-interval, with its own fixed alignment
// orientation) against whatever modules overlap it, peeling off overhangs
// against other modules and, at each destination boundary crossed, chopping
// the destination's live block to keep the two sides' intervals matched.
// destSeg names the destination fragment currently paired with curA; its
// owning module is always re-resolved fresh via the index rather than
// threaded as a parameter, since composition and chopping can replace it.
func (ix *Index) reconcileSourceForDest(curA, destSeg pairSeg, depth int) {
	if int(curA.iv.Len()) < ix.opts.MinBlockLen || int(destSeg.iv.Len()) < ix.opts.MinBlockLen {
		return
	}
	destP := path{seq: destSeg.seq, iv: destSeg.iv}
	destMid, ok := ix.moduleOf(destP)
	if !ok {
		return
	}
	if depth >= ix.opts.MaxRecursionDepth {
		ix.joinIntoModule(destMid, destP, destSeg.o, curA.seq, curA.iv, curA.o, destSeg.mTo, destSeg.mFrom)
		return
	}

	hits := ix.overlapping(curA.seq, curA.iv)
	if len(hits) == 0 {
		ix.joinIntoModule(destMid, destP, destSeg.o, curA.seq, curA.iv, curA.o, destSeg.mTo, destSeg.mFrom)
		return
	}
	b := hits[0]
	bIv := b.iv
	if midA, ok := ix.moduleOf(b); ok && midA == destMid {
		return // already one module; the homology is already asserted
	}
	if overhangTooLong(bIv, curA.iv, ix.opts.LongOverlapBP) {
		log.Debug.Printf("mhg: module<->module long overlap %v vs %v, dropping", curA.iv, bIv)
		return
	}

	coreLo, coreHi := curA.iv.Lo, curA.iv.Hi
	if bIv.Lo > coreLo {
		coreLo = bIv.Lo
	}
	if bIv.Hi < coreHi {
		coreHi = bIv.Hi
	}
	core := Interval{Lo: coreLo, Hi: coreHi}

	cur, dst := curA, destSeg
	if core.Lo > cur.iv.Lo {
		before, beforeDest, after, afterDest, err := splitPairAtAbs(cur, dst, core.Lo)
		if err != nil {
			return
		}
		ix.chopDestAndRecurse(dst, before, beforeDest, after, afterDest, depth)
		cur, dst = after, afterDest
	}
	if core.Hi < cur.iv.Hi {
		before, beforeDest, after, afterDest, err := splitPairAtAbs(cur, dst, core.Hi)
		if err != nil {
			return
		}
		ix.chopDestAndRecurse(dst, after, afterDest, before, beforeDest, depth)
		cur, dst = before, beforeDest
	}

	if int(cur.iv.Len()) < ix.opts.MinBlockLen {
		return
	}
	curDestP := path{seq: dst.seq, iv: dst.iv}
	curDestMid, ok := ix.moduleOf(curDestP)
	if !ok {
		return
	}

	curP := b
	if cur.iv.Lo > curP.iv.Lo {
		_, right, _, rok := ix.chopLiveBlockAt(curP, cur.iv.Lo)
		if !rok {
			return
		}
		curP = right
	}
	if cur.iv.Hi < curP.iv.Hi {
		left, _, lok, _ := ix.chopLiveBlockAt(curP, cur.iv.Hi)
		if !lok {
			return
		}
		curP = left
	}
	midA, ok := ix.moduleOf(curP)
	if !ok {
		return
	}
	ix.composeModules(midA, curP, curDestMid, curDestP, cur.o, dst.o, cur.mTo, cur.mFrom)
}

// chopDestAndRecurse chops destSeg's live block at the boundary between
// the overhang and core fragments it was just split into (abandonSeg is
// the fragment being peeled off to recurse on; keepSeg is the one the
// caller continues with and must not be touched here), then recurses
// reconcileSourceForDest on the overhang.
func (ix *Index) chopDestAndRecurse(destSeg, abandonA, abandonDest, keepA, keepDest pairSeg, depth int) {
	boundary := partitionBoundary(abandonDest.iv, keepDest.iv)
	destP := path{seq: destSeg.seq, iv: destSeg.iv}
	left, right, lok, rok := ix.chopLiveBlockAt(destP, boundary)
	var abandonP path
	ok := false
	if lok && left.iv == abandonDest.iv {
		abandonP = left
		ok = true
	} else if rok && right.iv == abandonDest.iv {
		abandonP = right
		ok = true
	}
	if !ok {
		return
	}
	ix.reconcileSourceForDest(abandonA, pairSeg{seq: abandonP.seq, iv: abandonP.iv, o: abandonDest.o, mTo: abandonDest.mTo, mFrom: abandonDest.mFrom}, depth+1)
}

// composeModules unions two modules discovered to describe the same
// homology: identify block-vertices of destMid's module by (SeqId, Interval) against
// midA's, re-orienting the destination module to midA's frame if the two
// disagree, then union the graphs and add the dual edge between aPath and
// destPath.
func (ix *Index) composeModules(midA ModuleId, aPath path, destMid ModuleId, destPath path, dA, dB Orientation, mAFree, mFreeA Bitmask) bool {
	if midA == destMid {
		return true // already one module
	}
	mA, ok := ix.Arena.Get(midA)
	if !ok {
		return false
	}
	mB, ok := ix.Arena.Get(destMid)
	if !ok {
		return false
	}
	aV, ok := mA.Vertex(aPath)
	if !ok {
		return false
	}
	bV, ok := mB.Vertex(destPath)
	if !ok {
		return false
	}

	// Family-membership guard: if mA already asserts this homology (it has a
	// vertex on destPath's sequence covering destPath, and mB has one on
	// aPath's sequence covering aPath), composing again is a no-op.
	for _, v := range mA.Vertices() {
		if v.Seq != destPath.seq || !v.Interval.Contains(destPath.iv) {
			continue
		}
		for _, w := range mB.Vertices() {
			if w.Seq == aPath.seq && w.Interval.Contains(aPath.iv) {
				return true
			}
		}
	}

	mBWork := mB
	mAB, mBA := mAFree, mFreeA
	expectB := aV.Orientation
	if dA != dB {
		expectB = aV.Orientation.Flip()
	}
	if bV.Orientation != expectB {
		mBWork = mB.reverseAll()
		flipped, ok := mBWork.Vertex(destPath)
		if !ok {
			return false
		}
		bV = flipped
	}
	// The new edge's masks are in the alignment's reading order; they are
	// reversed when aPath's in-module orientation disagrees with dA, the
	// same rule joinIntoModule applies.
	if aV.Orientation != dA {
		mAB = mAB.Reverse()
		mBA = mBA.Reverse()
	}

	union := mA.clone()
	for p, v := range mBWork.vertices {
		if _, exists := union.vertices[p]; !exists {
			union.vertices[p] = v
		}
	}
	for from, nbrs := range mBWork.edges {
		if union.edges[from] == nil {
			union.edges[from] = map[path]Bitmask{}
		}
		for to, mk := range nbrs {
			union.edges[from][to] = mk
		}
	}
	union.addEdge(aPath, destPath, mAB, mBA)

	oldAVerts := mA.Vertices()
	oldBVerts := mBWork.Vertices()
	for _, v := range oldAVerts {
		delete(ix.pathToModule, v.path())
		ix.blocks.Remove(v.Seq, v.Interval)
	}
	for _, v := range oldBVerts {
		delete(ix.pathToModule, v.path())
		ix.blocks.Remove(v.Seq, v.Interval)
	}
	ix.Arena.Delete(midA)
	ix.Arena.Delete(destMid)
	newID := ix.Arena.put(union)
	ix.installModule(newID)
	ix.checkAndRepair(newID)
	return true
}
