package mhg

import "github.com/grailbio/base/log"

// ProcessNodeModule handles the case where one endpoint of the
// alignment edge already has live blocks somewhere on its sequence (so it
// may need reconciling against one or more existing modules), the other
// does not. pinnedNode/pinnedPath/dPinned name the side that gets the
// recursive reconciliation; freeNode/freePath/dFree names the side handled
// by plain node-partition. mPF/mFP are the alignment's gap bitmasks in the
// raw alignment's own reading order (mPF popcount == len(freePath), mFP
// popcount == len(pinnedPath)), matching the AlignmentGraph contract.
//
// Only the pinned side needs the recursive overlap reconciliation.  The
// free side is first split around freePath by the much simpler
// nodePartition; freePath itself is then subdivided by nodeVsModules as it
// peels overhangs off the pinned side.
func (ix *Index) ProcessNodeModule(pinnedNode, freeNode Node, pinnedPath, freePath Interval, dPinned, dFree Orientation, mPF, mFP Bitmask) {
	beforeF, _, afterF, hasBeforeF, hasAfterF := nodePartition(freeNode.Interval, freePath)
	if hasBeforeF {
		ix.registerSingleton(freeNode.Seq, beforeF)
	}
	if hasAfterF {
		ix.registerSingleton(freeNode.Seq, afterF)
	}

	beforeP, _, afterP, hasBeforeP, hasAfterP := nodePartition(pinnedNode.Interval, pinnedPath)
	if hasBeforeP {
		ix.registerSingleton(pinnedNode.Seq, beforeP)
	}
	if hasAfterP {
		ix.registerSingleton(pinnedNode.Seq, afterP)
	}

	if int(pinnedPath.Len()) < ix.opts.MinBlockLen || int(freePath.Len()) < ix.opts.MinBlockLen {
		log.Debug.Printf("mhg: dropping node<->module alignment %v<->%v, shorter than minimum block length", pinnedPath, freePath)
		return
	}

	ix.nodeVsModules(pinnedNode.Seq, pinnedPath, dPinned, freeNode.Seq, freePath, dFree, mPF, mFP, 0)
}

// joinIntoModule attaches a brand-new free-side block-vertex to the module
// that already owns the live block at existingPath, connecting it with an
// edge carrying mPF/mFP (given in dPinned's reading order). If
// existingPath's orientation within its module disagrees with dPinned, the
// masks and the new vertex's orientation are flipped first, so the new
// edge is expressed in the module's own canonical frame, the same rule
// joinFreshPair uses for fresh modules.
func (ix *Index) joinIntoModule(mid ModuleId, existingPath path, dPinned Orientation, freeSeq SeqId, freeIv Interval, dFree Orientation, mPF, mFP Bitmask) bool {
	m, ok := ix.Arena.Get(mid)
	if !ok {
		return false
	}
	existingV, ok := m.Vertex(existingPath)
	if !ok {
		return false
	}
	mPFc, mFPc := mPF, mFP
	freeOrientation := dFree
	if existingV.Orientation != dPinned {
		mPFc = mPF.Reverse()
		mFPc = mFP.Reverse()
		freeOrientation = dFree.Flip()
	}
	freeV := BlockVertex{Seq: freeSeq, Interval: freeIv, Orientation: freeOrientation}
	m.addVertex(freeV)
	m.addEdge(existingPath, freeV.path(), mPFc, mFPc)
	ix.register(freeV.path(), mid)
	return true
}

// nodeVsModules is the recursive core of node<->module reconciliation:
// reconcile the
// alignment edge (pinnedSeq, q) <-> (freeSeq, freeIv) against whatever
// already-live blocks overlap q on pinnedSeq. q and freeIv shrink on each
// recursive call as overhangs left and right of an overlapping block are
// peeled off; mPF/mFP always cover exactly the current q/freeIv pair.
func (ix *Index) nodeVsModules(pinnedSeq SeqId, q Interval, dPinned Orientation, freeSeq SeqId, freeIv Interval, dFree Orientation, mPF, mFP Bitmask, depth int) {
	if int(q.Len()) < ix.opts.MinBlockLen || int(freeIv.Len()) < ix.opts.MinBlockLen {
		return
	}
	if depth >= ix.opts.MaxRecursionDepth {
		log.Debug.Printf("mhg: node_vs_modules recursion depth exceeded at %v, joining as fresh pair", q)
		ix.joinFreshPair(pinnedSeq, q, dPinned, freeSeq, freeIv, dFree, mPF, mFP)
		return
	}

	hits := ix.overlapping(pinnedSeq, q)
	if len(hits) == 0 {
		ix.joinFreshPair(pinnedSeq, q, dPinned, freeSeq, freeIv, dFree, mPF, mFP)
		return
	}
	b := hits[0]
	bIv := b.iv

	coreLo, coreHi := q.Lo, q.Hi
	if bIv.Lo > coreLo {
		coreLo = bIv.Lo
	}
	if bIv.Hi < coreHi {
		coreHi = bIv.Hi
	}
	core := Interval{Lo: coreLo, Hi: coreHi}

	cur := pairSeg{seq: pinnedSeq, iv: q, o: dPinned, mTo: mPF, mFrom: mFP}
	curFree := pairSeg{seq: freeSeq, iv: freeIv, o: dFree, mTo: mFP, mFrom: mPF}

	if core.Lo > cur.iv.Lo {
		before, beforeFree, after, afterFree, err := splitPairAtAbs(cur, curFree, core.Lo)
		if err != nil {
			log.Debug.Printf("mhg: node_vs_modules: left overhang split failed at %d: %v", core.Lo, err)
		} else {
			ix.nodeVsModules(before.seq, before.iv, before.o, beforeFree.seq, beforeFree.iv, beforeFree.o, before.mTo, before.mFrom, depth+1)
			cur, curFree = after, afterFree
		}
	}
	if core.Hi < cur.iv.Hi {
		before, beforeFree, after, afterFree, err := splitPairAtAbs(cur, curFree, core.Hi)
		if err != nil {
			log.Debug.Printf("mhg: node_vs_modules: right overhang split failed at %d: %v", core.Hi, err)
		} else {
			ix.nodeVsModules(after.seq, after.iv, after.o, afterFree.seq, afterFree.iv, afterFree.o, after.mTo, after.mFrom, depth+1)
			cur, curFree = before, beforeFree
		}
	}

	if int(cur.iv.Len()) < ix.opts.MinBlockLen {
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
	mid, ok := ix.moduleOf(curP)
	if !ok {
		log.Debug.Printf("mhg: node_vs_modules: block %v vanished during chop", curP)
		return
	}
	ix.joinIntoModule(mid, curP, cur.o, curFree.seq, curFree.iv, curFree.o, cur.mTo, cur.mFrom)
	ix.checkAndRepair(mid)
}
