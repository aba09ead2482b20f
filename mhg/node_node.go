package mhg

import "github.com/grailbio/base/log"

// nodePartition splits whole at the interior cut points {cut.Lo, cut.Hi},
// returning up to three fragments in coordinate order: the part of whole
// before cut, cut itself, and the part after.  Empty fragments are
// omitted. cut must be contained in whole.
func nodePartition(whole, cut Interval) (before, mid, after Interval, hasBefore, hasAfter bool) {
	mid = cut
	if cut.Lo > whole.Lo {
		before = Interval{Lo: whole.Lo, Hi: cut.Lo}
		hasBefore = true
	}
	if cut.Hi < whole.Hi {
		after = Interval{Lo: cut.Hi, Hi: whole.Hi}
		hasAfter = true
	}
	return
}

// registerSingleton creates a one-vertex module, in orientation Plus, for a
// fragment that isn't part of the current alignment, provided it meets the
// minimum block length; otherwise it is silently dropped (ShortBlock). A
// fragment that already overlaps a live block is left alone: an earlier
// edge on the same node already accounted for it, possibly at a different
// subdivision than iv names here.
func (ix *Index) registerSingleton(seq SeqId, iv Interval) {
	if int(iv.Len()) < ix.opts.MinBlockLen {
		log.Debug.Printf("mhg: dropping short fragment %d:[%d,%d)", seq, iv.Lo, iv.Hi)
		return
	}
	if len(ix.overlapping(seq, iv)) > 0 {
		return
	}
	m := ix.Arena.New()
	v := BlockVertex{Seq: seq, Interval: iv, Orientation: Plus}
	m.addVertex(v)
	ix.register(v.path(), m.id)
}

// ProcessNodeNode handles the case where neither endpoint of the alignment
// edge (nodeA, pathA) <-> (nodeB, pathB) is yet assigned to any module.
// mAB/mBA are the alignment's gap bitmasks in the orientation implied by
// dA/dB (mAB's popcount equals len(pathB), mBA's equals len(pathA), per the
// AlignmentGraph contract).
func (ix *Index) ProcessNodeNode(nodeA, nodeB Node, pathA, pathB Interval, dA, dB Orientation, mAB, mBA Bitmask) {
	beforeA, _, afterA, hasBeforeA, hasAfterA := nodePartition(nodeA.Interval, pathA)
	beforeB, _, afterB, hasBeforeB, hasAfterB := nodePartition(nodeB.Interval, pathB)
	if hasBeforeA {
		ix.registerSingleton(nodeA.Seq, beforeA)
	}
	if hasAfterA {
		ix.registerSingleton(nodeA.Seq, afterA)
	}
	if hasBeforeB {
		ix.registerSingleton(nodeB.Seq, beforeB)
	}
	if hasAfterB {
		ix.registerSingleton(nodeB.Seq, afterB)
	}

	if int(pathA.Len()) < ix.opts.MinBlockLen || int(pathB.Len()) < ix.opts.MinBlockLen {
		log.Debug.Printf("mhg: dropping alignment %v<->%v, shorter than minimum block length", pathA, pathB)
		return
	}

	ix.joinFreshPair(nodeA.Seq, pathA, dA, nodeB.Seq, pathB, dB, mAB, mBA)
}

// joinFreshPair creates a brand-new two-vertex module joining (seqA, ivA)
// to (seqB, ivB), neither of which is currently live. The module's frame
// canonicalizes A to orientation Plus regardless of the raw alignment's own
// dA; B's orientation and the masks follow. mAB/mBA are given in the raw
// alignment's own reading order (mAB popcount == len(ivB), mBA popcount ==
// len(ivA)).
func (ix *Index) joinFreshPair(seqA SeqId, ivA Interval, dA Orientation, seqB SeqId, ivB Interval, dB Orientation, mAB, mBA Bitmask) {
	mABc, mBAc := mAB, mBA
	if dA == Minus {
		mABc = mAB.Reverse()
		mBAc = mBA.Reverse()
	}
	vBOrientation := Plus
	if dA != dB {
		vBOrientation = Minus
	}

	m := ix.Arena.New()
	vA := BlockVertex{Seq: seqA, Interval: ivA, Orientation: Plus}
	vB := BlockVertex{Seq: seqB, Interval: ivB, Orientation: vBOrientation}
	m.addVertex(vA)
	m.addVertex(vB)
	m.addEdge(vA.path(), vB.path(), mABc, mBAc)
	ix.register(vA.path(), m.id)
	ix.register(vB.path(), m.id)
}
