package mhg

// readingOffset converts an absolute coordinate abs, interior to iv, into an
// offset counted from iv's reading-order start: 0 at iv.Lo when o is Plus,
// 0 at iv.Hi when o is Minus. This is the same "canonical-first" coordinate
// space module_chop.go's canonicalFirstLen uses, generalized to any
// (Interval, Orientation) pair rather than just a module's BlockVertex --
// node_module.go needs it for alignment edges that aren't module members
// yet.
func readingOffset(iv Interval, o Orientation, abs PosType) int {
	if o == Plus {
		return int(abs - iv.Lo)
	}
	return int(iv.Hi - abs)
}

// readingSplit splits iv into its reading-first and reading-second
// fragments given the reading-first fragment's length.
func readingSplit(iv Interval, o Orientation, firstLen int) (first, second Interval) {
	if o == Plus {
		mid := iv.Lo + PosType(firstLen)
		return Interval{Lo: iv.Lo, Hi: mid}, Interval{Lo: mid, Hi: iv.Hi}
	}
	mid := iv.Hi - PosType(firstLen)
	return Interval{Lo: mid, Hi: iv.Hi}, Interval{Lo: iv.Lo, Hi: mid}
}

// pairSeg is one side of an alignment edge being sliced during node↔module
// reconciliation: the remaining sub-interval, its orientation, and the
// masks covering it. mTo has popcount == len(the other side); mFrom has
// popcount == len(this side) (the edge-labeling convention of module.go).
type pairSeg struct {
	seq   SeqId
	iv    Interval
	o     Orientation
	mTo   Bitmask
	mFrom Bitmask
}

// splitPair cuts the alignment pair (a, b) at the absolute coordinate
// cutAbs, interior to a.iv, returning the two resulting (a, b) pairs in a's
// reading order: aFirst/bFirst is a's reading-first fragment and its
// matching fragment of b; aSecond/bSecond the reading-second pair.
func splitPair(a, b pairSeg, cutAbs PosType) (aFirst, bFirst, aSecond, bSecond pairSeg, err error) {
	offset := readingOffset(a.iv, a.o, cutAbs)
	j, cerr := a.mFrom.ChopIndex(offset)
	if cerr != nil {
		return pairSeg{}, pairSeg{}, pairSeg{}, pairSeg{}, cerr
	}
	bOffset := a.mTo.Popcount0(j)
	aFirstIv, aSecondIv := readingSplit(a.iv, a.o, offset)
	bFirstIv, bSecondIv := readingSplit(b.iv, b.o, bOffset)
	aFirst = pairSeg{seq: a.seq, iv: aFirstIv, o: a.o, mTo: a.mTo[:j], mFrom: a.mFrom[:j]}
	aSecond = pairSeg{seq: a.seq, iv: aSecondIv, o: a.o, mTo: a.mTo[j:], mFrom: a.mFrom[j:]}
	bFirst = pairSeg{seq: b.seq, iv: bFirstIv, o: b.o, mTo: b.mTo[:j], mFrom: b.mFrom[:j]}
	bSecond = pairSeg{seq: b.seq, iv: bSecondIv, o: b.o, mTo: b.mTo[j:], mFrom: b.mFrom[j:]}
	return
}

// splitPairAtAbs is splitPair re-expressed in absolute coordinate order
// rather than a's reading order, so callers that walk a query interval
// left to right don't need to branch on orientation themselves.
func splitPairAtAbs(a, b pairSeg, cutAbs PosType) (before, beforeB, after, afterB pairSeg, err error) {
	aFirst, bFirst, aSecond, bSecond, err := splitPair(a, b, cutAbs)
	if err != nil {
		return pairSeg{}, pairSeg{}, pairSeg{}, pairSeg{}, err
	}
	if a.o == Plus {
		return aFirst, bFirst, aSecond, bSecond, nil
	}
	return aSecond, bSecond, aFirst, bFirst, nil
}
