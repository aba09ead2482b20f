package mhg

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

// TestNodeVsModulesChopsExistingBlock exercises a two-way split: a
// second alignment lands partway into an already-live two-sequence module,
// forcing both sequences' blocks to be chopped in two before the new
// sequence is joined to the matching fragment.
func TestNodeVsModulesChopsExistingBlock(t *testing.T) {
	ix := NewIndex(DefaultOpts)
	full := Interval{Lo: 1, Hi: 61}
	mask60 := gaplessMask(60)
	ix.ProcessNodeNode(Node{Seq: 0, Interval: full}, Node{Seq: 1, Interval: full}, full, full, Plus, Plus, mask60, mask60)
	expect.EQ(t, ix.Arena.Len(), 1)

	sub := Interval{Lo: 1, Hi: 41}
	mask40 := gaplessMask(40)
	// pinnedNode's own Interval is passed as exactly sub (rather than the
	// wider live node), so ProcessNodeModule finds no untouched node fragment
	// to register as a singleton -- that region is already live, covered by
	// the module created above. The remainder on the far side, [41,61), is 20
	// long -- right at MinBlockLen -- so chopModule keeps it rather than
	// dropping it as a ShortBlock.
	ix.ProcessNodeModule(Node{Seq: 0, Interval: sub}, Node{Seq: 2, Interval: sub}, sub, sub, Plus, Plus, mask40, mask40)

	expect.EQ(t, ix.Arena.Len(), 2)

	leftMid, ok := ix.moduleOf(path{seq: 0, iv: sub})
	expect.True(t, ok)
	left, _ := ix.Arena.Get(leftMid)
	expect.EQ(t, left.Len(), 3)
	_, ok = left.Vertex(path{seq: 2, iv: sub})
	expect.True(t, ok)

	rightSub := Interval{Lo: 41, Hi: 61}
	rightMid, ok := ix.moduleOf(path{seq: 0, iv: rightSub})
	expect.True(t, ok)
	right, _ := ix.Arena.Get(rightMid)
	expect.EQ(t, right.Len(), 2)
	_, ok = right.Vertex(path{seq: 1, iv: rightSub})
	expect.True(t, ok)
}
