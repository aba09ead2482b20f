package mhg

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestTrimRemovesShortLiveBlocksAndEmptiesModules(t *testing.T) {
	ix := NewIndex(DefaultOpts)
	iv := Interval{Lo: 1, Hi: 31}
	mask := gaplessMask(30)
	ix.ProcessNodeNode(Node{Seq: 0, Interval: iv}, Node{Seq: 1, Interval: iv}, iv, iv, Plus, Plus, mask, mask)
	expect.EQ(t, ix.Arena.Len(), 1)

	// Manually shrink one live block below TrimBlockLen to simulate chop
	// fallout, then trim.
	mid, _ := ix.moduleOf(path{seq: 0, iv: iv})
	m, _ := ix.Arena.Get(mid)
	v, _ := m.Vertex(path{seq: 0, iv: iv})
	ix.unregister(path{seq: 0, iv: iv})
	m.removeVertex(path{seq: 0, iv: iv})
	shrunk := Interval{Lo: 1, Hi: 1 + PosType(ix.opts.TrimBlockLen-1)}
	v.Interval = shrunk
	m.addVertex(v)
	ix.register(v.path(), mid)

	ix.trim(ix.opts.TrimBlockLen)

	// Module should have been discarded entirely: it's left with one vertex
	// (seq1's), which is below the 2-vertex minimum.
	_, ok := ix.Arena.Get(mid)
	expect.False(t, ok)
}

func TestSnapshotRestore(t *testing.T) {
	ix := NewIndex(DefaultOpts)
	iv := Interval{Lo: 1, Hi: 31}
	mask := gaplessMask(30)
	ix.ProcessNodeNode(Node{Seq: 0, Interval: iv}, Node{Seq: 1, Interval: iv}, iv, iv, Plus, Plus, mask, mask)
	expect.EQ(t, ix.Arena.Len(), 1)

	snap := ix.snapshotAll()
	ix.ProcessNodeNode(Node{Seq: 2, Interval: iv}, Node{Seq: 3, Interval: iv}, iv, iv, Plus, Plus, mask, mask)
	expect.EQ(t, ix.Arena.Len(), 2)

	ix.restore(snap)
	expect.EQ(t, ix.Arena.Len(), 1)
	_, ok := ix.moduleOf(path{seq: 2, iv: iv})
	expect.False(t, ok)
}
