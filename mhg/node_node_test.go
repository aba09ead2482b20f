package mhg

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func gaplessMask(n int) Bitmask {
	m := make(Bitmask, n)
	for i := range m {
		m[i] = 1
	}
	return m
}

func TestProcessNodeNodeFreshPair(t *testing.T) {
	ix := NewIndex(DefaultOpts)
	pathA := Interval{Lo: 1, Hi: 21}
	pathB := Interval{Lo: 1, Hi: 21}
	nodeA := Node{Seq: 0, Interval: pathA}
	nodeB := Node{Seq: 1, Interval: pathB}
	mask := gaplessMask(20)

	ix.ProcessNodeNode(nodeA, nodeB, pathA, pathB, Plus, Plus, mask, mask)

	expect.EQ(t, ix.Arena.Len(), 1)
	mid, ok := ix.moduleOf(path{seq: 0, iv: pathA})
	expect.True(t, ok)
	m, ok := ix.Arena.Get(mid)
	expect.True(t, ok)
	expect.EQ(t, m.Len(), 2)

	vA, ok := m.Vertex(path{seq: 0, iv: pathA})
	expect.True(t, ok)
	expect.EQ(t, vA.Orientation, Plus)
	vB, ok := m.Vertex(path{seq: 1, iv: pathB})
	expect.True(t, ok)
	expect.EQ(t, vB.Orientation, Plus)
}

func TestProcessNodeNodeAntiParallel(t *testing.T) {
	ix := NewIndex(DefaultOpts)
	pathA := Interval{Lo: 1, Hi: 21}
	pathB := Interval{Lo: 100, Hi: 120}
	nodeA := Node{Seq: 0, Interval: pathA}
	nodeB := Node{Seq: 1, Interval: pathB}
	mask := gaplessMask(20)

	ix.ProcessNodeNode(nodeA, nodeB, pathA, pathB, Plus, Minus, mask, mask)

	mid, ok := ix.moduleOf(path{seq: 1, iv: pathB})
	expect.True(t, ok)
	m, _ := ix.Arena.Get(mid)
	vB, _ := m.Vertex(path{seq: 1, iv: pathB})
	expect.EQ(t, vB.Orientation, Minus)
}

func TestProcessNodeNodeWithOverhangsRegistersSingletons(t *testing.T) {
	ix := NewIndex(DefaultOpts)
	nodeA := Node{Seq: 0, Interval: Interval{Lo: 1, Hi: 101}}
	nodeB := Node{Seq: 1, Interval: Interval{Lo: 1, Hi: 101}}
	pathA := Interval{Lo: 21, Hi: 41}
	pathB := Interval{Lo: 21, Hi: 41}
	mask := gaplessMask(20)

	ix.ProcessNodeNode(nodeA, nodeB, pathA, pathB, Plus, Plus, mask, mask)

	// Before/after fragments on both sequences, each >= MinBlockLen, plus the
	// two-vertex aligned module itself.
	expect.EQ(t, ix.Arena.Len(), 5)
}

func TestProcessNodeNodeShortBlockDropped(t *testing.T) {
	ix := NewIndex(DefaultOpts)
	pathA := Interval{Lo: 1, Hi: 5} // shorter than MinBlockLen
	pathB := Interval{Lo: 1, Hi: 5}
	nodeA := Node{Seq: 0, Interval: pathA}
	nodeB := Node{Seq: 1, Interval: pathB}
	mask := gaplessMask(4)

	ix.ProcessNodeNode(nodeA, nodeB, pathA, pathB, Plus, Plus, mask, mask)

	expect.EQ(t, ix.Arena.Len(), 0)
}
