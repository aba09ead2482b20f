package mhg

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestProcessEdgeChainComposesIntoOneModule(t *testing.T) {
	ix := NewIndex(DefaultOpts)
	iv := Interval{Lo: 1, Hi: 31}
	mask := gaplessMask(30)

	// seq0 <-> seq1: node/node.
	ix.ProcessEdge(AlignmentEdge{
		NodeA: Node{Seq: 0, Interval: iv}, NodeB: Node{Seq: 1, Interval: iv},
		PathA: iv, PathB: iv, DA: Plus, DB: Plus, MaskAB: mask, MaskBA: mask,
	})
	expect.EQ(t, ix.Arena.Len(), 1)

	// seq0 <-> seq2: node/module (seq0 already live, seq2 is not).
	ix.ProcessEdge(AlignmentEdge{
		NodeA: Node{Seq: 0, Interval: iv}, NodeB: Node{Seq: 2, Interval: iv},
		PathA: iv, PathB: iv, DA: Plus, DB: Plus, MaskAB: mask, MaskBA: mask,
	})
	expect.EQ(t, ix.Arena.Len(), 1)

	mid, ok := ix.moduleOf(path{seq: 0, iv: iv})
	expect.True(t, ok)
	m, _ := ix.Arena.Get(mid)
	expect.EQ(t, m.Len(), 3)

	// seq1 <-> seq2: both already in the same module; module/module composition
	// should be a no-op rather than creating a duplicate vertex or a new module.
	ix.ProcessEdge(AlignmentEdge{
		NodeA: Node{Seq: 1, Interval: iv}, NodeB: Node{Seq: 2, Interval: iv},
		PathA: iv, PathB: iv, DA: Plus, DB: Plus, MaskAB: mask, MaskBA: mask,
	})
	expect.EQ(t, ix.Arena.Len(), 1)
	mid2, ok := ix.moduleOf(path{seq: 1, iv: iv})
	expect.True(t, ok)
	expect.EQ(t, mid2, mid)
	m2, _ := ix.Arena.Get(mid)
	expect.EQ(t, m2.Len(), 3)
}

func TestPartitionerEndToEnd(t *testing.T) {
	iv := Interval{Lo: 1, Hi: 31}
	mask := gaplessMask(30)
	g := AlignmentGraph{
		Nodes: []Node{
			{Seq: 0, Interval: iv},
			{Seq: 1, Interval: iv},
			{Seq: 2, Interval: iv},
		},
		Edges: []AlignmentEdge{
			{NodeA: Node{Seq: 0, Interval: iv}, NodeB: Node{Seq: 1, Interval: iv}, PathA: iv, PathB: iv, DA: Plus, DB: Plus, MaskAB: mask, MaskBA: mask},
			{NodeA: Node{Seq: 0, Interval: iv}, NodeB: Node{Seq: 2, Interval: iv}, PathA: iv, PathB: iv, DA: Plus, DB: Plus, MaskAB: mask, MaskBA: mask},
		},
	}
	out := NewPartitioner(DefaultOpts).Partition(g)
	expect.EQ(t, len(out), 1)
	expect.EQ(t, len(out[0].Vertices), 3)
}

func TestOverhangTooLong(t *testing.T) {
	existing := Interval{Lo: 1, Hi: 1000}
	query := Interval{Lo: 50, Hi: 200}
	expect.True(t, overhangTooLong(existing, query, 100))
	expect.False(t, overhangTooLong(existing, query, 1000))
}
