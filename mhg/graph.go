package mhg

import "fmt"

// AlignmentEdge is one pairwise alignment between two nodes of the input
// graph, already oriented and normalized: PathA/PathB are sub-intervals of
// NodeA.Interval/NodeB.Interval with Lo < Hi, DA/DB record which physical
// direction the alignment reads in (a raw coordinate pair with start > end
// reads in the Minus direction), and MaskAB/MaskBA are the alignment's gap
// bitmasks in that reading order (MaskAB popcount == len(PathB), MaskBA
// popcount == len(PathA)).
type AlignmentEdge struct {
	NodeA, NodeB   Node
	PathA, PathB   Interval
	DA, DB         Orientation
	MaskAB, MaskBA Bitmask
}

func (e AlignmentEdge) String() string {
	return fmt.Sprintf("%v%s<->%v%s", e.PathA, e.DA, e.PathB, e.DB)
}

// AlignmentGraph is the partitioner's input: a set of nodes (maximal
// per-sequence aligned regions, established during pre-partitioning) and
// the alignment edges between them.
type AlignmentGraph struct {
	Nodes []Node
	Edges []AlignmentEdge
}

// sortKey gives edges a deterministic total order -- (min endpoint,
// max endpoint, index) -- so repeated runs over the same graph produce the
// same partition; the partition result is sensitive to the order edges are
// applied in, so that order must be reproducible.
type sortKey struct {
	lo, hi string
	index  int
}

func edgeSortKey(e AlignmentEdge, index int) sortKey {
	a := fmt.Sprintf("%d:%d-%d", e.NodeA.Seq, e.PathA.Lo, e.PathA.Hi)
	b := fmt.Sprintf("%d:%d-%d", e.NodeB.Seq, e.PathB.Lo, e.PathB.Hi)
	if a <= b {
		return sortKey{lo: a, hi: b, index: index}
	}
	return sortKey{lo: b, hi: a, index: index}
}

// ProcessEdge dispatches e to ProcessNodeNode, ProcessNodeModule (in either
// orientation), or ProcessModuleModule depending on whether either endpoint
// already has live blocks on its sequence. A path is treated as "in a
// module" when some live block on its sequence overlaps it; an edge
// spanning a gap between two unrelated live blocks on the same sequence
// still takes the node/module branch, since nodeVsModules' recursion is
// exactly the procedure for resolving that.
func (ix *Index) ProcessEdge(e AlignmentEdge) {
	aLive := len(ix.overlapping(e.NodeA.Seq, e.PathA)) > 0
	bLive := len(ix.overlapping(e.NodeB.Seq, e.PathB)) > 0

	switch {
	case !aLive && !bLive:
		ix.ProcessNodeNode(e.NodeA, e.NodeB, e.PathA, e.PathB, e.DA, e.DB, e.MaskAB, e.MaskBA)
	case aLive && !bLive:
		ix.ProcessNodeModule(e.NodeA, e.NodeB, e.PathA, e.PathB, e.DA, e.DB, e.MaskAB, e.MaskBA)
	case !aLive && bLive:
		ix.ProcessNodeModule(e.NodeB, e.NodeA, e.PathB, e.PathA, e.DB, e.DA, e.MaskBA, e.MaskAB)
	default:
		ix.ProcessModuleModule(e.NodeA, e.NodeB, e.PathA, e.PathB, e.DA, e.DB, e.MaskAB, e.MaskBA)
	}
}
