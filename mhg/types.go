// Package mhg implements the interval-graph partitioner: given a multigraph
// of pairwise local sequence alignments, it incrementally subdivides the
// aligned intervals into maximal-homologous-group modules, small
// multi-sequence graphs whose vertices are aligned sub-intervals ("blocks")
// and whose edges carry the gap bitmask of the alignment between two
// blocks.
package mhg

import (
	"fmt"

	bi "github.com/grailbio/bio-mhg/interval"
)

// SeqId identifies one input sequence by the integer id bi.SeqRegistry
// assigns to its name; the name itself is never stored in the partitioner.
type SeqId = int

// Interval is a half-open coordinate range, re-exported from the interval
// package so callers do not need two imports for one concept.
type Interval = bi.Interval

// PosType is a single sequence coordinate, re-exported from the interval
// package.
type PosType = bi.PosType

// Orientation is the reading direction of a block-vertex relative to its
// module's canonical frame.
type Orientation int8

const (
	// Plus is the forward orientation.
	Plus Orientation = 1
	// Minus is the reverse orientation.
	Minus Orientation = -1
)

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	return -o
}

func (o Orientation) String() string {
	if o == Plus {
		return "+"
	}
	return "-"
}

// Node is a vertex of the input alignment graph: a sequence together with
// the maximal region of it covered by any alignment, established during
// pre-partitioning.
type Node struct {
	Seq      SeqId
	Interval Interval
}

func (n Node) String() string {
	return fmt.Sprintf("%d:[%d,%d)", n.Seq, n.Interval.Lo, n.Interval.Hi)
}

// path is the (SeqId, Interval) key used to look up a live block in the
// shared indexes.  It is distinct from Node because a Node's Interval is
// fixed at construction time, while a path's Interval shrinks as blocks are
// chopped.
type path struct {
	seq SeqId
	iv  Interval
}

func (p path) String() string {
	return fmt.Sprintf("%d:[%d,%d)", p.seq, p.iv.Lo, p.iv.Hi)
}

// BlockVertex is a vertex of a Module: a sub-interval of a sequence
// together with an orientation internal to its module.
type BlockVertex struct {
	Seq         SeqId
	Interval    Interval
	Orientation Orientation
}

func (v BlockVertex) path() path {
	return path{seq: v.Seq, iv: v.Interval}
}

func (v BlockVertex) String() string {
	return fmt.Sprintf("(%d,[%d,%d),%s)", v.Seq, v.Interval.Lo, v.Interval.Hi, v.Orientation)
}
