package preprocess

import (
	"sort"

	bi "github.com/grailbio/bio-mhg/interval"
	"github.com/grailbio/bio-mhg/mhg"
)

// normalizeSpan converts BLAST's possibly-descending 1-based coordinates
// into the package's 1-based half-open Interval. BLAST reports a subject
// span running high-to-low when the hit is on the minus strand; the node
// interval itself is always stored ascending, orientation is tracked
// separately on the alignment edge.
func normalizeSpan(start, end int) mhg.Interval {
	lo, hi := start, end
	if lo > hi {
		lo, hi = hi, lo
	}
	return mhg.Interval{Lo: mhg.PosType(lo), Hi: mhg.PosType(hi + 1)}
}

// mergeSpans collapses a sequence's raw spans into the maximal disjoint
// node intervals covering them. It runs once per sequence over every span
// the sequence appears in, as either query or subject, so the result is
// unique regardless of which side of an alignment first touched a given
// region.
func mergeSpans(spans []mhg.Interval) []mhg.Interval {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]mhg.Interval, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })

	merged := []mhg.Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Lo <= last.Hi {
			if iv.Hi > last.Hi {
				last.Hi = iv.Hi
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// nodeIntervalFor finds the merged interval containing iv among the
// sorted, disjoint candidates. Every raw span that fed mergeSpans is fully
// contained in exactly one result, by construction.
func nodeIntervalFor(candidates []mhg.Interval, iv mhg.Interval) (mhg.Interval, bool) {
	i := sort.Search(len(candidates), func(i int) bool { return candidates[i].Hi > iv.Lo })
	if i < len(candidates) && candidates[i].Contains(iv) {
		return candidates[i], true
	}
	return mhg.Interval{}, false
}

func orientationOf(start, end int) mhg.Orientation {
	if start <= end {
		return mhg.Plus
	}
	return mhg.Minus
}

// BuildAlignmentGraph turns a filtered HSP list into the partitioner's
// input: per-sequence node intervals merged from every HSP endpoint that
// touches the sequence (as either query or subject), and one
// mhg.AlignmentEdge per surviving HSP, reprojected onto those node
// intervals. reg assigns the SeqId each sequence name is known by
// elsewhere in a run (e.g. a BAM header already loaded for a related
// step); pass interval.NewSeqRegistry(nil) to number sequences in
// first-sighted order instead.
func BuildAlignmentGraph(hsps []HSP, reg *bi.SeqRegistry) mhg.AlignmentGraph {
	rawBySeq := map[mhg.SeqId][]mhg.Interval{}
	for _, h := range hsps {
		qID := reg.ID(h.Query)
		sID := reg.ID(h.Subject)
		rawBySeq[qID] = append(rawBySeq[qID], normalizeSpan(h.QStart, h.QEnd))
		rawBySeq[sID] = append(rawBySeq[sID], normalizeSpan(h.SStart, h.SEnd))
	}

	nodeIntervals := map[mhg.SeqId][]mhg.Interval{}
	var nodes []mhg.Node
	for seq, spans := range rawBySeq {
		merged := mergeSpans(spans)
		nodeIntervals[seq] = merged
		for _, iv := range merged {
			nodes = append(nodes, mhg.Node{Seq: seq, Interval: iv})
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Seq != nodes[j].Seq {
			return nodes[i].Seq < nodes[j].Seq
		}
		return nodes[i].Interval.Lo < nodes[j].Interval.Lo
	})

	var edges []mhg.AlignmentEdge
	for _, h := range hsps {
		qID := reg.ID(h.Query)
		sID := reg.ID(h.Subject)
		qRaw := normalizeSpan(h.QStart, h.QEnd)
		sRaw := normalizeSpan(h.SStart, h.SEnd)
		qNodeIv, ok := nodeIntervalFor(nodeIntervals[qID], qRaw)
		if !ok {
			continue
		}
		sNodeIv, ok := nodeIntervalFor(nodeIntervals[sID], sRaw)
		if !ok {
			continue
		}
		edges = append(edges, mhg.AlignmentEdge{
			NodeA:  mhg.Node{Seq: qID, Interval: qNodeIv},
			NodeB:  mhg.Node{Seq: sID, Interval: sNodeIv},
			PathA:  qRaw,
			PathB:  sRaw,
			DA:     orientationOf(h.QStart, h.QEnd),
			DB:     orientationOf(h.SStart, h.SEnd),
			MaskAB: mhg.NewBitmask(h.SSeq),
			MaskBA: mhg.NewBitmask(h.QSeq),
		})
	}

	return mhg.AlignmentGraph{Nodes: nodes, Edges: edges}
}
