package preprocess

import (
	"testing"

	bi "github.com/grailbio/bio-mhg/interval"
	"github.com/grailbio/bio-mhg/mhg"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSpanHandlesMinusStrand(t *testing.T) {
	iv := normalizeSpan(100, 50)
	assert.Equal(t, mhg.Interval{Lo: 50, Hi: 101}, iv)
}

func TestMergeSpansCollapsesOverlaps(t *testing.T) {
	spans := []mhg.Interval{
		{Lo: 1, Hi: 21},
		{Lo: 15, Hi: 40},
		{Lo: 100, Hi: 120},
	}
	merged := mergeSpans(spans)
	assert.Equal(t, []mhg.Interval{{Lo: 1, Hi: 40}, {Lo: 100, Hi: 120}}, merged)
}

func TestBuildAlignmentGraphReprojectsEndpoints(t *testing.T) {
	hsps := []HSP{
		{Query: "a", Subject: "b", QStart: 1, QEnd: 30, SStart: 1, SEnd: 30, BitScore: 200, QSeq: strings30(), SSeq: strings30()},
		{Query: "a", Subject: "c", QStart: 50, QEnd: 80, SStart: 1, SEnd: 30, BitScore: 200, QSeq: strings30(), SSeq: strings30()},
	}
	g := BuildAlignmentGraph(hsps, bi.NewSeqRegistry(nil))
	assert.Len(t, g.Edges, 2)

	// seq "a" has two disjoint raw spans ([1,30] and [50,80]); its node
	// intervals should stay separate, not merged into one.
	var aNodes int
	for _, n := range g.Nodes {
		if n.Seq == 0 {
			aNodes++
		}
	}
	assert.Equal(t, 2, aNodes)
}

func strings30() string {
	s := ""
	for i := 0; i < 30; i++ {
		s += "A"
	}
	return s
}
