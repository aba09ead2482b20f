package mhg

// Opts holds the partitioner's tunable thresholds, the way fusion.Opts
// holds one field per fusion detector tunable.
type Opts struct {
	// MinBlockLen is the minimum length a newly created block may have.
	// Blocks shorter than this are dropped at creation time.
	MinBlockLen int
	// TrimBlockLen is the retroactive trim threshold: every TrimInterval
	// edges, live blocks shorter than this are removed from the indexes.
	// TrimBlockLen <= MinBlockLen.
	TrimBlockLen int
	// TrimInterval is the number of edges between trimming passes.
	TrimInterval int
	// LongOverlapBP is the "long-overlap abort" threshold: alignments that
	// would overlap a neighbouring module's territory by more than this
	// many coordinate units at either end are dropped rather than
	// truncated-and-continued.
	LongOverlapBP int
	// BitscoreTau is the pre-partition bitscore-cut coefficient: an
	// alignment survives if bitscore >= Tau*(1.6446838*alignLen+3).
	BitscoreTau float64
	// MaxRecursionDepth bounds node-vs-module and module-vs-module
	// recursion: beyond this many nested overlapping modules, the
	// recursive descent gives up refining further, to avoid native stack
	// overflow on pathological components.  Node-vs-module recursion then
	// joins what's left as a fresh pair; module-vs-module recursion attaches
	// it to the destination block's module.
	MaxRecursionDepth int
}

// DefaultOpts carries the partitioner's default tunables.
var DefaultOpts = Opts{
	MinBlockLen:       20,
	TrimBlockLen:      10,
	TrimInterval:      500,
	LongOverlapBP:     100,
	BitscoreTau:       0.4,
	MaxRecursionDepth: 256,
}
