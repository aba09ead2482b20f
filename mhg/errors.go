package mhg

// Kind classifies a recoverable partitioning error.
// None of these are raised to the caller of Index.ProcessEdge; they
// are absorbed internally and the relevant alignment edge, or block, is
// dropped while the rest of the SCC keeps processing.
type Kind int

const (
	// IndexLookup: ChopIndex was asked for a popcount the mask cannot
	// supply.  The mask and the coordinate sliced against it have drifted
	// out of sync.  The failure is absorbed where it occurs: the split it
	// belonged to is not made (node<->module keeps the unsplit remainder,
	// module<->module returns from that branch of its recursion, a chop
	// leaves the vertex or edge unsplit).  The indexes are not rolled back.
	IndexLookup Kind = iota
	// InvariantViolation: a post-step check found a module with two
	// overlapping blocks on one sequence.  The offending module is removed.
	InvariantViolation
	// LongOverlap: placing an alignment would overlap another module's
	// territory by more than Opts.LongOverlapBP.  The alignment is dropped.
	LongOverlap
	// ShortBlock: the block that would result is shorter than the minimum
	// creation length.  The would-be block is dropped.
	ShortBlock
	// MissingModule: recursion reached a destination module already
	// destroyed by an earlier step of the same recursion.  The recursive
	// call returns early.
	MissingModule
)

func (k Kind) String() string {
	switch k {
	case IndexLookup:
		return "IndexLookup"
	case InvariantViolation:
		return "InvariantViolation"
	case LongOverlap:
		return "LongOverlap"
	case ShortBlock:
		return "ShortBlock"
	case MissingModule:
		return "MissingModule"
	default:
		return "Unknown"
	}
}

// partitionError is a Kind-tagged error, returned by Bitmask.ChopIndex and
// chopModule so a caller can tell the failure modes apart with KindOf
// rather than by inspecting free-form strings.  The driver in scc.go does
// not inspect errors; each failure is handled where it arises.
type partitionError struct {
	kind Kind
	msg  string
}

func (e *partitionError) Error() string { return e.kind.String() + ": " + e.msg }

func newError(k Kind, msg string) error {
	return &partitionError{kind: k, msg: msg}
}

// errIndexLookup is the sentinel wrapped by Bitmask.ChopIndex.  Use KindOf
// to recognize the IndexLookup case regardless of the surrounding
// errors.Wrap context.
var errIndexLookup = newError(IndexLookup, "chop_index out of range")

// KindOf returns the Kind of err if it (or something it wraps) is a
// partitioning error, and ok=false otherwise.  It walks both the stdlib
// Unwrap() and github.com/pkg/errors' Cause() chains, since call sites in
// this package wrap with the latter.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if pe, ok := err.(*partitionError); ok {
			return pe.kind, true
		}
		switch x := err.(type) {
		case interface{ Unwrap() error }:
			err = x.Unwrap()
		case interface{ Cause() error }:
			err = x.Cause()
		default:
			return 0, false
		}
	}
	return 0, false
}
