package mhg

import "github.com/pkg/errors"

// Bitmask is the gap pattern of one side of an alignment: one byte per
// alignment column, 0 for a gap column, 1 for an aligned (match or
// mismatch) column.  A plain byte slice is sufficient up to ~10^8 total mask
// bits; packing into 64-bit words with a rank-select index is a future
// optimization, not required here.
type Bitmask []byte

// NewBitmask builds a Bitmask from a gapped sequence string, the way the
// BLAST-report ingestion path does: '-' is a gap column, anything else is
// aligned.
func NewBitmask(gapped string) Bitmask {
	m := make(Bitmask, len(gapped))
	for i := 0; i < len(gapped); i++ {
		if gapped[i] != '-' {
			m[i] = 1
		}
	}
	return m
}

// Popcount returns the number of aligned (1) columns in m.
func (m Bitmask) Popcount() int {
	n := 0
	for _, b := range m {
		if b != 0 {
			n++
		}
	}
	return n
}

// Reverse returns a new Bitmask with column order reversed.  Used whenever a
// block-vertex is created with orientation opposite to the alignment's
// natural direction: position 0 of a block-vertex's masks must always
// correspond to its own Lo end in its own orientation.
func (m Bitmask) Reverse() Bitmask {
	out := make(Bitmask, len(m))
	for i, b := range m {
		out[len(m)-1-i] = b
	}
	return out
}

// ChopIndex returns the smallest prefix length j of m such that
// Popcount(m[:j]) == k, i.e. the position immediately after the k-th
// aligned column.  k == 0 is treated as k == 1.  ChopIndex is how a
// coordinate offset on one sequence is translated into a column offset on
// the alignment, so the paired mask can be sliced at the matching column.
func (m Bitmask) ChopIndex(k int) (int, error) {
	if k <= 0 {
		k = 1
	}
	seen := 0
	for i, b := range m {
		if b != 0 {
			seen++
			if seen == k {
				return i + 1, nil
			}
		}
	}
	return 0, errors.Wrapf(errIndexLookup, "chop_index: k=%d exceeds popcount=%d of mask len %d", k, seen, len(m))
}

// MustChopIndex is ChopIndex, panicking on failure.  It is for callers that
// have already established (from an invariant, not from untrusted data)
// that k cannot exceed the popcount.
func (m Bitmask) MustChopIndex(k int) int {
	j, err := m.ChopIndex(k)
	if err != nil {
		panic(err)
	}
	return j
}
