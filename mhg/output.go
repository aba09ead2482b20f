package mhg

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// OutputModule is a module's serialized form: an ordered tuple of
// block-vertices, one line per module in the persisted output. Singleton
// modules never appear here; Compact filters them.
type OutputModule struct {
	Vertices []BlockVertex
}

func (m OutputModule) String() string {
	s := "("
	for i, v := range m.Vertices {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("(%d,(%d,%d),%s)", v.Seq, v.Interval.Lo, v.Interval.Hi, v.Orientation)
	}
	return s + ")"
}

// signature is a structural fingerprint used to deduplicate modules that
// describe the same set of homologous blocks. Two modules are structurally
// identical when they contain the same (SeqId, Interval) vertex set,
// independent of which module-id produced them or which global orientation
// they happen to carry (modules are equivalent under a global sign flip).
func signature(m *Module) string {
	type key struct {
		seq SeqId
		lo  PosType
		hi  PosType
	}
	keys := make([]key, 0, m.Len())
	for _, v := range m.Vertices() {
		keys = append(keys, key{seq: v.Seq, lo: v.Interval.Lo, hi: v.Interval.Hi})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].seq != keys[j].seq {
			return keys[i].seq < keys[j].seq
		}
		if keys[i].lo != keys[j].lo {
			return keys[i].lo < keys[j].lo
		}
		return keys[i].hi < keys[j].hi
	})
	s := ""
	for _, k := range keys {
		s += fmt.Sprintf("%d:%d-%d;", k.seq, k.lo, k.hi)
	}
	return s
}

// Compact deduplicates structurally identical modules, drops modules with
// a single block-vertex, and emits each surviving module's block-vertex
// list sorted by sequence id, then by interval start.
func Compact(modules []*Module) []OutputModule {
	seen := map[string]bool{}
	var out []OutputModule
	for _, m := range modules {
		if m.Len() < 2 {
			continue
		}
		sig := signature(m)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		vs := m.Vertices()
		sort.Slice(vs, func(i, j int) bool {
			if vs[i].Seq != vs[j].Seq {
				return vs[i].Seq < vs[j].Seq
			}
			return vs[i].Interval.Lo < vs[j].Interval.Lo
		})
		out = append(out, OutputModule{Vertices: vs})
	}
	return out
}

// WriteText writes modules in a plain-text, one-module-per-line format: no
// binary format, no compression, one parenthesised tuple of block-vertex
// tuples per line.
func WriteText(w io.Writer, modules []OutputModule) error {
	bw := bufio.NewWriter(w)
	for _, m := range modules {
		if _, err := fmt.Fprintln(bw, m.String()); err != nil {
			return errors.Wrap(err, "mhg: write module")
		}
	}
	return errors.Wrap(bw.Flush(), "mhg: flush module output")
}
