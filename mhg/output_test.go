package mhg

import (
	"bytes"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestCompactDedupesAndDropsSingletons(t *testing.T) {
	a := newModule(0)
	a.addVertex(BlockVertex{Seq: 0, Interval: Interval{Lo: 1, Hi: 21}, Orientation: Plus})
	a.addVertex(BlockVertex{Seq: 1, Interval: Interval{Lo: 1, Hi: 21}, Orientation: Plus})

	// Structurally identical to a, but flipped orientation and a different id.
	b := newModule(1)
	b.addVertex(BlockVertex{Seq: 0, Interval: Interval{Lo: 1, Hi: 21}, Orientation: Minus})
	b.addVertex(BlockVertex{Seq: 1, Interval: Interval{Lo: 1, Hi: 21}, Orientation: Minus})

	singleton := newModule(2)
	singleton.addVertex(BlockVertex{Seq: 2, Interval: Interval{Lo: 1, Hi: 21}, Orientation: Plus})

	out := Compact([]*Module{a, b, singleton})
	expect.EQ(t, len(out), 1)
	expect.EQ(t, len(out[0].Vertices), 2)
}

func TestWriteText(t *testing.T) {
	modules := []OutputModule{
		{Vertices: []BlockVertex{
			{Seq: 0, Interval: Interval{Lo: 1, Hi: 21}, Orientation: Plus},
			{Seq: 1, Interval: Interval{Lo: 1, Hi: 21}, Orientation: Minus},
		}},
	}
	var buf bytes.Buffer
	err := WriteText(&buf, modules)
	expect.NoError(t, err)
	expect.EQ(t, buf.String(), modules[0].String()+"\n")
}
