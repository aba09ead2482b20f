package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockIndexOverlapping(t *testing.T) {
	bi := NewBlockIndex()
	bi.Insert(1, Interval{Lo: 10, Hi: 20}, "a")
	bi.Insert(1, Interval{Lo: 30, Hi: 40}, "b")
	bi.Insert(2, Interval{Lo: 10, Hi: 20}, "c")

	hits := bi.Overlapping(1, Interval{Lo: 15, Hi: 35})
	assert.Len(t, hits, 2)

	assert.Empty(t, bi.Overlapping(1, Interval{Lo: 20, Hi: 30}))
	assert.Empty(t, bi.Overlapping(3, Interval{Lo: 0, Hi: 100}))
}

func TestBlockIndexRemove(t *testing.T) {
	bi := NewBlockIndex()
	iv := Interval{Lo: 10, Hi: 20}
	bi.Insert(1, iv, nil)
	assert.Equal(t, 1, bi.Len(1))

	bi.Remove(1, iv)
	assert.Equal(t, 0, bi.Len(1))
	assert.Empty(t, bi.Overlapping(1, iv))
}

func TestBlockIndexClone(t *testing.T) {
	bi := NewBlockIndex()
	bi.Insert(1, Interval{Lo: 10, Hi: 20}, nil)

	cp := bi.Clone()
	cp.Insert(1, Interval{Lo: 30, Hi: 40}, nil)

	assert.Equal(t, 1, bi.Len(1))
	assert.Equal(t, 2, cp.Len(1))
}

func TestIntervalOverlapsAndContains(t *testing.T) {
	a := Interval{Lo: 10, Hi: 20}
	assert.True(t, a.Overlaps(Interval{Lo: 15, Hi: 25}))
	assert.False(t, a.Overlaps(Interval{Lo: 20, Hi: 30}))
	assert.True(t, a.Contains(Interval{Lo: 12, Hi: 18}))
	assert.False(t, a.Contains(Interval{Lo: 5, Hi: 18}))
	assert.Equal(t, PosType(10), a.Len())
}
