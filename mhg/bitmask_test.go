package mhg

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestNewBitmaskPopcount(t *testing.T) {
	m := NewBitmask("AC--GT")
	expect.EQ(t, m.Popcount(), 4)
	expect.EQ(t, []byte(m), []byte{1, 1, 0, 0, 1, 1})
}

func TestBitmaskReverse(t *testing.T) {
	m := NewBitmask("A-CG")
	r := m.Reverse()
	expect.EQ(t, []byte(r), []byte{1, 1, 0, 1})
}

func TestChopIndex(t *testing.T) {
	m := NewBitmask("A-CG-T") // popcounts: A=1 C=2 G=3 T=4
	for k, want := range map[int]int{1: 1, 2: 3, 3: 4, 4: 6} {
		j, err := m.ChopIndex(k)
		expect.NoError(t, err)
		expect.EQ(t, j, want)
	}
}

func TestChopIndexOutOfRange(t *testing.T) {
	m := NewBitmask("A-C")
	_, err := m.ChopIndex(5)
	expect.NotNil(t, err)
	kind, ok := KindOf(err)
	expect.True(t, ok)
	expect.EQ(t, kind, IndexLookup)
}

func TestChopIndexZeroTreatedAsOne(t *testing.T) {
	m := NewBitmask("A-C")
	j, err := m.ChopIndex(0)
	expect.NoError(t, err)
	expect.EQ(t, j, 1)
}

func TestPopcount0(t *testing.T) {
	m := NewBitmask("A-CG-T")
	expect.EQ(t, m.Popcount0(0), 0)
	expect.EQ(t, m.Popcount0(3), 2)
	expect.EQ(t, m.Popcount0(len(m)), m.Popcount())
}
