package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeqRegistryFirstSighted(t *testing.T) {
	r := NewSeqRegistry(nil)
	assert.Equal(t, 0, r.ID("chr1"))
	assert.Equal(t, 1, r.ID("chr2"))
	assert.Equal(t, 0, r.ID("chr1")) // re-sighting returns the same id
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "chr2", r.Name(1))
	assert.Equal(t, "", r.Name(99))
}
