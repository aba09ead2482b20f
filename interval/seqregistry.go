package interval

import (
	"github.com/biogo/hts/sam"
)

// SeqRegistry assigns compact, stable integer ids to sequence names.  It
// mirrors the SAMHeader-based lookup NewBEDOpts already offers BED readers:
// when a sam.Header is available (because the run also touched BAM/SAM
// data), reference order is reused as-is so ids agree with the header;
// otherwise names are registered on first sight, in encounter order.
type SeqRegistry struct {
	header  *sam.Header
	byName  map[string]int
	byIndex []string
}

// NewSeqRegistry creates a registry.  header may be nil.
func NewSeqRegistry(header *sam.Header) *SeqRegistry {
	r := &SeqRegistry{
		header: header,
		byName: map[string]int{},
	}
	if header != nil {
		for i, ref := range header.Refs() {
			r.byName[ref.Name()] = i
			r.byIndex = append(r.byIndex, ref.Name())
		}
	}
	return r
}

// ID returns the id for name, registering it if this is the first time it's
// seen.  A name missing from the sam.Header, if one was given, is
// registered too, after the header's references.
func (r *SeqRegistry) ID(name string) int {
	if id, ok := r.byName[name]; ok {
		return id
	}
	id := len(r.byIndex)
	r.byName[name] = id
	r.byIndex = append(r.byIndex, name)
	return id
}

// Name returns the sequence name registered for id, or "" if none.
func (r *SeqRegistry) Name(id int) string {
	if id < 0 || id >= len(r.byIndex) {
		return ""
	}
	return r.byIndex[id]
}

// Len returns the number of distinct sequence names registered so far.
func (r *SeqRegistry) Len() int {
	return len(r.byIndex)
}
