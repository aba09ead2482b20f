package preprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleBlastXML = `<?xml version="1.0"?>
<BlastOutput>
  <BlastOutput_iterations>
    <Iteration>
      <Iteration_query-def>seqA description</Iteration_query-def>
      <Iteration_hits>
        <Hit>
          <Hit_def>seqB description</Hit_def>
          <Hit_hsps>
            <Hsp>
              <Hsp_query-from>1</Hsp_query-from>
              <Hsp_query-to>30</Hsp_query-to>
              <Hsp_hit-from>1</Hsp_hit-from>
              <Hsp_hit-to>30</Hsp_hit-to>
              <Hsp_bit-score>200</Hsp_bit-score>
              <Hsp_qseq>ACGTACGTACGTACGTACGTACGTACGTAC</Hsp_qseq>
              <Hsp_hseq>ACGTACGTACGTACGTACGTACGTACGTAC</Hsp_hseq>
            </Hsp>
          </Hit_hsps>
        </Hit>
      </Iteration_hits>
    </Iteration>
  </BlastOutput_iterations>
</BlastOutput>`

func TestParseBlastXML(t *testing.T) {
	hsps, err := ParseBlastXML(strings.NewReader(sampleBlastXML))
	assert.NoError(t, err)
	assert.Len(t, hsps, 1)
	h := hsps[0]
	assert.Equal(t, "seqA", h.Query)
	assert.Equal(t, "seqB", h.Subject)
	assert.Equal(t, 1, h.QStart)
	assert.Equal(t, 30, h.QEnd)
	assert.Equal(t, 200.0, h.BitScore)
}

func TestFilterHomologousDropsSelfHitsAndLowScore(t *testing.T) {
	hsps := []HSP{
		{Query: "a", Subject: "a", QStart: 1, QEnd: 30, BitScore: 1000}, // self-hit
		{Query: "a", Subject: "b", QStart: 1, QEnd: 30, BitScore: 1},    // below threshold
		{Query: "a", Subject: "b", QStart: 1, QEnd: 30, BitScore: 200},  // survives
	}
	out := FilterHomologous(hsps, 0.4)
	assert.Len(t, out, 1)
	assert.Equal(t, 200.0, out[0].BitScore)
}

func TestBitscoreThresholdHandlesReversedCoords(t *testing.T) {
	assert.Equal(t, bitscoreThreshold(1, 30), bitscoreThreshold(30, 1))
}
