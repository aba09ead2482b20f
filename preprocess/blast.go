// Package preprocess turns a directory of pairwise BLAST alignment reports
// into the mhg.AlignmentGraph the partitioner consumes: it parses each
// report, discards alignments that look like random matches rather than
// true homology, merges the raw per-sequence coordinates into maximal node
// intervals, and reprojects every surviving alignment's endpoints onto
// those intervals.
package preprocess

import (
	"context"
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
)

// HSP is one high-scoring pair out of a BLAST report: one gapped local
// alignment between a query and a subject sequence, with its own
// coordinates and score. Field names and semantics follow NCBI's BLAST XML
// output (the only report format this package reads).
type HSP struct {
	Query, Subject string
	QStart, QEnd   int
	SStart, SEnd   int
	BitScore       float64
	QSeq, SSeq     string
}

// blastOutputXML mirrors the subset of NCBI's BLAST XML schema (BlastOutput
// -> Iteration -> Hit -> Hsp) this package needs. Everything else in the
// schema (program name, database, statistics) is unused and left
// unmapped; encoding/xml ignores elements with no matching struct field.
type blastOutputXML struct {
	XMLName    xml.Name       `xml:"BlastOutput"`
	Iterations []iterationXML `xml:"BlastOutput_iterations>Iteration"`
}

type iterationXML struct {
	QueryDef string   `xml:"Iteration_query-def"`
	Hits     []hitXML `xml:"Iteration_hits>Hit"`
}

type hitXML struct {
	Def  string   `xml:"Hit_def"`
	Hsps []hspXML `xml:"Hit_hsps>Hsp"`
}

type hspXML struct {
	QueryFrom int     `xml:"Hsp_query-from"`
	QueryTo   int     `xml:"Hsp_query-to"`
	HitFrom   int     `xml:"Hsp_hit-from"`
	HitTo     int     `xml:"Hsp_hit-to"`
	BitScore  float64 `xml:"Hsp_bit-score"`
	QSeq      string  `xml:"Hsp_qseq"`
	HSeq      string  `xml:"Hsp_hseq"`
}

// firstToken returns s up to (not including) its first space, the way
// accession strings in BLAST definition lines carry a description after
// the accession proper.
func firstToken(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// ParseBlastXML reads one NCBI BLAST XML report and returns every HSP it
// contains. There is no third-party BLAST XML reader in reach of this
// module's dependency stack, so this is stdlib encoding/xml against the
// schema fragment above (see DESIGN.md).
func ParseBlastXML(r io.Reader) ([]HSP, error) {
	var doc blastOutputXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "preprocess: decode blast xml")
	}
	var hsps []HSP
	for _, it := range doc.Iterations {
		query := firstToken(it.QueryDef)
		for _, hit := range it.Hits {
			subject := firstToken(hit.Def)
			for _, h := range hit.Hsps {
				hsps = append(hsps, HSP{
					Query:    query,
					Subject:  subject,
					QStart:   h.QueryFrom,
					QEnd:     h.QueryTo,
					SStart:   h.HitFrom,
					SEnd:     h.HitTo,
					BitScore: h.BitScore,
					QSeq:     h.QSeq,
					SSeq:     h.HSeq,
				})
			}
		}
	}
	return hsps, nil
}

// ParseBlastXMLFile opens path, by way of github.com/grailbio/base/file so
// the path may be a local path or anything else the file package backs
// (matching how fusion.GeneDB.ReadTranscriptome opens its FASTA input),
// and parses it with ParseBlastXML.
func ParseBlastXMLFile(ctx context.Context, path string) ([]HSP, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "preprocess: open %s", path)
	}
	hsps, parseErr := ParseBlastXML(in.Reader(ctx))
	if closeErr := in.Close(ctx); closeErr != nil && parseErr == nil {
		parseErr = closeErr
	}
	if parseErr != nil {
		return nil, errors.Wrapf(parseErr, "preprocess: parse %s", path)
	}
	return hsps, nil
}

// ReadBlastXMLDir parses every *.xml file directly under dir and
// concatenates their HSPs, in filename order, so a run over the same
// directory is reproducible.
func ReadBlastXMLDir(dir string) ([]HSP, error) {
	ctx := vcontext.Background()
	lister := file.List(ctx, dir)
	var names []string
	for lister.Scan() {
		if name := lister.Path(); strings.HasSuffix(name, ".xml") {
			names = append(names, name)
		}
	}
	if err := lister.Err(); err != nil {
		return nil, errors.Wrapf(err, "preprocess: list %s", dir)
	}
	sort.Strings(names)

	var all []HSP
	for _, name := range names {
		hsps, err := ParseBlastXMLFile(ctx, name)
		if err != nil {
			return nil, err
		}
		all = append(all, hsps...)
	}
	return all, nil
}

// bitscoreThreshold is the pre-partition homology cut: scoreThreshold =
// 1.6446838*(qEnd-qStart) + 3, and an alignment survives only if bitScore
// >= tau*scoreThreshold. The constant is an empirical fit, not derived; it
// is kept exactly rather than rounded.
const bitscoreConstant = 1.6446838

func bitscoreThreshold(qStart, qEnd int) float64 {
	span := qEnd - qStart
	if span < 0 {
		span = -span
	}
	return bitscoreConstant*float64(span) + 3
}

// FilterHomologous drops HSPs that fail the bitscore cut or that align a
// sequence to itself (self-hits are reporting artifacts, never homology
// edges the partitioner should see).
func FilterHomologous(hsps []HSP, tau float64) []HSP {
	out := hsps[:0:0]
	for _, h := range hsps {
		if h.Subject == h.Query {
			continue
		}
		if h.BitScore < tau*bitscoreThreshold(h.QStart, h.QEnd) {
			continue
		}
		out = append(out, h)
	}
	return out
}
