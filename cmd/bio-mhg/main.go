// bio-mhg partitions a directory of pairwise BLAST alignment reports into
// homology modules.
//
// Example:
//
//    bio-mhg -query ./blast-xml -output modules.txt -threshold 0.4
package main

import (
	"flag"

	"github.com/biogo/hts/sam"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	bi "github.com/grailbio/bio-mhg/interval"
	"github.com/grailbio/bio-mhg/mhg"
	"github.com/grailbio/bio-mhg/preprocess"
)

func main() {
	queryDir := flag.String("query", "", "Input directory of BLAST XML reports to partition")
	outputPath := flag.String("output", "module.txt", "File to write the partitioned modules to, one per line")
	threshold := flag.Float64("threshold", mhg.DefaultOpts.BitscoreTau, "Bitscore threshold for determining true homology")
	minBlockLen := flag.Int("min-block-len", mhg.DefaultOpts.MinBlockLen, "Minimum length of a block created during partitioning")
	trimBlockLen := flag.Int("trim-block-len", mhg.DefaultOpts.TrimBlockLen, "Blocks shorter than this are trimmed between edges")
	trimInterval := flag.Int("trim-interval", mhg.DefaultOpts.TrimInterval, "Number of edges processed between trim passes")
	longOverlapBP := flag.Int("long-overlap-bp", mhg.DefaultOpts.LongOverlapBP, "Overlap, in bases, beyond which a module<->module alignment is dropped rather than reconciled")
	samHeaderPath := flag.String("sam-header", "", "Optional SAM file whose header fixes sequence ids and ordering, for agreement with a companion BAM/SAM run")

	cleanup := grail.Init()
	defer cleanup()

	if *queryDir == "" {
		log.Fatal("-query is required")
	}

	ctx := vcontext.Background()

	var header *sam.Header
	if *samHeaderPath != "" {
		in, err := file.Open(ctx, *samHeaderPath)
		if err != nil {
			log.Fatalf("bio-mhg: open %s: %v", *samHeaderPath, err)
		}
		samReader, err := sam.NewReader(in.Reader(ctx))
		if err != nil {
			log.Fatalf("bio-mhg: parse SAM header %s: %v", *samHeaderPath, err)
		}
		header = samReader.Header()
		if err := in.Close(ctx); err != nil {
			log.Fatalf("bio-mhg: close %s: %v", *samHeaderPath, err)
		}
		log.Printf("bio-mhg: seeded sequence registry from %s (%d references)", *samHeaderPath, len(header.Refs()))
	}

	hsps, err := preprocess.ReadBlastXMLDir(*queryDir)
	if err != nil {
		log.Fatalf("bio-mhg: %v", err)
	}
	log.Printf("bio-mhg: read %d HSPs from %s", len(hsps), *queryDir)

	hsps = preprocess.FilterHomologous(hsps, *threshold)
	log.Printf("bio-mhg: %d HSPs survive the bitscore cut", len(hsps))

	graph := preprocess.BuildAlignmentGraph(hsps, bi.NewSeqRegistry(header))
	log.Printf("bio-mhg: %d nodes, %d alignment edges", len(graph.Nodes), len(graph.Edges))

	opts := mhg.DefaultOpts
	opts.BitscoreTau = *threshold
	opts.MinBlockLen = *minBlockLen
	opts.TrimBlockLen = *trimBlockLen
	opts.TrimInterval = *trimInterval
	opts.LongOverlapBP = *longOverlapBP

	modules := mhg.NewPartitioner(opts).Partition(graph)
	log.Printf("bio-mhg: %d modules after partitioning", len(modules))

	out, err := file.Create(ctx, *outputPath)
	if err != nil {
		log.Fatalf("bio-mhg: create %s: %v", *outputPath, err)
	}
	if err := mhg.WriteText(out.Writer(ctx), modules); err != nil {
		log.Fatalf("bio-mhg: %v", err)
	}
	if err := out.Close(ctx); err != nil {
		log.Fatalf("bio-mhg: close %s: %v", *outputPath, err)
	}
	log.Printf("bio-mhg: wrote %s", *outputPath)
}
