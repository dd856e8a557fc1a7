package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/scttfrdmn/galign-go/pkg/align"
	"github.com/scttfrdmn/galign-go/pkg/batch"
	"github.com/scttfrdmn/galign-go/pkg/genome"
	"github.com/scttfrdmn/galign-go/pkg/hts"
	"github.com/scttfrdmn/galign-go/pkg/storage"
)

var (
	alignOutput      string
	alignFormat      string
	alignAllVsAll    bool
	alignRegion      string
	alignSeq1        string
	alignSeq2        string
	alignInputFormat string
	alignExtended    bool
	alignWrap        int
)

var alignCmd = &cobra.Command{
	Use:   "align [a.fasta] [b.fasta]",
	Short: "Align sequences pairwise",
	Long: `Align sequences with Needleman-Wunsch (global) or Smith-Waterman (local).

Pairing:
  one file            the first two records, or every pair with --all-vs-all
  two files           record i of a with record i of b; a single record in a
                      is aligned against every record in b; --all-vs-all
                      aligns every record of a with every record of b
  --seq1/--seq2       two literal sequences, no files needed

The first sequence of each pair is the reference. --region restricts the
reference file to one indexed interval (name:start-end, 1-based).

Output formats:
  text  alignment blocks with match bars (default)
  json  results with both input records
  sam   SAM records with CIGAR and AS:i score tags
  bam   the same as BAM

Examples:
  galign align --seq1 GATTACA --seq2 GCATGCU
  galign align ref.fa reads.fq --algorithm local --format sam -o hits.sam
  galign align genes.fa --all-vs-all --format json -o pairs.json.zst
  galign align chr1.fa.gz reads.fa --region chr1:10,000-12,000 --algorithm sw`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate(); err != nil {
			return err
		}
		alg, err := align.ParseAlgorithm(cfg.Algorithm)
		if err != nil {
			return err
		}

		jobs, span, err := planAlignment(ctx, args)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return fmt.Errorf("no sequence pairs to align")
		}

		opts := batch.Options{
			Workers:   cfg.Workers,
			Algorithm: alg,
			Scoring:   cfg.Scoring,
			Guard:     cfg.CheckPair,
		}
		if cfg.Progress && !cfg.Quiet && len(jobs) > 1 {
			opts.Progress = os.Stderr
		}
		pool := batch.NewPool(opts)

		outputs, err := pool.Run(ctx, jobs)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		switch alignFormat {
		case "text":
			writeText(&buf, outputs, alignWrap)
		case "json":
			data, err := json.MarshalIndent(outputs, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal results: %w", err)
			}
			buf.Write(data)
			buf.WriteByte('\n')
		case "sam":
			if err := hts.WriteSAM(&buf, toPairs(outputs, span), hts.Options{ExtendedCIGAR: alignExtended}); err != nil {
				return err
			}
		case "bam":
			if alignOutput == storage.Stdio {
				return fmt.Errorf("bam output requires --output")
			}
			if err := hts.WriteBAM(&buf, toPairs(outputs, span), hts.Options{ExtendedCIGAR: alignExtended}); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown output format %q (use text, json, sam or bam)", alignFormat)
		}

		if err := storage.WriteOutput(ctx, alignOutput, buf.Bytes()); err != nil {
			return err
		}
		status(alignOutput, "Aligned %s pairs with %s (%d workers) -> %s\n",
			humanize.Comma(int64(len(outputs))), alg, pool.Workers(), alignOutput)
		return nil
	},
}

func init() {
	flags := alignCmd.Flags()
	flags.StringP("algorithm", "a", "", "Algorithm: needleman-wunsch|global|nw, smith-waterman|local|sw")
	flags.Int("match", 0, "Match score (default from config, +2)")
	flags.Int("mismatch", 0, "Mismatch score (default from config, -1)")
	flags.Int("gap", 0, "Gap score (default from config, -1)")
	flags.StringVarP(&alignOutput, "output", "o", storage.Stdio, "Output location (path, s3:// URI or - for stdout)")
	flags.StringVarP(&alignFormat, "format", "f", "text", "Output format: text, json, sam, bam")
	flags.BoolVar(&alignAllVsAll, "all-vs-all", false, "Align every pair instead of pairing by index")
	flags.StringVar(&alignRegion, "region", "", "Restrict the reference to name:start-end of an indexed FASTA")
	flags.StringVar(&alignSeq1, "seq1", "", "Literal first sequence")
	flags.StringVar(&alignSeq2, "seq2", "", "Literal second sequence")
	flags.StringVar(&alignInputFormat, "input-format", "", "Input format when reading stdin: fasta, fastq")
	flags.BoolVar(&alignExtended, "extended-cigar", false, "Write =/X instead of M in SAM/BAM CIGARs")
	flags.IntVar(&alignWrap, "wrap", 60, "Columns per text alignment block (0 = no wrapping)")

	v.BindPFlag("algorithm", flags.Lookup("algorithm"))
	v.BindPFlag("scoring.match", flags.Lookup("match"))
	v.BindPFlag("scoring.mismatch", flags.Lookup("mismatch"))
	v.BindPFlag("scoring.gap", flags.Lookup("gap"))
}

// referenceSpan places a --region reference inside its full sequence.
// The zero value means the reference is a whole sequence.
type referenceSpan struct {
	offset int
	length int
}

// planAlignment turns the arguments into alignment jobs
func planAlignment(ctx context.Context, args []string) ([]batch.Job, referenceSpan, error) {
	if alignSeq1 != "" || alignSeq2 != "" {
		if len(args) > 0 {
			return nil, referenceSpan{}, fmt.Errorf("--seq1/--seq2 cannot be combined with input files")
		}
		a := genome.NewSequence("seq1", "", alignSeq1)
		b := genome.NewSequence("seq2", "", alignSeq2)
		return []batch.Job{{Reference: a, Query: b}}, referenceSpan{}, nil
	}

	switch len(args) {
	case 0:
		return nil, referenceSpan{}, fmt.Errorf("provide one or two input files, or --seq1 and --seq2")

	case 1:
		seqs, span, err := loadReference(ctx, args[0])
		if err != nil {
			return nil, span, err
		}
		if alignAllVsAll {
			return batch.PlanAllVsAll(seqs), span, nil
		}
		if len(seqs) < 2 {
			return nil, span, fmt.Errorf("%s holds %d sequence(s); need two, or pass a second file", args[0], len(seqs))
		}
		return []batch.Job{{Reference: seqs[0], Query: seqs[1]}}, span, nil
	}

	refs, span, err := loadReference(ctx, args[0])
	if err != nil {
		return nil, span, err
	}
	queries, err := loadSequences(ctx, args[1], alignInputFormat)
	if err != nil {
		return nil, span, err
	}
	if alignAllVsAll {
		return batch.PlanCross(refs, queries), span, nil
	}
	return batch.PlanPairwise(refs, queries), span, nil
}

// loadReference loads the reference file, or only the --region interval
// of it through a faidx index built on the fly
func loadReference(ctx context.Context, path string) ([]genome.Sequence, referenceSpan, error) {
	if alignRegion == "" {
		seqs, err := loadSequences(ctx, path, alignInputFormat)
		return seqs, referenceSpan{}, err
	}

	region, err := hts.ParseRegion(alignRegion)
	if err != nil {
		return nil, referenceSpan{}, err
	}
	data, err := storage.ReadInput(ctx, path)
	if err != nil {
		return nil, referenceSpan{}, err
	}
	idx, err := hts.BuildIndex(data)
	if err != nil {
		return nil, referenceSpan{}, err
	}
	seq, err := hts.FetchRegion(data, idx, region)
	if err != nil {
		return nil, referenceSpan{}, err
	}

	ref := genome.NewSequence(region.Name, region.String(), seq)
	span := referenceSpan{offset: region.Start, length: idx[region.Name].Length}
	return []genome.Sequence{ref}, span, nil
}

func toPairs(outputs []batch.Output, span referenceSpan) []hts.Pair {
	pairs := make([]hts.Pair, len(outputs))
	for i, o := range outputs {
		pairs[i] = hts.Pair{
			Reference: o.Reference,
			Query:     o.Query,
			Result:    o.Result,
			Offset:    span.offset,
			RefLength: span.length,
		}
	}
	return pairs
}

// writeText renders each result as a header followed by aligned blocks of
// at most width columns
func writeText(w io.Writer, outputs []batch.Output, width int) {
	for i, o := range outputs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		r := o.Result
		fmt.Fprintf(w, "# %s vs %s\n", o.Reference.ID, o.Query.ID)
		fmt.Fprintf(w, "# %s\n", r.Summary())
		fmt.Fprintf(w, "# Region: %d-%d / %d-%d  CIGAR: %s\n", r.Start1+1, r.End1, r.Start2+1, r.End2, r.CIGAR())

		if r.Length() == 0 {
			continue
		}
		marks := r.MatchLine()
		step := width
		if step <= 0 {
			step = r.Length()
		}
		for start := 0; start < r.Length(); start += step {
			end := start + step
			if end > r.Length() {
				end = r.Length()
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%s\n%s\n%s\n", r.Aligned1[start:end], strings.TrimRight(marks[start:end], " "), r.Aligned2[start:end])
		}
	}
}
