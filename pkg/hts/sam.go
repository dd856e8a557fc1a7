// Package hts exports alignments as SAM/BAM and serves FASTA regions
// through a faidx index.
package hts

import (
	"fmt"
	"io"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"github.com/scttfrdmn/galign-go/pkg/align"
	"github.com/scttfrdmn/galign-go/pkg/genome"
)

// Pair is one aligned sequence pair. Reference plays the SAM reference and
// Query the read.
//
// When Reference holds only a slice of a longer sequence, Offset is the
// 0-based start of the slice and RefLength the full sequence length, so
// records are placed in whole-sequence coordinates.
type Pair struct {
	Reference genome.Sequence
	Query     genome.Sequence
	Result    align.Result
	Offset    int
	RefLength int
}

func (p Pair) refLength() int {
	if p.RefLength > p.Reference.Length {
		return p.RefLength
	}
	return p.Reference.Length
}

// Options configures SAM/BAM export
type Options struct {
	ExtendedCIGAR bool // emit =/X instead of M
}

// mapQ marks the mapping quality as unavailable
const mapQ = 255

// WriteSAM writes pairs as SAM text with one @SQ line per distinct
// reference
func WriteSAM(w io.Writer, pairs []Pair, opts Options) error {
	header, records, err := buildRecords(pairs, opts)
	if err != nil {
		return err
	}

	sw, err := sam.NewWriter(w, header, sam.FlagDecimal)
	if err != nil {
		return fmt.Errorf("failed to create SAM writer: %w", err)
	}
	for _, rec := range records {
		if err := sw.Write(rec); err != nil {
			return fmt.Errorf("failed to write record %s: %w", rec.Name, err)
		}
	}
	return nil
}

// WriteBAM writes pairs as BAM
func WriteBAM(w io.Writer, pairs []Pair, opts Options) error {
	header, records, err := buildRecords(pairs, opts)
	if err != nil {
		return err
	}

	bw, err := bam.NewWriter(w, header, 1)
	if err != nil {
		return fmt.Errorf("failed to create BAM writer: %w", err)
	}
	for _, rec := range records {
		if err := bw.Write(rec); err != nil {
			bw.Close()
			return fmt.Errorf("failed to write record %s: %w", rec.Name, err)
		}
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("failed to close BAM writer: %w", err)
	}
	return nil
}

func buildRecords(pairs []Pair, opts Options) (*sam.Header, []*sam.Record, error) {
	var refs []*sam.Reference
	byName := make(map[string]*sam.Reference)
	for _, p := range pairs {
		name := p.Reference.ID
		if _, ok := byName[name]; ok || p.refLength() == 0 {
			continue
		}
		ref, err := sam.NewReference(name, "", "", p.refLength(), nil, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create reference %s: %w", name, err)
		}
		byName[name] = ref
		refs = append(refs, ref)
	}

	header, err := sam.NewHeader(nil, refs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create header: %w", err)
	}
	header.Version = "1.6"
	header.SortOrder = sam.Unsorted

	records := make([]*sam.Record, 0, len(pairs))
	for i, p := range pairs {
		rec, err := newRecord(i, p, byName[p.Reference.ID], opts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to convert pair %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return header, records, nil
}

// newRecord converts one pair. The query is always written in full: the
// parts outside the aligned region, and insertions at either end, become
// soft clips, while deletions at either end shift or shorten the
// reference span.
func newRecord(i int, p Pair, ref *sam.Reference, opts Options) (*sam.Record, error) {
	name := p.Query.ID
	if name == "" {
		name = fmt.Sprintf("query%d", i+1)
	}

	seq := []byte(p.Query.Sequence)
	var qual []byte
	if p.Query.Quality != "" {
		qual = make([]byte, len(p.Query.Quality))
		for j := 0; j < len(p.Query.Quality); j++ {
			qual[j] = p.Query.Quality[j] - 33
		}
	}

	aux, err := sam.NewAux(sam.NewTag("AS"), int32(p.Result.Score))
	if err != nil {
		return nil, err
	}

	ops := p.Result.CIGAROps()
	pos := p.Offset + p.Result.Start1
	head := p.Result.Start2
	tail := len(seq) - p.Result.End2

	for len(ops) > 0 && (ops[0].Type == 'D' || ops[0].Type == 'I') {
		if ops[0].Type == 'D' {
			pos += ops[0].Length
		} else {
			head += ops[0].Length
		}
		ops = ops[1:]
	}
	for len(ops) > 0 && (ops[len(ops)-1].Type == 'D' || ops[len(ops)-1].Type == 'I') {
		if ops[len(ops)-1].Type == 'I' {
			tail += ops[len(ops)-1].Length
		}
		ops = ops[:len(ops)-1]
	}

	if len(ops) == 0 || ref == nil {
		rec, err := sam.NewRecord(name, nil, nil, -1, -1, 0, 0, nil, seq, qual, []sam.Aux{aux})
		if err != nil {
			return nil, err
		}
		rec.Flags = sam.Unmapped
		return rec, nil
	}

	var cigar []sam.CigarOp
	push := func(t sam.CigarOpType, n int) {
		if n == 0 {
			return
		}
		if last := len(cigar) - 1; last >= 0 && cigar[last].Type() == t {
			cigar[last] = sam.NewCigarOp(t, cigar[last].Len()+n)
			return
		}
		cigar = append(cigar, sam.NewCigarOp(t, n))
	}

	push(sam.CigarSoftClipped, head)
	for _, op := range ops {
		push(cigarType(op.Type, opts.ExtendedCIGAR), op.Length)
	}
	push(sam.CigarSoftClipped, tail)

	return sam.NewRecord(name, ref, nil, pos, -1, 0, mapQ, cigar, seq, qual, []sam.Aux{aux})
}

func cigarType(t byte, extended bool) sam.CigarOpType {
	switch t {
	case 'I':
		return sam.CigarInsertion
	case 'D':
		return sam.CigarDeletion
	case '=':
		if extended {
			return sam.CigarEqual
		}
	case 'X':
		if extended {
			return sam.CigarMismatch
		}
	}
	return sam.CigarMatch
}
