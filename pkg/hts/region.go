package hts

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/hts/fai"
)

// Region is a 0-based half-open interval on a named sequence. End -1
// means the whole sequence.
type Region struct {
	Name  string
	Start int
	End   int
}

// ParseRegion parses "name", "name:start-end" or "name:pos" in 1-based
// inclusive coordinates
func ParseRegion(s string) (Region, error) {
	name, coords, found := strings.Cut(s, ":")
	if name == "" {
		return Region{}, fmt.Errorf("invalid region %q: missing sequence name", s)
	}
	if !found {
		return Region{Name: name, Start: 0, End: -1}, nil
	}

	from, to, ranged := strings.Cut(strings.ReplaceAll(coords, ",", ""), "-")
	start, err := strconv.Atoi(from)
	if err != nil || start < 1 {
		return Region{}, fmt.Errorf("invalid start coordinate: %s", from)
	}
	end := start
	if ranged {
		if end, err = strconv.Atoi(to); err != nil {
			return Region{}, fmt.Errorf("invalid end coordinate: %s", to)
		}
	}
	if end < start {
		return Region{}, fmt.Errorf("invalid region %q: end before start", s)
	}
	return Region{Name: name, Start: start - 1, End: end}, nil
}

func (r Region) String() string {
	if r.End < 0 {
		return r.Name
	}
	return fmt.Sprintf("%s:%d-%d", r.Name, r.Start+1, r.End)
}

// BuildIndex builds a faidx index over FASTA text. Every record must use
// a constant line width.
func BuildIndex(fasta []byte) (fai.Index, error) {
	idx, err := fai.NewIndex(bytes.NewReader(fasta))
	if err != nil {
		return nil, fmt.Errorf("failed to index FASTA: %w", err)
	}
	return idx, nil
}

// WriteIndex writes idx in the samtools .fai layout
func WriteIndex(w io.Writer, idx fai.Index) error {
	if err := fai.WriteTo(w, idx); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// ReadIndex parses a .fai file
func ReadIndex(r io.Reader) (fai.Index, error) {
	idx, err := fai.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	return idx, nil
}

// FetchRegion returns the upper-cased bases of region from indexed FASTA
// data. The end is clamped to the sequence length.
func FetchRegion(fasta []byte, idx fai.Index, region Region) (string, error) {
	rec, ok := idx[region.Name]
	if !ok {
		return "", fmt.Errorf("sequence %q not in index", region.Name)
	}

	end := region.End
	if end < 0 || end > rec.Length {
		end = rec.Length
	}
	if region.Start >= end {
		return "", fmt.Errorf("region %s is outside %s (length %d)", region, region.Name, rec.Length)
	}

	f := fai.NewFile(bytes.NewReader(fasta), idx)
	rs, err := f.SeqRange(region.Name, region.Start, end)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", region, err)
	}
	seq, err := io.ReadAll(rs)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", region, err)
	}
	return strings.ToUpper(string(seq)), nil
}
