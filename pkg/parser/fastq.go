package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/scttfrdmn/galign-go/pkg/genome"
)

// FASTQResult holds the reads and diagnostics of a FASTQ parse
type FASTQResult struct {
	Sequences []genome.Sequence `json:"sequences"`
	Warnings  []Warning         `json:"warnings,omitempty"`
}

// ParseFASTQ parses FASTQ text in groups of four non-empty lines. A group
// whose header lacks '@', whose separator lacks '+', or whose quality
// length differs from the sequence is skipped with a warning. A trailing
// group of fewer than four lines is dropped silently.
func ParseFASTQ(r io.Reader) (*FASTQResult, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	result := &FASTQResult{Sequences: []genome.Sequence{}}

	for i := 0; i+3 < len(lines); i += 4 {
		header, seq, sep, qual := lines[i], lines[i+1], lines[i+2], lines[i+3]
		record := i/4 + 1

		if !strings.HasPrefix(header.text, "@") || !strings.HasPrefix(sep.text, "+") {
			result.Warnings = append(result.Warnings, Warning{
				Line:    header.number,
				Record:  record,
				Message: "invalid FASTQ record: expected '@' header and '+' separator",
			})
			continue
		}

		id, desc := splitHeader(header.text[1:])
		read, err := genome.NewRead(id, desc, seq.text, qual.text)
		if err != nil {
			result.Warnings = append(result.Warnings, Warning{
				Line:    header.number,
				Record:  record,
				Message: err.Error(),
			})
			continue
		}
		result.Sequences = append(result.Sequences, read)
	}

	return result, nil
}

// ExportFASTQ writes sequences as FASTQ. Sequences without a quality
// string get 'I' for every base.
func ExportFASTQ(w io.Writer, seqs []genome.Sequence) error {
	bw := bufio.NewWriter(w)
	for _, s := range seqs {
		quality := s.Quality
		if quality == "" {
			quality = strings.Repeat("I", len(s.Sequence))
		}
		if _, err := fmt.Fprintf(bw, "@%s\n%s\n+\n%s\n", s.Header(), s.Sequence, quality); err != nil {
			return err
		}
	}
	return bw.Flush()
}
