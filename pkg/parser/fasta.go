package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/scttfrdmn/galign-go/pkg/genome"
)

// DefaultLineWidth is the FASTA body width used on export
const DefaultLineWidth = 80

// FASTAResult holds the records and diagnostics of a FASTA parse
type FASTAResult struct {
	Sequences []genome.Sequence `json:"sequences"`
	Warnings  []Warning         `json:"warnings,omitempty"`
}

// ParseFASTA parses FASTA text. A header with no body before the next
// header or EOF produces no record. Body text before the first header is
// skipped with a warning.
func ParseFASTA(r io.Reader) (*FASTAResult, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	result := &FASTAResult{Sequences: []genome.Sequence{}}

	var (
		inRecord    bool
		id, desc    string
		body        strings.Builder
		orphanLines int
		orphanStart int
	)

	flush := func() {
		if inRecord && body.Len() > 0 {
			result.Sequences = append(result.Sequences, genome.NewSequence(id, desc, body.String()))
		}
		body.Reset()
	}

	for _, l := range lines {
		if strings.HasPrefix(l.text, ">") {
			flush()
			inRecord = true
			id, desc = splitHeader(l.text[1:])
			continue
		}

		if !inRecord {
			if orphanLines == 0 {
				orphanStart = l.number
			}
			orphanLines++
			continue
		}
		body.WriteString(l.text)
	}
	flush()

	if orphanLines > 0 {
		result.Warnings = append(result.Warnings, Warning{
			Line:    orphanStart,
			Record:  0,
			Message: fmt.Sprintf("skipping %d sequence line(s) before the first header", orphanLines),
		})
	}

	return result, nil
}

// ExportFASTA writes sequences as FASTA with bodies wrapped at width
// columns (DefaultLineWidth when width <= 0)
func ExportFASTA(w io.Writer, seqs []genome.Sequence, width int) error {
	if width <= 0 {
		width = DefaultLineWidth
	}

	bw := bufio.NewWriter(w)
	for _, s := range seqs {
		if _, err := fmt.Fprintf(bw, ">%s\n", s.Header()); err != nil {
			return err
		}
		for start := 0; start < len(s.Sequence); start += width {
			end := start + width
			if end > len(s.Sequence) {
				end = len(s.Sequence)
			}
			bw.WriteString(s.Sequence[start:end])
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
