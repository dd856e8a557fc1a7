// Package parser turns FASTA, FASTQ and VCF text into genome records and
// writes them back out.
//
// Malformed records never abort a parse. They are skipped and reported as
// Warnings on the result; only a failing reader returns an error.
package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when no parser matches a file name
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format identifies one of the supported text formats
type Format string

const (
	FASTA Format = "fasta"
	FASTQ Format = "fastq"
	VCF   Format = "vcf"
)

// Warning describes a skipped record
type Warning struct {
	Line    int    `json:"line"`   // 1-based line number in the input
	Record  int    `json:"record"` // 1-based record ordinal
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d (record %d): %s", w.Line, w.Record, w.Message)
}

// compressedExtensions are stripped before the format extension is read
var compressedExtensions = []string{".gz", ".bgz", ".zst"}

// FormatFromPath maps a file name to its format by extension. A trailing
// compression extension is ignored.
func FormatFromPath(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	for _, ext := range compressedExtensions {
		name = strings.TrimSuffix(name, ext)
	}

	switch filepath.Ext(name) {
	case ".fasta", ".fa", ".fas":
		return FASTA, nil
	case ".fastq", ".fq":
		return FASTQ, nil
	case ".vcf":
		return VCF, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// ParseFormat parses a format name such as "fasta" or "fa"
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnsupportedFormat)
	}
	return FormatFromPath("x." + strings.TrimPrefix(name, "."))
}

// line is a non-blank input line with its position. text is trimmed of
// surrounding whitespace; raw only loses its line terminator.
type line struct {
	number int
	text   string
	raw    string
}

// readLines reads the whole input and keeps the non-blank lines, trimmed
func readLines(r io.Reader) ([]line, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var lines []line
	for i, raw := range strings.Split(string(data), "\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lines = append(lines, line{number: i + 1, text: text, raw: strings.TrimRight(raw, "\r")})
	}
	return lines, nil
}

// splitHeader splits a header into its first whitespace token and the
// remaining tokens joined by single spaces
func splitHeader(header string) (string, string) {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
