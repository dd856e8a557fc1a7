// Package genome holds the record types shared by the format parsers,
// the mutation analysis and the command line tools.
package genome

import (
	"fmt"
	"strings"
)

// SequenceType classifies a sequence by its alphabet
type SequenceType string

const (
	DNA     SequenceType = "DNA"
	RNA     SequenceType = "RNA"
	Protein SequenceType = "PROTEIN"
	Unknown SequenceType = "UNKNOWN"
)

// Sequence represents a parsed biological sequence
type Sequence struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Sequence    string       `json:"sequence"`
	Length      int          `json:"length"`
	Type        SequenceType `json:"type"`
	Quality     string       `json:"quality,omitempty"` // FASTQ only
}

// NewSequence builds a Sequence with an upper-cased body, its length and
// its detected type
func NewSequence(id, description, seq string) Sequence {
	seq = strings.ToUpper(seq)
	return Sequence{
		ID:          id,
		Description: description,
		Sequence:    seq,
		Length:      len(seq),
		Type:        DetectType(seq),
	}
}

// NewRead builds a FASTQ-sourced Sequence. Reads are always typed DNA and
// the quality string is stored verbatim.
func NewRead(id, description, seq, quality string) (Sequence, error) {
	seq = strings.ToUpper(seq)
	if len(quality) != len(seq) {
		return Sequence{}, fmt.Errorf("quality length %d does not match sequence length %d", len(quality), len(seq))
	}
	return Sequence{
		ID:          id,
		Description: description,
		Sequence:    seq,
		Length:      len(seq),
		Type:        DNA,
		Quality:     quality,
	}, nil
}

// Header returns the header line content without its leading marker
func (s Sequence) Header() string {
	if s.Description == "" {
		return s.ID
	}
	return s.ID + " " + s.Description
}

// VariantKind is the SNP/INDEL classification of a variant
type VariantKind string

const (
	SNP   VariantKind = "SNP"
	INDEL VariantKind = "INDEL"
)

// Variant represents a single VCF data line
type Variant struct {
	Chrom  string                 `json:"chrom"`
	Pos    int                    `json:"pos"` // 1-based
	ID     string                 `json:"id"`
	Ref    string                 `json:"ref"`
	Alt    string                 `json:"alt"`
	Qual   float64                `json:"qual"`
	Filter string                 `json:"filter"`
	Info   map[string]interface{} `json:"info"` // string values, or true for flags
}

// Kind reports SNP when both alleles are a single symbol, INDEL otherwise
func (v Variant) Kind() VariantKind {
	if len(v.Ref) == 1 && len(v.Alt) == 1 {
		return SNP
	}
	return INDEL
}

// SyntheticID returns the identifier used when the source ID is missing
func SyntheticID(chrom string, pos int) string {
	return fmt.Sprintf("%s_%d", chrom, pos)
}
