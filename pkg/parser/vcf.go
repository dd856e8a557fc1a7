package parser

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/scttfrdmn/galign-go/pkg/genome"
)

// VCF column layout
const (
	vcfMinFields = 8
	vcfColumns   = "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO"
	missingValue = "."
)

// VCFHeader is the header block written by ExportVCF
var VCFHeader = []string{
	"##fileformat=VCFv4.2",
	"##source=galign",
	vcfColumns,
}

// VCFResult holds the variants, header lines and diagnostics of a VCF parse
type VCFResult struct {
	Meta     []string         `json:"meta,omitempty"` // '#' lines in input order
	Variants []genome.Variant `json:"variants"`
	Warnings []Warning        `json:"warnings,omitempty"`
}

// ParseVCF parses VCF text. Lines with fewer than eight tab-separated
// fields or a non-integer POS are skipped with a warning. QUAL falls back
// to 0 when it does not parse.
func ParseVCF(r io.Reader) (*VCFResult, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	result := &VCFResult{Variants: []genome.Variant{}}
	record := 0

	for _, l := range lines {
		if strings.HasPrefix(l.text, "#") {
			result.Meta = append(result.Meta, l.text)
			continue
		}
		record++

		// Trailing tabs are significant, so split the untrimmed line
		v, err := parseVariant(l.raw)
		if err != nil {
			result.Warnings = append(result.Warnings, Warning{
				Line:    l.number,
				Record:  record,
				Message: err.Error(),
			})
			continue
		}
		result.Variants = append(result.Variants, v)
	}

	return result, nil
}

// parseVariant parses a single tab-separated data line
func parseVariant(text string) (genome.Variant, error) {
	fields := strings.Split(text, "\t")
	if len(fields) < vcfMinFields {
		return genome.Variant{}, fmt.Errorf("invalid VCF line: %d fields, need at least %d", len(fields), vcfMinFields)
	}

	pos, err := strconv.Atoi(fields[1])
	if err != nil {
		return genome.Variant{}, fmt.Errorf("invalid POS %q", fields[1])
	}

	v := genome.Variant{
		Chrom:  fields[0],
		Pos:    pos,
		ID:     fields[2],
		Ref:    fields[3],
		Alt:    fields[4],
		Filter: fields[6],
		Info:   ParseInfo(fields[7]),
	}

	if v.ID == missingValue {
		v.ID = genome.SyntheticID(v.Chrom, pos)
	}

	// Unparsable or non-finite QUAL (including '.', nan and inf) becomes 0
	if qual, err := strconv.ParseFloat(fields[5], 64); err == nil && !math.IsNaN(qual) && !math.IsInf(qual, 0) {
		v.Qual = qual
	}

	return v, nil
}

// ParseInfo parses an INFO column. Entries are split on ';' and then on
// the first '='; entries without '=' are flags set to true.
func ParseInfo(field string) map[string]interface{} {
	info := make(map[string]interface{})
	if field == "" || field == missingValue {
		return info
	}

	for _, entry := range strings.Split(field, ";") {
		if entry == "" {
			continue
		}
		key, value, found := strings.Cut(entry, "=")
		if !found {
			info[key] = true
			continue
		}
		info[key] = value
	}
	return info
}

// FormatInfo serializes an INFO map with sorted keys, writing flags as bare
// keys and "." for an empty map
func FormatInfo(info map[string]interface{}) string {
	if len(info) == 0 {
		return missingValue
	}

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch value := info[k].(type) {
		case bool:
			if value {
				parts = append(parts, k)
			}
		case string:
			parts = append(parts, k+"="+value)
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, value))
		}
	}
	if len(parts) == 0 {
		return missingValue
	}
	return strings.Join(parts, ";")
}

// ExportVCF writes variants as VCF text preceded by VCFHeader. QUAL is
// written as "." when zero and FILTER defaults to PASS.
func ExportVCF(w io.Writer, variants []genome.Variant) error {
	bw := bufio.NewWriter(w)
	for _, h := range VCFHeader {
		bw.WriteString(h)
		bw.WriteByte('\n')
	}

	for _, v := range variants {
		qual := missingValue
		if v.Qual != 0 {
			qual = strconv.FormatFloat(v.Qual, 'f', -1, 64)
		}

		filter := v.Filter
		if filter == "" {
			filter = "PASS"
		}

		id := v.ID
		if id == "" {
			id = genome.SyntheticID(v.Chrom, v.Pos)
		}

		row := []string{
			v.Chrom,
			strconv.Itoa(v.Pos),
			id,
			v.Ref,
			v.Alt,
			qual,
			filter,
			FormatInfo(v.Info),
		}
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
