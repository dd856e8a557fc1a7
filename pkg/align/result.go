package align

import (
	"fmt"
	"strconv"
	"strings"
)

// Result is the outcome of one pairwise alignment
type Result struct {
	Aligned1  string    `json:"aligned1"`
	Aligned2  string    `json:"aligned2"`
	Score     int       `json:"score"`
	Identity  float64   `json:"identity"` // percent, full precision
	Gaps      int       `json:"gaps"`
	Algorithm Algorithm `json:"algorithm"`

	// Aligned region of each input, 0-based half-open
	Start1 int `json:"start1"`
	End1   int `json:"end1"`
	Start2 int `json:"start2"`
	End2   int `json:"end2"`
}

// CIGAROperation is a run of identical alignment columns
type CIGAROperation struct {
	Type   byte // = X I D
	Length int
}

func newResult(aligned1, aligned2 string, score int, alg Algorithm, start1, end1, start2, end2 int) Result {
	return Result{
		Aligned1:  aligned1,
		Aligned2:  aligned2,
		Score:     score,
		Identity:  Identity(aligned1, aligned2),
		Gaps:      CountGaps(aligned1, aligned2),
		Algorithm: alg,
		Start1:    start1,
		End1:      end1,
		Start2:    start2,
		End2:      end2,
	}
}

// Identity returns the percentage of ungapped columns whose symbols agree,
// or 0 when every column holds a gap
func Identity(aligned1, aligned2 string) float64 {
	matches, valid := 0, 0
	for i := 0; i < len(aligned1) && i < len(aligned2); i++ {
		if aligned1[i] == GapSymbol || aligned2[i] == GapSymbol {
			continue
		}
		valid++
		if aligned1[i] == aligned2[i] {
			matches++
		}
	}
	if valid == 0 {
		return 0
	}
	return float64(matches) / float64(valid) * 100
}

// CountGaps returns the number of columns where either side is a gap
func CountGaps(aligned1, aligned2 string) int {
	gaps := 0
	for i := 0; i < len(aligned1) && i < len(aligned2); i++ {
		if aligned1[i] == GapSymbol || aligned2[i] == GapSymbol {
			gaps++
		}
	}
	return gaps
}

// Length returns the number of alignment columns
func (r Result) Length() int {
	return len(r.Aligned1)
}

// IdentityString renders the identity to one decimal place
func (r Result) IdentityString() string {
	return strconv.FormatFloat(r.Identity, 'f', 1, 64)
}

// Matches counts ungapped columns with equal symbols
func (r Result) Matches() int {
	n := 0
	for _, op := range r.CIGAROps() {
		if op.Type == '=' {
			n += op.Length
		}
	}
	return n
}

// Mismatches counts ungapped columns with differing symbols
func (r Result) Mismatches() int {
	n := 0
	for _, op := range r.CIGAROps() {
		if op.Type == 'X' {
			n += op.Length
		}
	}
	return n
}

// CIGAROps run-length encodes the alignment columns, treating the first
// sequence as the reference: a gap in the first sequence is an insertion,
// a gap in the second a deletion.
func (r Result) CIGAROps() []CIGAROperation {
	var ops []CIGAROperation
	for i := 0; i < len(r.Aligned1) && i < len(r.Aligned2); i++ {
		var t byte
		switch x, y := r.Aligned1[i], r.Aligned2[i]; {
		case x == GapSymbol:
			t = 'I'
		case y == GapSymbol:
			t = 'D'
		case x == y:
			t = '='
		default:
			t = 'X'
		}
		if len(ops) > 0 && ops[len(ops)-1].Type == t {
			ops[len(ops)-1].Length++
			continue
		}
		ops = append(ops, CIGAROperation{Type: t, Length: 1})
	}
	return ops
}

// CIGAR returns the extended CIGAR string, or "*" for an empty alignment
func (r Result) CIGAR() string {
	ops := r.CIGAROps()
	if len(ops) == 0 {
		return "*"
	}
	var sb strings.Builder
	for _, op := range ops {
		sb.WriteString(strconv.Itoa(op.Length))
		sb.WriteByte(op.Type)
	}
	return sb.String()
}

// MatchLine returns a marker line for display: '|' for a match, '.' for a
// mismatch and ' ' for a gap column
func (r Result) MatchLine() string {
	line := make([]byte, len(r.Aligned1))
	for i := range line {
		x, y := r.Aligned1[i], r.Aligned2[i]
		switch {
		case x == GapSymbol || y == GapSymbol:
			line[i] = ' '
		case x == y:
			line[i] = '|'
		default:
			line[i] = '.'
		}
	}
	return string(line)
}

// Summary is a one-line description of the result
func (r Result) Summary() string {
	return fmt.Sprintf("%s: score %d, identity %s%%, gaps %d, length %d",
		r.Algorithm, r.Score, r.IdentityString(), r.Gaps, r.Length())
}
