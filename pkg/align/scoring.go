// Package align implements pairwise global (Needleman-Wunsch) and local
// (Smith-Waterman) alignment under a linear gap penalty.
//
// Sequences are compared byte by byte, so symbols are single bytes; a
// multi-byte UTF-8 rune occupies one column per byte.
//
// Every call allocates its own matrix and shares nothing but the Scoring
// value passed in, so alignments may run concurrently without coordination.
package align

import "fmt"

// Scoring holds the linear scoring scheme used to fill the matrix
type Scoring struct {
	Match    int `json:"match" mapstructure:"match"`
	Mismatch int `json:"mismatch" mapstructure:"mismatch"`
	Gap      int `json:"gap" mapstructure:"gap"`
}

// DefaultScoring returns match +2, mismatch -1, gap -1
func DefaultScoring() Scoring {
	return Scoring{
		Match:    2,
		Mismatch: -1,
		Gap:      -1,
	}
}

// Validate checks the signs of the scoring parameters
func (s Scoring) Validate() error {
	if s.Match <= 0 {
		return fmt.Errorf("match score must be positive, got %d", s.Match)
	}
	if s.Mismatch > 0 {
		return fmt.Errorf("mismatch score must be <= 0, got %d", s.Mismatch)
	}
	if s.Gap > 0 {
		return fmt.Errorf("gap score must be <= 0, got %d", s.Gap)
	}
	return nil
}

// substitution scores one aligned column of two symbols
func (s Scoring) substitution(a, b byte) int {
	if a == b {
		return s.Match
	}
	return s.Mismatch
}

// Cells returns the number of matrix cells needed to align sequences of
// length m and n. Callers use it to bound runtime before aligning.
func Cells(m, n int) int64 {
	return int64(m+1) * int64(n+1)
}
