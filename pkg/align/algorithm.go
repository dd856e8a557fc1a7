package align

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAlgorithm is returned for an algorithm name or value outside the enumeration
var ErrUnknownAlgorithm = errors.New("unknown alignment algorithm")

// Algorithm selects the dynamic-programming variant
type Algorithm int

const (
	// NeedlemanWunsch is global alignment over the full length of both sequences
	NeedlemanWunsch Algorithm = iota
	// SmithWaterman is local alignment of the best-scoring substring pair
	SmithWaterman
)

// aligners maps each algorithm to its implementation
var aligners = [...]func(a, b string, sc Scoring) Result{
	NeedlemanWunsch: Global,
	SmithWaterman:   Local,
}

func (a Algorithm) String() string {
	switch a {
	case NeedlemanWunsch:
		return "needleman-wunsch"
	case SmithWaterman:
		return "smith-waterman"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// Valid reports whether a is one of the defined algorithms
func (a Algorithm) Valid() bool {
	return a >= 0 && int(a) < len(aligners)
}

// ParseAlgorithm parses an algorithm name. Accepted names are
// needleman-wunsch, global, nw, smith-waterman, local and sw.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "needleman-wunsch", "global", "nw":
		return NeedlemanWunsch, nil
	case "smith-waterman", "local", "sw":
		return SmithWaterman, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// MarshalText encodes the algorithm as its name
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an algorithm name
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Align runs the selected algorithm on two sequences
func Align(a, b string, alg Algorithm, sc Scoring) (Result, error) {
	if !alg.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}
	return aligners[alg](a, b, sc), nil
}
