// Package mutation summarizes variant collections and derives variants
// from sequence pairs.
package mutation

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/scttfrdmn/galign-go/pkg/genome"
)

// QualityStats summarizes the positive QUAL values of a variant set
type QualityStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Stats summarizes a set of variants
type Stats struct {
	TotalVariants          int            `json:"total_variants"`
	SNPs                   int            `json:"snps"`
	Indels                 int            `json:"indels"`
	Transitions            int            `json:"transitions"`
	Transversions          int            `json:"transversions"`
	TiTvRatio              float64        `json:"ti_tv_ratio"`
	ChromosomeDistribution map[string]int `json:"chromosome_distribution"`
	Quality                QualityStats   `json:"quality"`
}

// Analyze counts SNPs, indels and transition/transversion classes, the
// per-chromosome distribution and quality statistics over QUAL > 0
func Analyze(variants []genome.Variant) Stats {
	stats := Stats{
		TotalVariants:          len(variants),
		ChromosomeDistribution: make(map[string]int),
	}
	if len(variants) == 0 {
		return stats
	}

	var qualities []float64
	for _, v := range variants {
		stats.ChromosomeDistribution[v.Chrom]++

		if v.Qual > 0 {
			qualities = append(qualities, v.Qual)
		}

		if v.Kind() != genome.SNP {
			stats.Indels++
			continue
		}
		stats.SNPs++
		if IsTransition(v.Ref, v.Alt) {
			stats.Transitions++
		} else {
			stats.Transversions++
		}
	}

	if stats.Transversions > 0 {
		stats.TiTvRatio = float64(stats.Transitions) / float64(stats.Transversions)
	}

	if len(qualities) > 0 {
		sort.Float64s(qualities)
		sum := 0.0
		for _, q := range qualities {
			sum += q
		}
		stats.Quality = QualityStats{
			Mean:   sum / float64(len(qualities)),
			Median: qualities[len(qualities)/2],
			Min:    qualities[0],
			Max:    qualities[len(qualities)-1],
		}
	}

	return stats
}

// IsTransition reports whether ref>alt is a purine-purine or
// pyrimidine-pyrimidine substitution
func IsTransition(ref, alt string) bool {
	switch strings.ToUpper(ref + alt) {
	case "AG", "GA", "CT", "TC":
		return true
	}
	return false
}

// FindMutations compares two sequences position by position over the
// shorter length and returns one SNP variant per differing symbol
func FindMutations(reference, sample genome.Sequence) []genome.Variant {
	n := len(reference.Sequence)
	if len(sample.Sequence) < n {
		n = len(sample.Sequence)
	}

	var variants []genome.Variant
	for i := 0; i < n; i++ {
		if reference.Sequence[i] == sample.Sequence[i] {
			continue
		}
		pos := i + 1
		variants = append(variants, genome.Variant{
			Chrom:  reference.ID,
			Pos:    pos,
			ID:     genome.SyntheticID(reference.ID, pos),
			Ref:    reference.Sequence[i : i+1],
			Alt:    sample.Sequence[i : i+1],
			Qual:   60,
			Filter: "PASS",
			Info: map[string]interface{}{
				"TYPE":      "SNP",
				"GENERATED": true,
			},
		})
	}
	return variants
}

var bases = []byte("ATCG")

// Simulate returns a copy of seq where each symbol is replaced, with
// probability rate, by a different base drawn uniformly from ATCG
func Simulate(seq genome.Sequence, rate float64, rng *rand.Rand) genome.Sequence {
	mutated := []byte(seq.Sequence)
	for i, current := range mutated {
		if rng.Float64() >= rate {
			continue
		}
		choices := make([]byte, 0, len(bases))
		for _, b := range bases {
			if b != current {
				choices = append(choices, b)
			}
		}
		mutated[i] = choices[rng.Intn(len(choices))]
	}

	description := "(mutated)"
	if seq.Description != "" {
		description = seq.Description + " (mutated)"
	}

	out := genome.NewSequence(seq.ID+"_mutated", description, string(mutated))
	out.Quality = seq.Quality
	return out
}
