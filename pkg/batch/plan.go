package batch

import "github.com/scttfrdmn/galign-go/pkg/genome"

// PlanAllVsAll pairs every sequence with every later one, i < j
func PlanAllVsAll(seqs []genome.Sequence) []Job {
	var jobs []Job
	for i := 0; i < len(seqs); i++ {
		for j := i + 1; j < len(seqs); j++ {
			jobs = append(jobs, Job{Reference: seqs[i], Query: seqs[j]})
		}
	}
	return jobs
}

// PlanPairwise pairs references[i] with queries[i] over the shorter list.
// A single reference is paired with every query.
func PlanPairwise(references, queries []genome.Sequence) []Job {
	if len(references) == 1 {
		jobs := make([]Job, 0, len(queries))
		for _, q := range queries {
			jobs = append(jobs, Job{Reference: references[0], Query: q})
		}
		return jobs
	}

	n := len(references)
	if len(queries) < n {
		n = len(queries)
	}
	jobs := make([]Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, Job{Reference: references[i], Query: queries[i]})
	}
	return jobs
}

// PlanCross pairs every reference with every query
func PlanCross(references, queries []genome.Sequence) []Job {
	jobs := make([]Job, 0, len(references)*len(queries))
	for _, r := range references {
		for _, q := range queries {
			jobs = append(jobs, Job{Reference: r, Query: q})
		}
	}
	return jobs
}
