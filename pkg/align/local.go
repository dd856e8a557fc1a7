package align

// Local computes the Smith-Waterman alignment of a and b.
//
// Every cell is floored at 0 and the boundaries are 0. The maximum cell is
// tracked during the row-major fill with a strict comparison, so ties keep
// the first maximum encountered. The traceback starts there and stops on
// the first 0 cell. With no positive-scoring pair the result has score 0
// and empty aligned strings.
func Local(a, b string, sc Scoring) Result {
	m, n := len(a), len(b)
	mx := newMatrix(m, n)

	maxScore, maxI, maxJ := 0, 0, 0
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			best := mx.at(i-1, j-1) + sc.substitution(a[i-1], b[j-1])
			if up := mx.at(i-1, j) + sc.Gap; up > best {
				best = up
			}
			if left := mx.at(i, j-1) + sc.Gap; left > best {
				best = left
			}
			if best < 0 {
				best = 0
			}
			mx.set(i, j, best)

			if best > maxScore {
				maxScore, maxI, maxJ = best, i, j
			}
		}
	}

	out := newBuilder(maxI + maxJ)
	startI, startJ := walk(a, b, mx, sc, maxI, maxJ, true, out)

	aligned1, aligned2 := out.strings()
	return newResult(aligned1, aligned2, maxScore, SmithWaterman, startI, maxI, startJ, maxJ)
}
