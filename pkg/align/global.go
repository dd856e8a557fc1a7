package align

// Global computes the Needleman-Wunsch alignment of a and b.
//
// Row 0 and column 0 hold the accumulated gap penalty of aligning a prefix
// against gaps. The score is the bottom-right cell. When the traceback hits
// a boundary, the remaining prefix is emitted against gaps, so an empty
// input aligns as a full gap run against the other side.
func Global(a, b string, sc Scoring) Result {
	m, n := len(a), len(b)
	mx := newMatrix(m, n)

	// Boundary: accumulated gap penalty
	for i := 0; i <= m; i++ {
		mx.set(i, 0, i*sc.Gap)
	}
	for j := 0; j <= n; j++ {
		mx.set(0, j, j*sc.Gap)
	}

	// Fill
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			best := mx.at(i-1, j-1) + sc.substitution(a[i-1], b[j-1])
			if up := mx.at(i-1, j) + sc.Gap; up > best {
				best = up
			}
			if left := mx.at(i, j-1) + sc.Gap; left > best {
				best = left
			}
			mx.set(i, j, best)
		}
	}

	out := newBuilder(m + n)
	i, j := walk(a, b, mx, sc, m, n, false, out)

	// Flush whatever prefix is left against the boundary
	for ; i > 0; i-- {
		out.push(a[i-1], GapSymbol)
	}
	for ; j > 0; j-- {
		out.push(GapSymbol, b[j-1])
	}

	aligned1, aligned2 := out.strings()
	return newResult(aligned1, aligned2, mx.at(m, n), NeedlemanWunsch, 0, m, 0, n)
}
