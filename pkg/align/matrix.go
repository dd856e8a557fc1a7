package align

// GapSymbol marks a gap column in an aligned string
const GapSymbol = '-'

// matrix is a row-major (m+1) x (n+1) score table
type matrix struct {
	cols  int
	cells []int
}

func newMatrix(m, n int) *matrix {
	return &matrix{
		cols:  n + 1,
		cells: make([]int, (m+1)*(n+1)),
	}
}

func (mx *matrix) at(i, j int) int {
	return mx.cells[i*mx.cols+j]
}

func (mx *matrix) set(i, j, v int) {
	mx.cells[i*mx.cols+j] = v
}

// builder accumulates aligned columns back to front
type builder struct {
	a1 []byte
	a2 []byte
}

func newBuilder(capacity int) *builder {
	return &builder{
		a1: make([]byte, 0, capacity),
		a2: make([]byte, 0, capacity),
	}
}

func (b *builder) push(x, y byte) {
	b.a1 = append(b.a1, x)
	b.a2 = append(b.a2, y)
}

// strings reverses the buffers once and returns the aligned pair
func (b *builder) strings() (string, string) {
	reverse(b.a1)
	reverse(b.a2)
	return string(b.a1), string(b.a2)
}

func reverse(buf []byte) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

// walk traces back from (i, j) preferring the diagonal, then up, then left.
// Left is taken as the fallback without re-checking the score. The walk
// ends when either index reaches 0, or, when stopAtZero is set, on the
// first cell holding 0. It returns the indices where it stopped.
func walk(a, b string, mx *matrix, sc Scoring, i, j int, stopAtZero bool, out *builder) (int, int) {
	for i > 0 && j > 0 {
		current := mx.at(i, j)
		if stopAtZero && current == 0 {
			break
		}

		switch {
		case current == mx.at(i-1, j-1)+sc.substitution(a[i-1], b[j-1]):
			out.push(a[i-1], b[j-1])
			i--
			j--
		case current == mx.at(i-1, j)+sc.Gap:
			out.push(a[i-1], GapSymbol)
			i--
		default:
			out.push(GapSymbol, b[j-1])
			j--
		}
	}
	return i, j
}
