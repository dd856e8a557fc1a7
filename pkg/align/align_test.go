package align

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestGlobal(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		aligned1 string
		aligned2 string
		score    int
		gaps     int
		identity string
	}{
		{"textbook pair", "GATTACA", "GCATGCU", "G-ATTACA", "GCA-TGCU", 4, 2, "66.7"},
		{"identical", "ACGT", "ACGT", "ACGT", "ACGT", 8, 0, "100.0"},
		{"all mismatch", "AAAA", "TTTT", "AAAA", "TTTT", -4, 0, "0.0"},
		{"inner gaps", "ACACACTA", "AGCACACA", "A-CACACTA", "AGCACAC-A", 12, 2, "100.0"},
		{"end gaps", "TTGACGTAA", "GACGT", "TTGACGTAA", "--GACGT--", 6, 4, "100.0"},
		{"two deletions", "GAATTC", "GATC", "GAATTC", "G-A-TC", 6, 2, "100.0"},
		{"longer second", "GGATCGA", "GAATTCAGTTA", "GGA-TC-G--A", "GAATTCAGTTA", 7, 4, "85.7"},
		{"empty second", "ACGT", "", "ACGT", "----", -4, 4, "0.0"},
		{"empty first", "", "ACG", "---", "ACG", -3, 3, "0.0"},
		{"both empty", "", "", "", "", 0, 0, "0.0"},
		{"single match", "A", "A", "A", "A", 2, 0, "100.0"},
		{"single mismatch", "A", "T", "A", "T", -1, 0, "0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Global(tt.a, tt.b, DefaultScoring())
			if r.Aligned1 != tt.aligned1 || r.Aligned2 != tt.aligned2 {
				t.Errorf("aligned = %q/%q, want %q/%q", r.Aligned1, r.Aligned2, tt.aligned1, tt.aligned2)
			}
			if r.Score != tt.score {
				t.Errorf("score = %d, want %d", r.Score, tt.score)
			}
			if r.Gaps != tt.gaps {
				t.Errorf("gaps = %d, want %d", r.Gaps, tt.gaps)
			}
			if r.IdentityString() != tt.identity {
				t.Errorf("identity = %s, want %s", r.IdentityString(), tt.identity)
			}
			if r.Algorithm != NeedlemanWunsch {
				t.Errorf("algorithm = %v", r.Algorithm)
			}
			if r.Start1 != 0 || r.End1 != len(tt.a) || r.Start2 != 0 || r.End2 != len(tt.b) {
				t.Errorf("global region = [%d,%d) [%d,%d)", r.Start1, r.End1, r.Start2, r.End2)
			}
		})
	}
}

func TestLocal(t *testing.T) {
	tests := []struct {
		name                       string
		a, b                       string
		aligned1, aligned2         string
		score                      int
		start1, end1, start2, end2 int
	}{
		{"textbook pair", "GATTACA", "GCATGCU", "G-AT", "GCAT", 5, 0, 3, 0, 4},
		{"embedded", "TTGACGTAA", "GACGT", "GACGT", "GACGT", 10, 2, 7, 0, 5},
		{"flanked core", "XXACGTXX", "YYACGTYY", "ACGT", "ACGT", 8, 2, 6, 2, 6},
		{"gapped local", "GAATTC", "GATC", "GAATTC", "G-A-TC", 6, 0, 6, 0, 4},
		{"no common symbol", "AAAA", "TTTT", "", "", 0, 0, 0, 0, 0},
		{"empty input", "ACGT", "", "", "", 0, 0, 0, 0, 0},
		{"single mismatch", "A", "T", "", "", 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Local(tt.a, tt.b, DefaultScoring())
			if r.Aligned1 != tt.aligned1 || r.Aligned2 != tt.aligned2 {
				t.Errorf("aligned = %q/%q, want %q/%q", r.Aligned1, r.Aligned2, tt.aligned1, tt.aligned2)
			}
			if r.Score != tt.score {
				t.Errorf("score = %d, want %d", r.Score, tt.score)
			}
			if r.Start1 != tt.start1 || r.End1 != tt.end1 || r.Start2 != tt.start2 || r.End2 != tt.end2 {
				t.Errorf("region = [%d,%d) [%d,%d), want [%d,%d) [%d,%d)",
					r.Start1, r.End1, r.Start2, r.End2, tt.start1, tt.end1, tt.start2, tt.end2)
			}
			if r.Algorithm != SmithWaterman {
				t.Errorf("algorithm = %v", r.Algorithm)
			}
		})
	}
}

func TestLocalTieKeepsFirstMaximum(t *testing.T) {
	// "AC" occurs twice in the second sequence with the same score; the
	// row-major fill meets the left occurrence first.
	r := Local("AC", "ACTTAC", DefaultScoring())
	if r.Score != 4 || r.Start2 != 0 || r.End2 != 2 {
		t.Fatalf("got score %d region [%d,%d), want 4 [0,2)", r.Score, r.Start2, r.End2)
	}
}

func randomSequence(rng *rand.Rand, alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sc := DefaultScoring()

	for k := 0; k < 200; k++ {
		a := randomSequence(rng, "ACGT", rng.Intn(40))
		b := randomSequence(rng, "ACGT", rng.Intn(40))

		self := Global(a, a, sc)
		if self.Score != 2*len(a) || self.Gaps != 0 {
			t.Fatalf("self alignment of %q: score %d gaps %d", a, self.Score, self.Gaps)
		}
		if len(a) > 0 && self.Identity != 100 {
			t.Fatalf("self alignment of %q: identity %v", a, self.Identity)
		}

		for _, r := range []Result{Global(a, b, sc), Local(a, b, sc)} {
			if len(r.Aligned1) != len(r.Aligned2) {
				t.Fatalf("%v %q/%q: unequal aligned lengths %d/%d", r.Algorithm, a, b, len(r.Aligned1), len(r.Aligned2))
			}
			if r.Identity < 0 || r.Identity > 100 {
				t.Fatalf("%v %q/%q: identity %v out of range", r.Algorithm, a, b, r.Identity)
			}
			if strings.ReplaceAll(r.Aligned1, "-", "") != a[r.Start1:r.End1] {
				t.Fatalf("%v %q/%q: aligned1 %q does not spell the input region", r.Algorithm, a, b, r.Aligned1)
			}
			if strings.ReplaceAll(r.Aligned2, "-", "") != b[r.Start2:r.End2] {
				t.Fatalf("%v %q/%q: aligned2 %q does not spell the input region", r.Algorithm, a, b, r.Aligned2)
			}
		}

		local := Local(a, b, sc)
		if local.Score < 0 {
			t.Fatalf("local score %d < 0", local.Score)
		}
		if global := Global(a, b, sc); local.Score < global.Score {
			t.Fatalf("local score %d below global score %d for %q/%q", local.Score, global.Score, a, b)
		}
	}
}

func TestAlignDispatch(t *testing.T) {
	r, err := Align("GATTACA", "GCATGCU", SmithWaterman, DefaultScoring())
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if r.Algorithm != SmithWaterman || r.Score != 5 {
		t.Errorf("unexpected result: %+v", r)
	}
	if _, err := Align("A", "A", Algorithm(7), DefaultScoring()); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"needleman-wunsch", NeedlemanWunsch, false},
		{"Global", NeedlemanWunsch, false},
		{"nw", NeedlemanWunsch, false},
		{"smith-waterman", SmithWaterman, false},
		{" local ", SmithWaterman, false},
		{"sw", SmithWaterman, false},
		{"blast", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResultJSON(t *testing.T) {
	r := Global("GATTACA", "GCATGCU", DefaultScoring())
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"algorithm":"needleman-wunsch"`) {
		t.Errorf("algorithm not encoded by name: %s", data)
	}
	var back Result
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != r {
		t.Errorf("decoded %+v, want %+v", back, r)
	}
}

func TestCIGAR(t *testing.T) {
	r := Global("GATTACA", "GCATGCU", DefaultScoring())
	if got := r.CIGAR(); got != "1=1I1=1D1=1X1=1X" {
		t.Errorf("CIGAR = %q", got)
	}
	if r.Matches() != 4 || r.Mismatches() != 2 {
		t.Errorf("matches %d mismatches %d", r.Matches(), r.Mismatches())
	}
	if got := r.MatchLine(); got != "| | |.|." {
		t.Errorf("MatchLine = %q", got)
	}
	if got := Local("AAAA", "TTTT", DefaultScoring()).CIGAR(); got != "*" {
		t.Errorf("empty CIGAR = %q", got)
	}
}

func TestScoringValidate(t *testing.T) {
	if err := DefaultScoring().Validate(); err != nil {
		t.Errorf("default scoring invalid: %v", err)
	}
	for _, sc := range []Scoring{{0, -1, -1}, {2, 1, -1}, {2, -1, 1}} {
		if err := sc.Validate(); err == nil {
			t.Errorf("expected error for %+v", sc)
		}
	}
	if Cells(3, 4) != 20 {
		t.Errorf("Cells(3,4) = %d", Cells(3, 4))
	}
}
