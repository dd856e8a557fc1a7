package hts

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"github.com/scttfrdmn/galign-go/pkg/align"
	"github.com/scttfrdmn/galign-go/pkg/genome"
)

func pair(t *testing.T, ref, query string, alg align.Algorithm) Pair {
	t.Helper()
	a := genome.NewSequence("ref", "", ref)
	b := genome.NewSequence("read", "", query)
	res, err := align.Align(a.Sequence, b.Sequence, alg, align.DefaultScoring())
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	return Pair{Reference: a, Query: b, Result: res}
}

func dataLines(s string) []string {
	var out []string
	for _, l := range strings.Split(strings.TrimSpace(s), "\n") {
		if !strings.HasPrefix(l, "@") {
			out = append(out, l)
		}
	}
	return out
}

func TestWriteSAM(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		query    string
		alg      align.Algorithm
		extended bool
		pos      string
		cigar    string
		score    string
	}{
		{"global", "GATTACA", "GCATGCU", align.NeedlemanWunsch, false, "1", "1M1I1M1D4M", "AS:i:4"},
		{"global extended", "GATTACA", "GCATGCU", align.NeedlemanWunsch, true, "1", "1=1I1=1D1=1X1=1X", "AS:i:4"},
		{"local tail clip", "GATTACA", "GCATGCU", align.SmithWaterman, false, "1", "1M1I2M3S", "AS:i:5"},
		{"local both clips", "XXACGTXX", "YYACGTYY", align.SmithWaterman, false, "3", "2S4M2S", "AS:i:8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := pair(t, tt.ref, tt.query, tt.alg)
			if err := WriteSAM(&buf, []Pair{p}, Options{ExtendedCIGAR: tt.extended}); err != nil {
				t.Fatalf("WriteSAM: %v", err)
			}
			if !strings.Contains(buf.String(), "@SQ\tSN:ref\tLN:"+strconv.Itoa(len(tt.ref))) {
				t.Errorf("missing @SQ line:\n%s", buf.String())
			}

			lines := dataLines(buf.String())
			if len(lines) != 1 {
				t.Fatalf("got %d records:\n%s", len(lines), buf.String())
			}
			f := strings.Split(lines[0], "\t")
			if f[0] != "read" || f[2] != "ref" || f[3] != tt.pos || f[5] != tt.cigar || f[9] != tt.query {
				t.Errorf("record = %q", lines[0])
			}
			if f[len(f)-1] != tt.score {
				t.Errorf("aux = %q, want %q", f[len(f)-1], tt.score)
			}
		})
	}
}

func TestWriteSAMEndDeletions(t *testing.T) {
	// TTGACGTAA vs GACGT: the reference overhang becomes a POS shift and
	// is dropped at the end
	p := pair(t, "TTGACGTAA", "GACGT", align.NeedlemanWunsch)
	var buf bytes.Buffer
	if err := WriteSAM(&buf, []Pair{p}, Options{}); err != nil {
		t.Fatalf("WriteSAM: %v", err)
	}
	f := strings.Split(dataLines(buf.String())[0], "\t")
	if f[3] != "3" || f[5] != "5M" {
		t.Errorf("pos %s cigar %s", f[3], f[5])
	}
}

func TestWriteSAMRegionOffset(t *testing.T) {
	// The reference is chr1:101-108 of a 500 base chr1
	p := pair(t, "XXACGTXX", "ACGT", align.SmithWaterman)
	p.Reference.ID = "chr1"
	p.Offset = 100
	p.RefLength = 500

	var buf bytes.Buffer
	if err := WriteSAM(&buf, []Pair{p}, Options{}); err != nil {
		t.Fatalf("WriteSAM: %v", err)
	}
	if !strings.Contains(buf.String(), "@SQ\tSN:chr1\tLN:500") {
		t.Errorf("missing full-length @SQ line:\n%s", buf.String())
	}
	f := strings.Split(dataLines(buf.String())[0], "\t")
	if f[2] != "chr1" || f[3] != "103" || f[5] != "4M" {
		t.Errorf("record = %q", f)
	}
}

func TestWriteSAMUnmapped(t *testing.T) {
	p := pair(t, "AAAA", "CCCC", align.SmithWaterman)
	p.Query.Quality = "IIII"
	var buf bytes.Buffer
	if err := WriteSAM(&buf, []Pair{p}, Options{}); err != nil {
		t.Fatalf("WriteSAM: %v", err)
	}
	f := strings.Split(dataLines(buf.String())[0], "\t")
	if f[1] != "4" || f[2] != "*" || f[5] != "*" || f[10] != "IIII" {
		t.Errorf("unmapped record = %q", f)
	}
}

func TestWriteBAM(t *testing.T) {
	pairs := []Pair{
		pair(t, "XXACGTXX", "YYACGTYY", align.SmithWaterman),
		pair(t, "GATTACA", "GCATGCU", align.NeedlemanWunsch),
	}
	pairs[1].Query.ID = "read2"

	var buf bytes.Buffer
	if err := WriteBAM(&buf, pairs, Options{}); err != nil {
		t.Fatalf("WriteBAM: %v", err)
	}

	r, err := bam.NewReader(&buf, 1)
	if err != nil {
		t.Fatalf("bam.NewReader: %v", err)
	}
	defer r.Close()

	// Both pairs share the reference name, so only the first is declared
	if n := len(r.Header().Refs()); n != 1 {
		t.Errorf("got %d references, want 1", n)
	}

	var got []*sam.Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		got = append(got, rec)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records", len(got))
	}
	if got[0].Pos != 2 || got[0].Cigar.String() != "2S4M2S" {
		t.Errorf("first record pos %d cigar %s", got[0].Pos, got[0].Cigar)
	}
	if got[1].Name != "read2" || got[1].Cigar.String() != "1M1I1M1D4M" {
		t.Errorf("second record %s cigar %s", got[1].Name, got[1].Cigar)
	}
}

const indexedFASTA = ">chr1\nACGTACGTAC\nGTACGTACGT\nAAAA\n>chr2\nttttgggg\ncc\n"

func TestIndexAndFetch(t *testing.T) {
	data := []byte(indexedFASTA)
	idx, err := BuildIndex(data)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if idx["chr1"].Length != 24 || idx["chr2"].Length != 10 {
		t.Fatalf("lengths = %d, %d", idx["chr1"].Length, idx["chr2"].Length)
	}

	var buf bytes.Buffer
	if err := WriteIndex(&buf, idx); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}
	reread, err := ReadIndex(&buf)
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}

	tests := []struct {
		region string
		want   string
	}{
		{"chr1:9-12", "ACGT"},
		{"chr1:1-1", "A"},
		{"chr1:21-100", "AAAA"},
		{"chr2", "TTTTGGGGCC"},
		{"chr2:5-8", "GGGG"},
	}
	for _, tt := range tests {
		region, err := ParseRegion(tt.region)
		if err != nil {
			t.Fatalf("ParseRegion(%q): %v", tt.region, err)
		}
		got, err := FetchRegion(data, reread, region)
		if err != nil {
			t.Fatalf("FetchRegion(%q): %v", tt.region, err)
		}
		if got != tt.want {
			t.Errorf("FetchRegion(%q) = %q, want %q", tt.region, got, tt.want)
		}
	}

	if _, err := FetchRegion(data, idx, Region{Name: "chr9", End: -1}); err == nil {
		t.Error("expected error for unknown sequence")
	}
	if _, err := FetchRegion(data, idx, Region{Name: "chr2", Start: 50, End: 60}); err == nil {
		t.Error("expected error for region past the end")
	}
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in   string
		want Region
	}{
		{"chr1", Region{"chr1", 0, -1}},
		{"chr1:100-200", Region{"chr1", 99, 200}},
		{"chr1:1,000-2,000", Region{"chr1", 999, 2000}},
		{"chr1:5", Region{"chr1", 4, 5}},
	}
	for _, tt := range tests {
		got, err := ParseRegion(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseRegion(%q) = %+v, %v", tt.in, got, err)
		}
		if err == nil && got.String() != strings.ReplaceAll(tt.in, ",", "") && tt.in != "chr1:5" {
			t.Errorf("String() = %q", got.String())
		}
	}
	for _, bad := range []string{"", ":1-2", "chr1:x-2", "chr1:5-2", "chr1:0-3"} {
		if _, err := ParseRegion(bad); err == nil {
			t.Errorf("ParseRegion(%q) succeeded", bad)
		}
	}
}
