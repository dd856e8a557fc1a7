package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestCodecFor(t *testing.T) {
	tests := map[string]Codec{
		"reads.fa":         Plain,
		"calls.vcf.gz":     Gzip,
		"calls.vcf.BGZ":    BGZF,
		"genome.fasta.zst": Zstd,
		"noext":            Plain,
	}
	for name, want := range tests {
		if got := CodecFor(name); got != want {
			t.Errorf("CodecFor(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestCompressRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat(">seq1\nACGTACGTNN\n", 500))

	for _, codec := range []Codec{Plain, Gzip, BGZF, Zstd} {
		t.Run(codec.String(), func(t *testing.T) {
			encoded, err := Compress(codec, data)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if codec == Gzip || codec == BGZF {
				if !IsBGZF(encoded) {
					t.Errorf("expected BGZF block header")
				}
			}
			decoded, err := Decompress(codec, encoded)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(decoded, data) {
				t.Fatalf("round trip mismatch")
			}
		})
	}
}

func TestDecompressPlainGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte("@r1\nACGT\n+\nIIII\n"))
	zw.Close()

	if IsBGZF(buf.Bytes()) {
		t.Fatalf("plain gzip detected as BGZF")
	}
	out, err := Decompress(Gzip, buf.Bytes())
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if string(out) != "@r1\nACGT\n+\nIIII\n" {
		t.Errorf("got %q", out)
	}
}

func TestReadWriteLocal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	data := []byte("##fileformat=VCFv4.2\nchr1\t1\t.\tA\tG\t.\tPASS\t.\n")

	for _, name := range []string{"out.vcf", "nested/out.vcf.gz", "out.vcf.zst"} {
		path := filepath.Join(dir, name)
		if err := WriteOutput(ctx, path, data); err != nil {
			t.Fatalf("WriteOutput(%s): %v", name, err)
		}
		got, err := ReadInput(ctx, path)
		if err != nil {
			t.Fatalf("ReadInput(%s): %v", name, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("%s: round trip mismatch", name)
		}
	}

	raw, err := os.ReadFile(filepath.Join(dir, "nested/out.vcf.gz"))
	if err != nil {
		t.Fatal(err)
	}
	if !IsBGZF(raw) {
		t.Errorf(".gz output is not BGZF")
	}

	if _, err := ReadInput(ctx, filepath.Join(dir, "missing.fa")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestStdio(t *testing.T) {
	oldIn, oldOut := Stdin, Stdout
	defer func() { Stdin, Stdout = oldIn, oldOut }()

	Stdin = strings.NewReader(">x\nAC\n")
	var out bytes.Buffer
	Stdout = &out

	data, err := ReadInput(context.Background(), Stdio)
	if err != nil || string(data) != ">x\nAC\n" {
		t.Fatalf("ReadInput(-) = %q, %v", data, err)
	}
	if err := WriteOutput(context.Background(), Stdio, data); err != nil {
		t.Fatalf("WriteOutput(-): %v", err)
	}
	if out.String() != ">x\nAC\n" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestLocalStorage(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	if s.IsS3() {
		t.Fatal("local storage reports S3")
	}
	if ok, err := s.Exists("a/b.txt"); err != nil || ok {
		t.Fatalf("Exists before write = %v, %v", ok, err)
	}
	if err := s.WriteFile("a/b.txt", []byte("x")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if ok, err := s.Exists("a/b.txt"); err != nil || !ok {
		t.Fatalf("Exists after write = %v, %v", ok, err)
	}
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri    string
		bucket string
		prefix string
		ok     bool
	}{
		{"s3://bucket/path/to/reads.fq", "bucket", "path/to/reads.fq", true},
		{"s3://bucket", "bucket", "", true},
		{"s3://bucket/dir/", "bucket", "dir", true},
		{"s3://", "", "", false},
		{"/local/path", "", "", false},
	}
	for _, tt := range tests {
		got, err := ParseS3URI(tt.uri)
		if (err == nil) != tt.ok {
			t.Errorf("ParseS3URI(%q) error = %v", tt.uri, err)
			continue
		}
		if tt.ok && (got.Bucket != tt.bucket || got.Prefix != tt.prefix) {
			t.Errorf("ParseS3URI(%q) = %+v", tt.uri, got)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct{ uri, base, name string }{
		{"s3://bucket/runs/a/calls.vcf.gz", "s3://bucket/runs/a", "calls.vcf.gz"},
		{"s3://bucket/calls.vcf", "s3://bucket", "calls.vcf"},
		{"/data/ref.fa", "/data", "ref.fa"},
		{"ref.fa", ".", "ref.fa"},
	}
	for _, tt := range tests {
		base, name, err := split(tt.uri)
		if err != nil || base != tt.base || name != tt.name {
			t.Errorf("split(%q) = %q, %q, %v", tt.uri, base, name, err)
		}
	}
}
