package storage

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec is the compression applied to a stored object
type Codec int

const (
	Plain Codec = iota
	Gzip        // .gz, written as BGZF
	BGZF        // .bgz
	Zstd        // .zst
)

func (c Codec) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case BGZF:
		return "bgzf"
	case Zstd:
		return "zstd"
	}
	return "plain"
}

// CodecFor picks the codec from a file name's final extension
func CodecFor(name string) Codec {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return Gzip
	case ".bgz":
		return BGZF
	case ".zst":
		return Zstd
	}
	return Plain
}

// bgzfMagic is the gzip member header carrying the BGZF "BC" extra subfield
var bgzfMagic = []byte{0x1f, 0x8b, 0x08, 0x04}

// IsBGZF reports whether data starts with a BGZF block header
func IsBGZF(data []byte) bool {
	return len(data) >= 18 && bytes.HasPrefix(data, bgzfMagic) && data[12] == 'B' && data[13] == 'C'
}

// Decompress decodes data according to codec. Gzip input that carries BGZF
// block headers is read with the BGZF reader.
func Decompress(codec Codec, data []byte) ([]byte, error) {
	switch codec {
	case Plain:
		return data, nil

	case Zstd:
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer decoder.Close()
		out, err := decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decode zstd: %w", err)
		}
		return out, nil

	case Gzip, BGZF:
		var (
			r   io.ReadCloser
			err error
		)
		if IsBGZF(data) {
			r, err = bgzf.NewReader(bytes.NewReader(data), 1)
		} else {
			r, err = gzip.NewReader(bytes.NewReader(data))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open %s stream: %w", codec, err)
		}
		defer r.Close()

		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", codec, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown codec %d", codec)
}

// Compress encodes data according to codec. Both gzip extensions are
// written as BGZF so the output stays readable by plain gzip tools and
// indexable by tabix.
func Compress(codec Codec, data []byte) ([]byte, error) {
	switch codec {
	case Plain:
		return data, nil

	case Zstd:
		encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		defer encoder.Close()
		return encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil

	case Gzip, BGZF:
		var buf bytes.Buffer
		w := bgzf.NewWriter(&buf, 1)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write bgzf: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("failed to close bgzf: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown codec %d", codec)
}
