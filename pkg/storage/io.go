package storage

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Stdio is the location name for standard input or output
const Stdio = "-"

// Standard streams used for Stdio; tests replace them
var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
)

// ReadInput loads a local path, s3:// URI or "-" and decodes it by
// extension
func ReadInput(ctx context.Context, uri string) ([]byte, error) {
	if uri == Stdio {
		data, err := io.ReadAll(Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	base, name, err := split(uri)
	if err != nil {
		return nil, err
	}
	store, err := NewStorage(ctx, base)
	if err != nil {
		return nil, err
	}

	raw, err := store.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	return Decompress(CodecFor(name), raw)
}

// WriteOutput encodes data by extension and stores it at a local path,
// s3:// URI or "-"
func WriteOutput(ctx context.Context, uri string, data []byte) error {
	if uri == Stdio {
		if _, err := Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write stdout: %w", err)
		}
		return nil
	}

	base, name, err := split(uri)
	if err != nil {
		return err
	}
	store, err := NewStorage(ctx, base)
	if err != nil {
		return err
	}

	encoded, err := Compress(CodecFor(name), data)
	if err != nil {
		return err
	}
	if err := store.WriteFile(name, encoded); err != nil {
		return fmt.Errorf("failed to write %s: %w", uri, err)
	}
	return nil
}
