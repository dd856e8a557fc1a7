package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/scttfrdmn/galign-go/pkg/genome"
	"github.com/scttfrdmn/galign-go/pkg/parser"
	"github.com/scttfrdmn/galign-go/pkg/storage"
)

// warn prints parser diagnostics to stderr unless --quiet is set
func warn(source string, warnings []parser.Warning) {
	if cfg.Quiet {
		return
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", source, w)
	}
}

// formatOf resolves the format of a location, with an explicit override
// taking precedence (needed for stdin)
func formatOf(path, override string) (parser.Format, error) {
	if override != "" {
		return parser.ParseFormat(override)
	}
	if path == storage.Stdio {
		return "", fmt.Errorf("reading stdin requires --input-format")
	}
	return parser.FormatFromPath(path)
}

// loadSequences reads a FASTA or FASTQ location
func loadSequences(ctx context.Context, path, override string) ([]genome.Sequence, error) {
	format, err := formatOf(path, override)
	if err != nil {
		return nil, err
	}

	data, err := storage.ReadInput(ctx, path)
	if err != nil {
		return nil, err
	}

	switch format {
	case parser.FASTA:
		res, err := parser.ParseFASTA(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		warn(path, res.Warnings)
		return res.Sequences, nil
	case parser.FASTQ:
		res, err := parser.ParseFASTQ(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		warn(path, res.Warnings)
		return res.Sequences, nil
	}
	return nil, fmt.Errorf("%w: %s holds %s, expected sequences", parser.ErrUnsupportedFormat, path, format)
}

// loadVariants reads a VCF location
func loadVariants(ctx context.Context, path, override string) (*parser.VCFResult, error) {
	format, err := formatOf(path, override)
	if err != nil {
		return nil, err
	}
	if format != parser.VCF {
		return nil, fmt.Errorf("%w: %s is %s, expected vcf", parser.ErrUnsupportedFormat, path, format)
	}

	data, err := storage.ReadInput(ctx, path)
	if err != nil {
		return nil, err
	}
	res, err := parser.ParseVCF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	warn(path, res.Warnings)
	return res, nil
}

// status prints a progress line to stderr unless output goes to stdout
// or --quiet is set
func status(output string, format string, args ...interface{}) {
	if cfg.Quiet || output == storage.Stdio {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
