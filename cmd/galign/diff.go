package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scttfrdmn/galign-go/pkg/genome"
	"github.com/scttfrdmn/galign-go/pkg/mutation"
	"github.com/scttfrdmn/galign-go/pkg/parser"
	"github.com/scttfrdmn/galign-go/pkg/storage"
)

var diffOutput string

var diffCmd = &cobra.Command{
	Use:   "diff <reference.fasta> <sample.fasta>",
	Short: "Call SNPs between two sequences position by position",
	Long: `Compare the records of two FASTA files position by position and write
each differing symbol as a SNP to VCF. Record i of the reference is
compared with record i of the sample over the shorter length; no alignment
is performed, so the inputs should already be co-linear.

Example:
  galign diff ref.fa sample.fa -o sample.vcf.gz`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		refs, err := loadSequences(ctx, args[0], "")
		if err != nil {
			return err
		}
		samples, err := loadSequences(ctx, args[1], "")
		if err != nil {
			return err
		}

		n := len(refs)
		if len(samples) < n {
			n = len(samples)
		}
		if n == 0 {
			return fmt.Errorf("no sequence pairs to compare")
		}

		var variants []genome.Variant
		for i := 0; i < n; i++ {
			variants = append(variants, mutation.FindMutations(refs[i], samples[i])...)
		}

		var buf bytes.Buffer
		if err := parser.ExportVCF(&buf, variants); err != nil {
			return err
		}
		if err := storage.WriteOutput(ctx, diffOutput, buf.Bytes()); err != nil {
			return err
		}
		status(diffOutput, "✓ Found %d SNPs across %d sequence pairs -> %s\n", len(variants), n, diffOutput)
		return nil
	},
}

func init() {
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", storage.Stdio, "Output VCF location")
}
