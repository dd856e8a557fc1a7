package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scttfrdmn/galign-go/pkg/hts"
	"github.com/scttfrdmn/galign-go/pkg/storage"
)

var (
	indexOutput string
	indexFetch  string
)

var indexCmd = &cobra.Command{
	Use:   "index <file.fasta>",
	Short: "Build a .fai index for a FASTA file",
	Long: `Build a samtools-compatible .fai index for a FASTA file. The index is
written next to the input unless --output is given. Compressed input can
be queried with --fetch but not indexed, since a .fai over decompressed
text does not describe the file it sits next to.

With --fetch, print one region as FASTA instead of writing the index.

Examples:
  galign index genome.fa
  galign index genome.fa --fetch chr2:1,000-1,200`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		input := args[0]

		data, err := storage.ReadInput(ctx, input)
		if err != nil {
			return err
		}
		idx, err := hts.BuildIndex(data)
		if err != nil {
			return err
		}

		if indexFetch != "" {
			region, err := hts.ParseRegion(indexFetch)
			if err != nil {
				return err
			}
			seq, err := hts.FetchRegion(data, idx, region)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, ">%s\n%s\n", region, seq)
			return nil
		}

		output, err := indexPath(input, indexOutput)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := hts.WriteIndex(&buf, idx); err != nil {
			return err
		}
		if err := storage.WriteOutput(ctx, output, buf.Bytes()); err != nil {
			return err
		}
		status(output, "✓ Indexed %d sequences -> %s\n", len(idx), output)
		return nil
	},
}

// indexPath resolves where the .fai for input goes
func indexPath(input, output string) (string, error) {
	if codec := storage.CodecFor(input); codec != storage.Plain {
		return "", fmt.Errorf("cannot index %s input %s; decompress it first", codec, input)
	}
	if output != "" {
		return output, nil
	}
	if input == storage.Stdio {
		return "", fmt.Errorf("indexing stdin requires --output")
	}
	return input + ".fai", nil
}

func init() {
	indexCmd.Flags().StringVarP(&indexOutput, "output", "o", "", "Index location (default: <input>.fai)")
	indexCmd.Flags().StringVar(&indexFetch, "fetch", "", "Print region name:start-end instead of writing the index")
}
