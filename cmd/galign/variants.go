package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/scttfrdmn/galign-go/pkg/mutation"
)

var (
	variantsJSON        bool
	variantsInputFormat string
)

var variantsCmd = &cobra.Command{
	Use:   "variants <file.vcf>",
	Short: "Show mutation statistics for a VCF file",
	Long: `Summarize the variants of a VCF file: SNP and indel counts,
transition/transversion ratio, per-chromosome distribution and QUAL
statistics over records with a quality score.

Example:
  galign variants calls.vcf.gz`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadVariants(cmd.Context(), args[0], variantsInputFormat)
		if err != nil {
			return err
		}

		stats := mutation.Analyze(res.Variants)
		if variantsJSON {
			return printJSON(stats)
		}

		fmt.Println("===========================================")
		fmt.Println("Variant Statistics")
		fmt.Println("===========================================")
		fmt.Println()
		fmt.Printf("Source: %s\n", args[0])
		fmt.Println()

		fmt.Println("Counts:")
		fmt.Printf("  Total variants: %s\n", humanize.Comma(int64(stats.TotalVariants)))
		fmt.Printf("  SNPs: %s (%s)\n", humanize.Comma(int64(stats.SNPs)), percent(stats.SNPs, stats.TotalVariants))
		fmt.Printf("  Indels: %s (%s)\n", humanize.Comma(int64(stats.Indels)), percent(stats.Indels, stats.TotalVariants))
		fmt.Printf("  Transitions: %s\n", humanize.Comma(int64(stats.Transitions)))
		fmt.Printf("  Transversions: %s\n", humanize.Comma(int64(stats.Transversions)))
		fmt.Printf("  Ti/Tv ratio: %.2f\n", stats.TiTvRatio)
		fmt.Println()

		fmt.Println("Quality:")
		fmt.Printf("  Mean: %.2f\n", stats.Quality.Mean)
		fmt.Printf("  Median: %.2f\n", stats.Quality.Median)
		fmt.Printf("  Range: %.2f - %.2f\n", stats.Quality.Min, stats.Quality.Max)
		fmt.Println()

		chroms := make([]string, 0, len(stats.ChromosomeDistribution))
		for c := range stats.ChromosomeDistribution {
			chroms = append(chroms, c)
		}
		sort.Strings(chroms)

		fmt.Println("Chromosomes:")
		for _, c := range chroms {
			fmt.Printf("  %s: %s\n", c, humanize.Comma(int64(stats.ChromosomeDistribution[c])))
		}
		return nil
	},
}

func init() {
	variantsCmd.Flags().BoolVar(&variantsJSON, "json", false, "Print statistics as JSON")
	variantsCmd.Flags().StringVar(&variantsInputFormat, "input-format", "", "Set to vcf when reading stdin")
}

func percent(n, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(n)/float64(total)*100)
}
