package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scttfrdmn/galign-go/internal/config"
)

const version = "0.1.0"

var (
	configPath  string
	quiet       bool
	noProgress  bool
	profileMode string

	v        = viper.New()
	cfg      *config.Config
	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "galign",
	Short: "galign - sequence alignment and genomic file tools",
	Long: `galign aligns DNA, RNA and protein sequences with Needleman-Wunsch
(global) or Smith-Waterman (local) and reads, converts and analyses
FASTA, FASTQ and VCF files.

Inputs may be local paths, s3://bucket/key URIs or - for stdin, and may
be gzip, bgzip (.gz, .bgz) or zstd (.zst) compressed.

Settings are read from galign.yaml (working directory or
$HOME/.config/galign), GALIGN_* environment variables and flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, configPath)
		if err != nil {
			return err
		}
		if noProgress {
			loaded.Progress = false
		}
		cfg = loaded

		switch profileMode {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
		case "mem":
			profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
		default:
			return fmt.Errorf("unknown profile mode %q (use cpu or mem)", profileMode)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: galign.yaml if present)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress warnings and progress output")
	flags.BoolVar(&noProgress, "no-progress", false, "Disable progress bars")
	flags.Int("workers", 0, "Number of parallel workers (0 = auto-detect)")
	flags.String("max-memory", "", "Memory budget for one alignment matrix (e.g. 512MiB, 2GiB)")
	flags.StringVar(&profileMode, "profile", "", "Write a cpu or mem profile to the working directory")

	v.BindPFlag("quiet", flags.Lookup("quiet"))
	v.BindPFlag("workers", flags.Lookup("workers"))
	v.BindPFlag("max-memory", flags.Lookup("max-memory"))

	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("galign version %s\n", version)
		fmt.Println("Pairwise sequence alignment and genomic file tools")
	},
}
