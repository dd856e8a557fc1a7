package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/scttfrdmn/galign-go/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve alignment and parsing over HTTP",
	Long: `Start the HTTP API.

Endpoints:
  POST /v1/align          {"sequence1", "sequence2", "algorithm", "scoring"}
  POST /v1/parse/:format  raw fasta, fastq or vcf text
  GET  /healthz

Pairs larger than the configured matrix budget are rejected with 413.

Example:
  galign serve --addr :8080 --max-memory 1GiB`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		gin.SetMode(gin.ReleaseMode)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !cfg.Quiet {
			fmt.Fprintf(os.Stderr, "Listening on %s (matrix budget %s)\n", cfg.Server.Addr, cfg.MaxMemory)
		}
		return server.New(cfg, version).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}
