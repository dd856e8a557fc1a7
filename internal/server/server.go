// Package server exposes alignment and parsing over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scttfrdmn/galign-go/internal/config"
	"github.com/scttfrdmn/galign-go/pkg/align"
	"github.com/scttfrdmn/galign-go/pkg/parser"
)

// Server serves the galign HTTP API
type Server struct {
	cfg     *config.Config
	version string
	engine  *gin.Engine
}

// New builds the router
func New(cfg *config.Config, version string) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	if !cfg.Quiet {
		engine.Use(gin.LoggerWithWriter(os.Stderr))
	}

	s := &Server{cfg: cfg, version: version, engine: engine}
	engine.GET("/healthz", s.health)
	v1 := engine.Group("/v1")
	v1.POST("/align", s.align)
	v1.POST("/parse/:format", s.parse)
	return s
}

// Handler returns the router as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.version})
}

// alignRequest is the body of POST /v1/align
type alignRequest struct {
	Sequence1 string         `json:"sequence1"`
	Sequence2 string         `json:"sequence2"`
	Algorithm string         `json:"algorithm"`
	Scoring   *align.Scoring `json:"scoring,omitempty"`
}

// alignResponse adds the derived fields to a Result
type alignResponse struct {
	align.Result
	CIGAR      string `json:"cigar"`
	Matches    int    `json:"matches"`
	Mismatches int    `json:"mismatches"`
}

func (s *Server) align(c *gin.Context) {
	var req alignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := req.Algorithm
	if name == "" {
		name = s.cfg.Algorithm
	}
	alg, err := align.ParseAlgorithm(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scoring := s.cfg.Scoring
	if req.Scoring != nil {
		scoring = *req.Scoring
	}
	if err := scoring.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.cfg.CheckPair(len(req.Sequence1), len(req.Sequence2)); err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}

	res, err := align.Align(req.Sequence1, req.Sequence2, alg, scoring)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alignResponse{
		Result:     res,
		CIGAR:      res.CIGAR(),
		Matches:    res.Matches(),
		Mismatches: res.Mismatches(),
	})
}

func (s *Server) parse(c *gin.Context) {
	format, err := parser.ParseFormat(c.Param("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body := c.Request.Body
	defer body.Close()

	switch format {
	case parser.FASTA:
		res, err := parser.ParseFASTA(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": res.Sequences, "warnings": res.Warnings})
	case parser.FASTQ:
		res, err := parser.ParseFASTQ(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": res.Sequences, "warnings": res.Warnings})
	case parser.VCF:
		res, err := parser.ParseVCF(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"meta": res.Meta, "variants": res.Variants, "warnings": res.Warnings})
	}
}
