package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/scttfrdmn/galign-go/pkg/align"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Scoring != align.DefaultScoring() {
		t.Errorf("scoring = %+v", c.Scoring)
	}
	if c.Algorithm != "needleman-wunsch" || c.Workers < 1 || !c.Progress {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.MaxCells != c.maxMemoryBytes/bytesPerCell || c.MaxCells <= 0 {
		t.Errorf("max cells = %d for %d bytes", c.MaxCells, c.maxMemoryBytes)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "galign.yaml")
	yaml := `scoring:
  match: 5
  mismatch: -4
algorithm: local
workers: 3
max-memory: 1MiB
server:
  addr: 127.0.0.1:9000
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GALIGN_WORKERS", "7")
	t.Setenv("GALIGN_SCORING_GAP", "-3")

	c, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Scoring != (align.Scoring{Match: 5, Mismatch: -4, Gap: -3}) {
		t.Errorf("scoring = %+v", c.Scoring)
	}
	if c.Workers != 7 {
		t.Errorf("workers = %d, want env override 7", c.Workers)
	}
	if c.Algorithm != "local" || c.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("config = %+v", c)
	}
	if c.MaxCells != MB/bytesPerCell {
		t.Errorf("max cells = %d", c.MaxCells)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadBadMaxMemory(t *testing.T) {
	isolate(t)
	t.Setenv("GALIGN_MAX_MEMORY", "lots")
	if _, err := Load(viper.New(), ""); err == nil {
		t.Fatal("expected error for invalid max-memory")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"positive gap", func(c *Config) { c.Scoring.Gap = 1 }},
		{"bad algorithm", func(c *Config) { c.Algorithm = "blast" }},
		{"no cells", func(c *Config) { c.MaxCells = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfig()
			tt.modify(c)
			if err := c.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestCheckPair(t *testing.T) {
	c := NewConfig()
	c.MaxCells = 100
	if err := c.CheckPair(8, 9); err != nil {
		t.Errorf("9x10 cells rejected: %v", err)
	}
	if err := c.CheckPair(10, 10); !errors.Is(err, ErrMatrixTooLarge) {
		t.Errorf("11x11 cells error = %v", err)
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"512":    512,
		"1KiB":   KB,
		"2 MiB":  2 * MB,
		"1GB":    1000 * 1000 * 1000,
		" 3GiB ": 3 * GB,
	}
	for in, want := range tests {
		got, err := ParseSize(in)
		if err != nil || got != want {
			t.Errorf("ParseSize(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	if _, err := ParseSize("big"); err == nil {
		t.Error("expected error")
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	NewConfig().ShowConfig(&buf)
	for _, want := range []string{"System Information:", "CPU cores:", "Configuration:", "Workers:", "match +2, mismatch -1, gap -1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in:\n%s", want, buf.String())
		}
	}
}
