// Package config holds galign's runtime settings, merged by viper from
// defaults, an optional galign.yaml, GALIGN_* environment variables and
// command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/scttfrdmn/galign-go/pkg/align"
)

// ErrMatrixTooLarge is returned by CheckPair when a pair's score matrix
// exceeds the configured cell budget
var ErrMatrixTooLarge = errors.New("alignment matrix too large")

// bytesPerCell is the size of one matrix cell
const bytesPerCell = 8

// ServerConfig holds settings for galign serve
type ServerConfig struct {
	// listen address
	Addr string `mapstructure:"addr"`
}

// Config is the root-level settings struct
type Config struct {
	// scoring used when a command does not override it
	Scoring align.Scoring `mapstructure:"scoring"`

	// default algorithm name
	Algorithm string `mapstructure:"algorithm"`

	// batch alignment workers
	Workers int `mapstructure:"workers"`

	// memory budget for one score matrix, e.g. "2GiB"; empty means 25% of RAM
	MaxMemory string `mapstructure:"max-memory"`

	// explicit cell budget; 0 derives it from MaxMemory
	MaxCells int64 `mapstructure:"max-cells"`

	Progress bool         `mapstructure:"progress"`
	Quiet    bool         `mapstructure:"quiet"`
	Server   ServerConfig `mapstructure:"server"`

	maxMemoryBytes int64
}

// NewConfig returns a Config with smart defaults derived from the host
func NewConfig() *Config {
	mem := getSystemMemory()
	c := &Config{
		Scoring:   align.DefaultScoring(),
		Algorithm: align.NeedlemanWunsch.String(),
		Workers:   detectOptimalWorkers(),
		Progress:  true,
		Server:    ServerConfig{Addr: ":8080"},
	}
	c.maxMemoryBytes = mem.Total / 4
	c.MaxMemory = humanize.IBytes(uint64(c.maxMemoryBytes))
	c.MaxCells = c.maxMemoryBytes / bytesPerCell
	return c
}

// setDefaults registers every NewConfig value with v
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("scoring.match", c.Scoring.Match)
	v.SetDefault("scoring.mismatch", c.Scoring.Mismatch)
	v.SetDefault("scoring.gap", c.Scoring.Gap)
	v.SetDefault("algorithm", c.Algorithm)
	v.SetDefault("workers", c.Workers)
	v.SetDefault("max-memory", "")
	v.SetDefault("max-cells", 0)
	v.SetDefault("progress", c.Progress)
	v.SetDefault("quiet", c.Quiet)
	v.SetDefault("server.addr", c.Server.Addr)
}

// Load reads settings into a Config. An explicit path must exist;
// otherwise galign.yaml is looked up in the working directory and
// $HOME/.config/galign and may be absent. A .env file in the working
// directory is loaded into the environment first.
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	defaults := NewConfig()
	setDefaults(v, defaults)

	v.SetEnvPrefix("GALIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("galign")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/galign")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if c.MaxMemory == "" {
		c.maxMemoryBytes = defaults.maxMemoryBytes
		c.MaxMemory = defaults.MaxMemory
	} else {
		size, err := ParseSize(c.MaxMemory)
		if err != nil {
			return nil, fmt.Errorf("invalid max-memory: %w", err)
		}
		c.maxMemoryBytes = size
	}
	if c.MaxCells <= 0 {
		c.MaxCells = c.maxMemoryBytes / bytesPerCell
	}

	return c, nil
}

// Validate checks configuration and warns about potential issues
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1")
	}
	if c.Workers > 64 {
		fmt.Fprintf(os.Stderr, "Warning: Workers > 64 may cause diminishing returns\n")
	}
	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	if _, err := align.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if c.MaxCells <= 0 {
		return fmt.Errorf("max cells must be > 0")
	}

	mem := getSystemMemory()
	if c.MaxCells*bytesPerCell > mem.Available {
		fmt.Fprintf(os.Stderr, "Warning: matrix budget %s exceeds available memory %s\n",
			humanize.IBytes(uint64(c.MaxCells*bytesPerCell)), humanize.IBytes(uint64(mem.Available)))
	}
	return nil
}

// CheckPair fails with ErrMatrixTooLarge when aligning sequences of
// lengths m and n would exceed MaxCells
func (c *Config) CheckPair(m, n int) error {
	if cells := align.Cells(m, n); cells > c.MaxCells {
		return fmt.Errorf("%w: %dx%d needs %s cells, limit is %s",
			ErrMatrixTooLarge, m, n, humanize.Comma(cells), humanize.Comma(c.MaxCells))
	}
	return nil
}

// ShowConfig prints the host resources and the effective configuration
func (c *Config) ShowConfig(w io.Writer) {
	mem := getSystemMemory()

	fmt.Fprintf(w, "System Information:\n")
	fmt.Fprintf(w, "  Total RAM: %s\n", humanize.IBytes(uint64(mem.Total)))
	fmt.Fprintf(w, "  Available RAM: %s\n", humanize.IBytes(uint64(mem.Available)))

	totalCores := runtime.NumCPU()
	optimalWorkers := detectOptimalWorkers()
	if optimalWorkers < totalCores {
		fmt.Fprintf(w, "  CPU cores: %d total (%d performance, %d efficiency)\n",
			totalCores, optimalWorkers, totalCores-optimalWorkers)
	} else {
		fmt.Fprintf(w, "  CPU cores: %d\n", totalCores)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Configuration:\n")
	fmt.Fprintf(w, "  Algorithm: %s\n", c.Algorithm)
	fmt.Fprintf(w, "  Scoring: match %+d, mismatch %+d, gap %+d\n", c.Scoring.Match, c.Scoring.Mismatch, c.Scoring.Gap)
	fmt.Fprintf(w, "  Workers: %d\n", c.Workers)
	fmt.Fprintf(w, "  Matrix budget: %s (%s cells)\n", c.MaxMemory, humanize.Comma(c.MaxCells))
	fmt.Fprintf(w, "  Progress: %t\n", c.Progress && !c.Quiet)
	fmt.Fprintf(w, "  Server address: %s\n", c.Server.Addr)
	fmt.Fprintf(w, "\n")
}

// ParseSize parses a human size such as "512MB", "2GiB" or "1G" into bytes
func ParseSize(s string) (int64, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(n), nil
}
