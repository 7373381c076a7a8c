// Package config holds the collage run configuration, with optional TOML
// file loading and validation that runs before any processing starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// DefaultCellSize is the edge length in pixels of one grid cell.
const DefaultCellSize = 200

// DefaultMemoryLimit is the canvas size in bytes above which the
// compositor switches to the disk-backed canvas; 256 MiB holds a
// 64-megapixel 4-channel canvas.
const DefaultMemoryLimit int64 = 256 << 20

var (
	ErrMissingInput    = errors.New("input directory is required")
	ErrMissingOutput   = errors.New("output file is required")
	ErrInvalidCellSize = errors.New("cell_size must be positive")
	ErrInvalidWorkers  = errors.New("workers must be positive")
)

// Config drives one collage run.
type Config struct {
	InputDir    string `toml:"input_dir"`
	OutputFile  string `toml:"output_file"`
	CellSize    int    `toml:"cell_size"`
	MemoryLimit int64  `toml:"memory_limit_bytes"`
	Workers     int    `toml:"workers"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		CellSize:    DefaultCellSize,
		MemoryLimit: DefaultMemoryLimit,
		Workers:     runtime.GOMAXPROCS(0),
	}
}

// Load reads a TOML config file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce a collage. It runs
// before discovery, so a bad value never reaches the pipeline.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return ErrMissingInput
	}
	if c.OutputFile == "" {
		return ErrMissingOutput
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidCellSize, c.CellSize)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidWorkers, c.Workers)
	}
	if c.MemoryLimit <= 0 {
		return fmt.Errorf("memory_limit_bytes must be positive (got %d)", c.MemoryLimit)
	}
	return nil
}
