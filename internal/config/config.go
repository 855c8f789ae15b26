// Package config loads the runtime options from an optional YAML file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hailam/sidestack/internal/board"
)

// Options are the tunables around the engine. The engine's own constants
// (win length, depth budget, cache capacity) are part of its contract and
// not configurable.
type Options struct {
	BoardWidth  int    `yaml:"board_width"`
	BoardHeight int    `yaml:"board_height"`
	DefaultBot  string `yaml:"default_bot"`
	LogLevel    string `yaml:"log_level"`
	DataDir     string `yaml:"data_dir"` // empty means the platform default
}

// Default returns the built-in options: the standard 7×7 board and the
// smart bot.
func Default() Options {
	return Options{
		BoardWidth:  board.DefaultWidth,
		BoardHeight: board.DefaultHeight,
		DefaultBot:  "SMART",
		LogLevel:    "info",
	}
}

// Load reads options from the YAML file at path, layered over the
// defaults. A missing file is not an error; an empty path skips loading
// entirely.
func Load(path string) (Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return opts, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, errors.Wrapf(err, "parsing config %s", path)
	}
	if opts.BoardWidth < board.MinDim || opts.BoardHeight < board.MinDim {
		return opts, errors.Wrapf(board.ErrInvalidDimensions, "%dx%d", opts.BoardWidth, opts.BoardHeight)
	}
	return opts, nil
}
