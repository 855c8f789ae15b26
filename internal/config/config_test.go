package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hailam/sidestack/internal/board"
)

func TestDefault(t *testing.T) {
	opts := Default()
	if opts.BoardWidth != board.DefaultWidth || opts.BoardHeight != board.DefaultHeight {
		t.Errorf("default board = %dx%d", opts.BoardWidth, opts.BoardHeight)
	}
	if opts.DefaultBot != "SMART" {
		t.Errorf("default bot = %q", opts.DefaultBot)
	}
}

func TestLoadMissingFile(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts != Default() {
		t.Errorf("missing file should yield defaults, got %+v", opts)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "board_width: 9\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.BoardWidth != 9 {
		t.Errorf("board_width = %d, want 9", opts.BoardWidth)
	}
	if opts.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", opts.LogLevel)
	}
	// Untouched fields keep their defaults.
	if opts.BoardHeight != board.DefaultHeight {
		t.Errorf("board_height = %d, want %d", opts.BoardHeight, board.DefaultHeight)
	}
}

func TestLoadRejectsBadDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("board_width: 0\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if !stderrors.Is(err, board.ErrInvalidDimensions) {
		t.Errorf("err = %v, want ErrInvalidDimensions", err)
	}
}
