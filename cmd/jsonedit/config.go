package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/vango-dev/jsonedit/internal/config"
	verrors "github.com/vango-dev/jsonedit/internal/errors"
)

// loadConfig loads the file at path, then $JSONEDIT_CONFIG, then
// ./jsonedit.yaml. Only a missing ./jsonedit.yaml falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvConfig) != "":
		cfg, err = config.LoadEnv(".")
	default:
		cfg, err = config.Load(".")
		if verrors.HasCode(err, "E141") {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger described by cfg.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
