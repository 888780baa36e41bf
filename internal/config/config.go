// Package config loads qed-eval settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	qed "github.com/jamesainslie/go-qed"
	"github.com/jamesainslie/go-qed/internal/logging"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// DefaultPath is used for both corpora when no path is given.
const DefaultPath = "qed-dev.jsonlines"

// Formats lists the accepted report formats.
var Formats = []string{"text", "markdown", "json", "yaml", "proto"}

// Config holds evaluation settings. Zero-valued fields in a file keep their defaults.
type Config struct {
	Annotation   string  `yaml:"annotation"`
	Prediction   string  `yaml:"prediction"`
	Strict       bool    `yaml:"strict"`
	MinOverlapF1 float64 `yaml:"min_overlap_f1"`
	Format       string  `yaml:"format"`
	LogLevel     string  `yaml:"log_level"`
	LogFormat    string  `yaml:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Annotation:   DefaultPath,
		Prediction:   DefaultPath,
		MinOverlapF1: qed.DefaultMinOverlapF1,
		Format:       "text",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads a YAML file over Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.MinOverlapF1 <= 0 || c.MinOverlapF1 > 1 {
		return fmt.Errorf("%w: min_overlap_f1 must be in (0, 1], got %v", ErrInvalid, c.MinOverlapF1)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: format %q (want one of %v)", ErrInvalid, c.Format, Formats)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format %q (want text or json)", ErrInvalid, c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Annotation == "" || c.Prediction == "" {
		return fmt.Errorf("%w: annotation and prediction paths are required", ErrInvalid)
	}
	return nil
}

// Options returns scorer options for c.
func (c Config) Options() []qed.Option {
	return []qed.Option{qed.WithStrict(c.Strict), qed.WithMinOverlapF1(c.MinOverlapF1)}
}
