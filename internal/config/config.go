package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-prototxt"
	"github.com/KimNorgaard/go-prototxt/graph"
	"github.com/KimNorgaard/go-prototxt/internal/logging"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".prototxt.yaml"

// Config represents the structure of .prototxt.yaml.
type Config struct {
	Indent   int          `yaml:"indent"`
	Escapes  string       `yaml:"escapes"`
	MaxDepth int          `yaml:"max_depth"`
	LogLevel string       `yaml:"log_level"`
	Color    string       `yaml:"color"`
	Graph    graph.Config `yaml:"graph"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Indent:   2,
		Escapes:  "decode",
		LogLevel: "warn",
		Color:    "auto",
		Graph:    graph.DefaultConfig(),
	}
}

// Load reads the configuration at path on top of Default. A missing file
// is not an error unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative")
	}
	if _, err := c.escapeMode(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	return nil
}

func (c Config) escapeMode() (prototxt.EscapeMode, error) {
	switch strings.ToLower(c.Escapes) {
	case "", "decode":
		return prototxt.DecodeEscapes, nil
	case "legacy":
		return prototxt.LegacyEscapes, nil
	case "raw":
		return prototxt.RawStrings, nil
	}
	return 0, fmt.Errorf("escapes must be decode, legacy or raw, got %q", c.Escapes)
}

// Options converts the configuration into library options.
func (c Config) Options(logger *slog.Logger) ([]prototxt.Option, error) {
	mode, err := c.escapeMode()
	if err != nil {
		return nil, err
	}
	opts := []prototxt.Option{
		prototxt.Indent(c.Indent),
		prototxt.Escapes(mode),
	}
	if c.MaxDepth > 0 {
		opts = append(opts, prototxt.MaxDepth(c.MaxDepth))
	}
	if logger != nil {
		opts = append(opts, prototxt.WithLogger(logger))
	}
	return opts, nil
}

// Logger returns a logger at the configured level.
func (c Config) Logger() *slog.Logger {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return logging.New(level)
}
