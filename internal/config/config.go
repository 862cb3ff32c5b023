// Package config provides configuration loading for snpgen.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"snpgen/internal/storage"
	"snpgen/internal/topology"
)

// ProjectConfigFile is read from the working directory when present.
const ProjectConfigFile = "snpgen.yaml"

// Config represents the complete snpgen configuration
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Generation GenerationConfig `yaml:"generation"`
	Store      StoreConfig      `yaml:"store"`
	Log        LogConfig        `yaml:"log"`
}

// OutputConfig configures where fixtures are written
type OutputConfig struct {
	// Root is the directory holding the family/version tree (default: output)
	Root string `yaml:"root"`
}

// GenerationConfig bounds the topology generators
type GenerationConfig struct {
	MaxChain int     `yaml:"max_chain"`
	MaxGraph int     `yaml:"max_graph"`
	Step     int     `yaml:"step"`
	Gap      float64 `yaml:"gap"`
}

// StoreConfig selects the fixture manifest backend
type StoreConfig struct {
	// Kind is memory or sqlite
	Kind string `yaml:"kind"`
	// Path is the sqlite database file
	Path string `yaml:"path"`
}

// LogConfig configures the process logger
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns the fixed generation constants
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Root: "output"},
		Generation: GenerationConfig{
			MaxChain: topology.DefaultMaxChain,
			MaxGraph: topology.DefaultMaxGraph,
			Step:     topology.DefaultStep,
			Gap:      topology.DefaultGap,
		},
		Store: StoreConfig{
			Kind: storage.KindMemory,
			Path: "snpgen.db",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Params converts the generation section for the topology package.
func (c *Config) Params() topology.Params {
	return topology.Params{
		MaxChain: c.Generation.MaxChain,
		MaxGraph: c.Generation.MaxGraph,
		Step:     c.Generation.Step,
		Gap:      c.Generation.Gap,
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Root == "" {
		return fmt.Errorf("output.root is required")
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	switch c.Store.Kind {
	case storage.KindMemory:
	case storage.KindSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for sqlite")
		}
	default:
		return fmt.Errorf("store.kind must be memory or sqlite, got %q", c.Store.Kind)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// LoadFromFile reads a YAML file on top of the defaults; fields absent from
// the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Load returns the defaults overlaid with path, or with ProjectConfigFile in
// the working directory when path is empty. A missing project file is not an
// error; a missing explicit path is.
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = ProjectConfigFile
	}

	loaded, err := LoadFromFile(path)
	switch {
	case err == nil:
		logger.Debug("Loaded config", slog.String("path", path))
		cfg = loaded
	case os.IsNotExist(err) && !explicit:
		logger.Debug("No project config found")
	default:
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
