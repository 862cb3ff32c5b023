package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snpgen/internal/topology"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "output", cfg.Output.Root)
	assert.Equal(t, 1000, cfg.Generation.MaxChain)
	assert.Equal(t, 200, cfg.Generation.MaxGraph)
	assert.Equal(t, 10, cfg.Generation.Step)
	assert.Equal(t, 150.0, cfg.Generation.Gap)
	assert.Equal(t, "memory", cfg.Store.Kind)
	assert.Equal(t, topology.DefaultParams(), cfg.Params())
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", modify: func(c *Config) {}},
		{name: "sqlite store", modify: func(c *Config) { c.Store.Kind = "sqlite" }},
		{name: "debug level", modify: func(c *Config) { c.Log.Level = "DEBUG" }},
		{name: "missing output root", modify: func(c *Config) { c.Output.Root = "" }, wantErr: true},
		{name: "zero step", modify: func(c *Config) { c.Generation.Step = 0 }, wantErr: true},
		{name: "negative gap", modify: func(c *Config) { c.Generation.Gap = -1 }, wantErr: true},
		{name: "unknown store", modify: func(c *Config) { c.Store.Kind = "redis" }, wantErr: true},
		{name: "sqlite without path", modify: func(c *Config) { c.Store.Kind = "sqlite"; c.Store.Path = "" }, wantErr: true},
		{name: "bad level", modify: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snpgen.yaml")
	content := `
generation:
  max_chain: 40
store:
  kind: sqlite
  path: fixtures.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Generation.MaxChain)
	assert.Equal(t, 200, cfg.Generation.MaxGraph)
	assert.Equal(t, 10, cfg.Generation.Step)
	assert.Equal(t, "sqlite", cfg.Store.Kind)
	assert.Equal(t, "fixtures.db", cfg.Store.Path)
	assert.Equal(t, "output", cfg.Output.Root)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snpgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation: [unterminated"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snpgen.yaml")
	cfg := DefaultConfig()
	cfg.Output.Root = "fixtures"
	cfg.Generation.Gap = 75
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := Load(path, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadExplicitMissingPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snpgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation:\n  step: 0\n"), 0o644))

	_, err := Load(path, nil)
	assert.ErrorIs(t, err, topology.ErrInvalidParams)
}

func TestLoadWithoutProjectFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
