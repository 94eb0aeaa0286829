package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimir/internal/matchtree"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 6, cfg.IW.MaxArity)
	assert.Equal(t, 64, cfg.IW.InitialTableAtoms)
	assert.Equal(t, ModeGrounded, cfg.Mode)
}

func TestConfigSaveLoad(t *testing.T) {
	t.Setenv("MIMIR_MAX_TIME_MS", "")
	t.Setenv("MIMIR_MAX_ARITY", "")
	t.Setenv("MIMIR_MODE", "")
	t.Setenv("MIMIR_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Mode = ModeLifted
	cfg.Algorithm = AlgorithmSIW

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeLifted, loaded.Mode)
	assert.Equal(t, AlgorithmSIW, loaded.Algorithm)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().IW.MaxArity, cfg.IW.MaxArity)
}

func TestMatchTreeConfigResolve(t *testing.T) {
	c := MatchTreeConfig{SplitMetric: "FREQUENCY", SplitStrategy: "STATIC", OptimizationDirection: "MIN", MaxNumNodes: 10}
	got, err := c.Resolve()
	require.NoError(t, err)
	want := matchtree.Config{SplitMetric: matchtree.Frequency, SplitStrategy: matchtree.Static, OptimizationDirection: matchtree.Min, MaxNumNodes: 10}
	assert.Equal(t, want, got)
}

func TestMatchTreeConfigResolveRejectsUnknownMetric(t *testing.T) {
	c := MatchTreeConfig{SplitMetric: "BOGUS"}
	_, err := c.Resolve()
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MIMIR_MAX_ARITY", "3")
	t.Setenv("MIMIR_MODE", "lifted")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.IW.MaxArity)
	assert.Equal(t, 3, cfg.SIW.MaxArity)
	assert.Equal(t, ModeLifted, cfg.Mode)
}
