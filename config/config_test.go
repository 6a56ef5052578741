package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TFMV/hypergraph/models"
	"github.com/TFMV/hypergraph/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, models.DefaultParams(), cfg.Params())
	assert.Equal(t, physics.DefaultConfig(), cfg.Physics())
	assert.Equal(t, 600, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Zero(t, cfg.Graph.Seed)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "hypergraph.toml", `
[graph]
nodes = 12
edge_fill_percent = 30.0
seed = 7

[simulation]
passes = 5

[log]
format = "json"
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Graph.Nodes)
	assert.Equal(t, 30.0, cfg.Graph.EdgeFillPercent)
	assert.Equal(t, int64(7), cfg.Graph.Seed)
	assert.Equal(t, 5, cfg.Simulation.Passes)
	assert.Equal(t, "json", cfg.Log.Format)

	// untouched keys keep their defaults
	assert.Equal(t, 20, cfg.Graph.CircleDivisions)
	assert.Equal(t, 0.005, cfg.Simulation.StepSize)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "hypergraph.yaml", `
graph:
  nodes: 9
  circle_radius: 0.05
render:
  format: ascii
server:
  addr: ":9090"
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Graph.Nodes)
	assert.Equal(t, 0.05, cfg.Graph.CircleRadius)
	assert.Equal(t, "ascii", cfg.Render.Format)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{"unknown extension", "config.ini", "nodes=1", "unsupported config format"},
		{"bad toml", "bad.toml", "[graph\nnodes = ", "parsing"},
		{"too few divisions", "few.toml", "[graph]\ncircle_divisions = 2", "Graph.CircleDivisions: must be at least 3"},
		{"no nodes", "none.yaml", "graph:\n  nodes: 0", "Graph.Nodes: must be at least 1"},
		{"bad format", "fmt.toml", "[render]\nformat = \"png\"", "Render.Format: must be one of"},
		{"bad duration", "dur.toml", "[server]\nshutdown_timeout = \"soon\"", "ShutdownTimeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	cfg, err := Load("", mapLookup(map[string]string{
		"HYPERGRAPH_NODES":     "15",
		"HYPERGRAPH_SEED":      "-3",
		"HYPERGRAPH_STEP_SIZE": "0.01",
		"HYPERGRAPH_LOG_LEVEL": "debug",
		"HYPERGRAPH_PASSES":    "",
		"OTHER_NODES":          "99",
	}))
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Graph.Nodes)
	assert.Equal(t, int64(-3), cfg.Graph.Seed)
	assert.Equal(t, 0.01, cfg.Simulation.StepSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Simulation.Passes)

	err = ApplyEnv(Default(), mapLookup(map[string]string{"HYPERGRAPH_NODES": "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HYPERGRAPH_NODES")
}

func TestEnvironmentReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, ".env")
	second := filepath.Join(dir, ".env.local")
	require.NoError(t, os.WriteFile(first, []byte("HYPERGRAPH_TEST_A=1\nHYPERGRAPH_TEST_B=1\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("HYPERGRAPH_TEST_B=2\n"), 0o644))
	t.Setenv("HYPERGRAPH_TEST_C", "process")

	lookup, err := Environment(first, second, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	v, ok := lookup("HYPERGRAPH_TEST_A")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	v, _ = lookup("HYPERGRAPH_TEST_B")
	assert.Equal(t, "2", v)
	v, _ = lookup("HYPERGRAPH_TEST_C")
	assert.Equal(t, "process", v)
	_, ok = lookup("HYPERGRAPH_TEST_D")
	assert.False(t, ok)
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.toml", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Graph.Nodes = 33
			cfg.Render.ShowLabels = true
			path := filepath.Join(t.TempDir(), "nested", name)

			require.NoError(t, Save(cfg, path, false))
			loaded, err := Load(path, nil)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)

			assert.Error(t, Save(cfg, path, false))
			assert.NoError(t, Save(cfg, path, true))
		})
	}
}
