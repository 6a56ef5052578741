// Package config loads, validates and saves hypergraph configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/TFMV/hypergraph/models"
	"github.com/TFMV/hypergraph/physics"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the file written by `config init` when no path is given.
const DefaultPath = "hypergraph.toml"

// Config holds hypergraph configuration.
type Config struct {
	Graph      GraphConfig      `toml:"graph" yaml:"graph"`
	Simulation SimulationConfig `toml:"simulation" yaml:"simulation"`
	Window     WindowConfig     `toml:"window" yaml:"window"`
	Render     RenderConfig     `toml:"render" yaml:"render"`
	Server     ServerConfig     `toml:"server" yaml:"server"`
	Log        LogConfig        `toml:"log" yaml:"log"`
}

// GraphConfig controls random graph generation.
type GraphConfig struct {
	Nodes           int     `toml:"nodes" yaml:"nodes" validate:"min=1,max=5000"`
	CircleDivisions int     `toml:"circle_divisions" yaml:"circle_divisions" validate:"min=3,max=360"`
	CircleRadius    float64 `toml:"circle_radius" yaml:"circle_radius" validate:"gt=0,lt=1"`
	EdgeFillPercent float64 `toml:"edge_fill_percent" yaml:"edge_fill_percent"`
	Seed            int64   `toml:"seed" yaml:"seed"`
}

// SimulationConfig controls the relaxation.
type SimulationConfig struct {
	Passes            int     `toml:"passes" yaml:"passes" validate:"min=1,max=10000"`
	StepSize          float64 `toml:"step_size" yaml:"step_size" validate:"gt=0,lte=1"`
	PreferredDistance float64 `toml:"preferred_distance" yaml:"preferred_distance" validate:"gt=0"`
	TicksPerSecond    float64 `toml:"ticks_per_second" yaml:"ticks_per_second" validate:"gt=0,lte=240"`
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width" validate:"min=100"`
	Height int    `toml:"height" yaml:"height" validate:"min=100"`
	Title  string `toml:"title" yaml:"title"`
}

// RenderConfig controls exports and the clear color.
type RenderConfig struct {
	Format         string  `toml:"format" yaml:"format" validate:"oneof=svg ascii json dot"`
	Background     string  `toml:"background" yaml:"background" validate:"hexcolor"`
	NoiseIntensity float64 `toml:"noise_intensity" yaml:"noise_intensity" validate:"min=0,max=1"`
	ShowLabels     bool    `toml:"show_labels" yaml:"show_labels"`
}

// ServerConfig controls the headless HTTP server.
type ServerConfig struct {
	Addr            string `toml:"addr" yaml:"addr" validate:"required,hostname_port"`
	ShutdownTimeout string `toml:"shutdown_timeout" yaml:"shutdown_timeout" validate:"required"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" yaml:"format" validate:"oneof=text json"`
}

// Default returns the default configuration.
func Default() *Config {
	params := models.DefaultParams()
	sim := physics.DefaultConfig()
	return &Config{
		Graph: GraphConfig{
			Nodes:           params.NodeCount,
			CircleDivisions: params.CircleDivision,
			CircleRadius:    params.CircleRadius,
			EdgeFillPercent: params.EdgeFillPercent,
			Seed:            0,
		},
		Simulation: SimulationConfig{
			Passes:            sim.Passes,
			StepSize:          sim.StepSize,
			PreferredDistance: sim.PreferredDistance,
			TicksPerSecond:    60,
		},
		Window: WindowConfig{Width: 600, Height: 600, Title: "hypergraph"},
		Render: RenderConfig{Format: "svg", Background: "#000000"},
		Server: ServerConfig{Addr: "localhost:8080", ShutdownTimeout: "5s"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Params returns the graph generation parameters.
func (c *Config) Params() models.Params {
	return models.Params{
		NodeCount:       c.Graph.Nodes,
		CircleDivision:  c.Graph.CircleDivisions,
		CircleRadius:    c.Graph.CircleRadius,
		EdgeFillPercent: c.Graph.EdgeFillPercent,
	}
}

// Physics returns the relaxation constants.
func (c *Config) Physics() physics.Config {
	return physics.Config{
		Passes:            c.Simulation.Passes,
		StepSize:          c.Simulation.StepSize,
		PreferredDistance: c.Simulation.PreferredDistance,
	}
}

// Load reads the config file at path over the defaults, applies environment
// overrides from lookup and validates the result. An empty path skips the
// file. A nil lookup skips the overrides.
func Load(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, err
		}
	}

	if lookup != nil {
		if err := ApplyEnv(cfg, lookup); err != nil {
			return nil, err
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// Marshal encodes cfg as TOML, or YAML when path ends in .yaml or .yml.
func Marshal(cfg *Config, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	default:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// Save writes the config to path, refusing to overwrite an existing file
// unless force is set.
func Save(cfg *Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	data, err := Marshal(cfg, path)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
