package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HYPERGRAPH_"

// LookupFunc reports the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// Environment returns a lookup over the process environment backed by the
// given dotenv files. Process variables win over file entries and later
// files win over earlier ones. Missing files are skipped.
func Environment(files ...string) (LookupFunc, error) {
	vals := map[string]string{}
	for _, f := range files {
		m, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		maps.Copy(vals, m)
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vals[key]
		return v, ok
	}, nil
}

type override struct {
	key   string
	apply func(cfg *Config, v string) error
}

var overrides = []override{
	{"NODES", intField(func(c *Config) *int { return &c.Graph.Nodes })},
	{"CIRCLE_DIVISIONS", intField(func(c *Config) *int { return &c.Graph.CircleDivisions })},
	{"CIRCLE_RADIUS", floatField(func(c *Config) *float64 { return &c.Graph.CircleRadius })},
	{"EDGE_FILL_PERCENT", floatField(func(c *Config) *float64 { return &c.Graph.EdgeFillPercent })},
	{"SEED", func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		c.Graph.Seed = n
		return nil
	}},
	{"PASSES", intField(func(c *Config) *int { return &c.Simulation.Passes })},
	{"STEP_SIZE", floatField(func(c *Config) *float64 { return &c.Simulation.StepSize })},
	{"PREFERRED_DISTANCE", floatField(func(c *Config) *float64 { return &c.Simulation.PreferredDistance })},
	{"TICKS_PER_SECOND", floatField(func(c *Config) *float64 { return &c.Simulation.TicksPerSecond })},
	{"BACKGROUND", stringField(func(c *Config) *string { return &c.Render.Background })},
	{"SERVER_ADDR", stringField(func(c *Config) *string { return &c.Server.Addr })},
	{"LOG_LEVEL", stringField(func(c *Config) *string { return &c.Log.Level })},
	{"LOG_FORMAT", stringField(func(c *Config) *string { return &c.Log.Format })},
}

func intField(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func floatField(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func stringField(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

// ApplyEnv overrides cfg with every HYPERGRAPH_* variable lookup reports.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for _, o := range overrides {
		v, ok := lookup(EnvPrefix + o.key)
		if !ok || v == "" {
			continue
		}
		if err := o.apply(cfg, v); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, o.key, err)
		}
	}
	return nil
}
