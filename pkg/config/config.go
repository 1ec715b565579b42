// Package config loads the YAML configuration of the stairway tool.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chazu/stairway/pkg/canvas"
	"github.com/chazu/stairway/pkg/design"
	"gopkg.in/yaml.v3"
)

// LogConfig selects the log output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// OutputConfig describes the rendered plan.
type OutputConfig struct {
	Format    string   `yaml:"format"`     // svg, dxf or png
	Path      string   `yaml:"path"`       // output file; empty derives it from the input
	PNGWidth  int      `yaml:"png_width"`  // pixels
	PNGHeight int      `yaml:"png_height"` // pixels
	Layers    []string `yaml:"layers"`     // empty means all layers
}

// ServerConfig configures the HTTP binding.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// EngineConfig configures the DSL engine.
type EngineConfig struct {
	TimeoutMs int `yaml:"timeout_ms"`
}

// Config aggregates all application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
	Engine EngineConfig `yaml:"engine"`

	// Stair is used when no stair source is given.
	Stair design.Params `yaml:"stair"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Output: OutputConfig{Format: "svg", PNGWidth: 1024, PNGHeight: 1024},
		Server: ServerConfig{Addr: ":8080", AllowedOrigins: []string{"*"}},
		Engine: EngineConfig{TimeoutMs: 5000},
		Stair:  design.Defaults(),
	}
}

// Load reads a YAML file, fills defaults for missing values and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	if cfg.Output.Format == "" {
		cfg.Output.Format = "svg"
	}
	if cfg.Output.PNGWidth <= 0 {
		cfg.Output.PNGWidth = 1024
	}
	if cfg.Output.PNGHeight <= 0 {
		cfg.Output.PNGHeight = 1024
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Engine.TimeoutMs <= 0 {
		cfg.Engine.TimeoutMs = 5000
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have no sensible default.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Output.Format {
	case "svg", "dxf", "png":
	default:
		return fmt.Errorf("output.format must be svg, dxf or png, got %q", c.Output.Format)
	}
	if c.Output.PNGWidth > 8192 || c.Output.PNGHeight > 8192 {
		return fmt.Errorf("output.png_width and png_height must be <= 8192, got %dx%d",
			c.Output.PNGWidth, c.Output.PNGHeight)
	}
	if _, err := c.Layers(); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	l, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// EngineTimeout returns the DSL evaluation limit.
func (c *Config) EngineTimeout() time.Duration {
	return time.Duration(c.Engine.TimeoutMs) * time.Millisecond
}

// Layers returns the plan layers to draw.
func (c *Config) Layers() ([]canvas.Layer, error) {
	if len(c.Output.Layers) == 0 {
		return canvas.AllLayers(), nil
	}
	out := make([]canvas.Layer, 0, len(c.Output.Layers))
	for _, name := range c.Output.Layers {
		l, err := canvas.ParseLayer(name)
		if err != nil {
			return nil, fmt.Errorf("output.layers: %w", err)
		}
		out = append(out, l)
	}
	return out, nil
}
