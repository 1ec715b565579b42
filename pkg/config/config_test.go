package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chazu/stairway/pkg/canvas"
	"github.com/chazu/stairway/pkg/design"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stairway.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
output:
  format: PNG
  path: out/plan.png
  png_width: 800
  png_height: 600
  layers: [boundary, balancing]
server:
  addr: 127.0.0.1:9000
  allowed_origins: ["http://localhost:5173"]
engine:
  timeout_ms: 1500
stair:
  height: 2750
  angle: -90
  riser: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}

	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
	if cfg.Output.Format != "png" {
		t.Errorf("Format = %q, want png", cfg.Output.Format)
	}
	if cfg.Output.PNGWidth != 800 || cfg.Output.PNGHeight != 600 {
		t.Errorf("png size = %dx%d", cfg.Output.PNGWidth, cfg.Output.PNGHeight)
	}
	if cfg.EngineTimeout() != 1500*time.Millisecond {
		t.Errorf("EngineTimeout() = %v", cfg.EngineTimeout())
	}
	layers, err := cfg.Layers()
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(layers) != 2 || layers[0] != canvas.LayerBoundary || layers[1] != canvas.LayerBalancing {
		t.Errorf("Layers() = %v", layers)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("server = %+v", cfg.Server)
	}

	want := design.Defaults()
	want.Height, want.Angle, want.Riser = 2750, -90, true
	if cfg.Stair != want {
		t.Errorf("Stair = %+v, want defaults with overrides", cfg.Stair)
	}
}

func TestLoadEmptyUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	def := Default()
	if cfg.Output.Format != def.Output.Format || cfg.Server.Addr != def.Server.Addr ||
		cfg.EngineTimeout() != 5*time.Second || cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Stair != design.Defaults() {
		t.Errorf("Stair = %+v, want defaults", cfg.Stair)
	}
	layers, _ := cfg.Layers()
	if len(layers) != len(canvas.AllLayers()) {
		t.Errorf("Layers() = %v, want all", layers)
	}
}

func TestLoadZeroValuesGetDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
log: {level: ""}
output: {format: "", png_width: 0}
engine: {timeout_ms: -3}
`))
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Output.Format != "svg" ||
		cfg.Output.PNGWidth != 1024 || cfg.Engine.TimeoutMs != 5000 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"bad yaml", "log: [", "unmarshal yaml"},
		{"bad format", "output: {format: pdf}", "output.format"},
		{"bad level", "log: {level: loud}", "log.level"},
		{"bad layer", "output: {layers: [walk, stringer]}", "output.layers"},
		{"huge png", "output: {png_width: 10000}", "8192"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error = %v, want containing %q", err, tc.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
