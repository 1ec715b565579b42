// Command stairway lays out the steps of a stair described in the stairway
// DSL and renders its plan, or serves the pipeline over HTTP.
//
//	stairway -config stairway.yaml -o plan.svg examples/quarter_turn.stair
//	stairway -serve -addr :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chazu/stairway/pkg/app"
	"github.com/chazu/stairway/pkg/canvas"
	"github.com/chazu/stairway/pkg/canvas/raster"
	"github.com/chazu/stairway/pkg/canvas/sdfx"
	"github.com/chazu/stairway/pkg/config"
	"github.com/chazu/stairway/pkg/server"
	"github.com/chazu/stairway/pkg/stair"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "stairway: %v\n", err)
		os.Exit(1)
	}
}

// options are the parsed command line.
type options struct {
	configPath string
	output     string
	format     string
	serve      bool
	addr       string
	verbose    bool
	source     string // input file, empty for the configured stair
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("stairway", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&o.output, "o", "", "output file; the extension selects the format")
	fs.StringVar(&o.format, "format", "", "output format: svg, dxf or png")
	fs.BoolVar(&o.serve, "serve", false, "serve the HTTP API instead of rendering")
	fs.StringVar(&o.addr, "addr", "", "listen address for -serve")
	fs.BoolVar(&o.verbose, "v", false, "log at debug level")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: stairway [flags] [file.stair]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		o.source = fs.Arg(0)
	default:
		return o, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	return o, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}

	level := cfg.LogLevel()
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	stair.SetLogger(logger)

	layers, err := cfg.Layers()
	if err != nil {
		return err
	}
	a := app.NewApp(
		app.WithTimeout(cfg.EngineTimeout()),
		app.WithLayers(layers...),
		app.WithLogger(logger),
	)

	if o.serve {
		addr := cfg.Server.Addr
		if o.addr != "" {
			addr = o.addr
		}
		srv := server.New(a, server.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			PNGWidth:       cfg.Output.PNGWidth,
			PNGHeight:      cfg.Output.PNGHeight,
			Logger:         logger,
		})
		return srv.ListenAndServe(ctx, addr)
	}
	return render(a, cfg, o, stdout, logger)
}

// target is a plan output file.
type target interface {
	canvas.Canvas
	Save(path string) error
}

// sdfxTarget adapts an sdfx file, which is bound to its path when created.
type sdfxTarget struct{ *sdfx.File }

func (t sdfxTarget) Save(string) error { return t.File.Save() }

func render(a *app.App, cfg *config.Config, o options, stdout io.Writer, logger *slog.Logger) error {
	format := cfg.Output.Format
	if o.format != "" {
		format = o.format
	}
	path := o.output
	if path == "" {
		path = cfg.Output.Path
	}
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); o.format == "" && isFormat(ext) {
		format = ext
	}
	if !isFormat(format) {
		return fmt.Errorf("unknown output format %q", format)
	}
	if path == "" {
		path = outputPath(o.source, format)
	}

	var t target
	switch format {
	case "svg":
		t = sdfxTarget{sdfx.NewSVG(path)}
	case "dxf":
		t = sdfxTarget{sdfx.NewDXF(path)}
	case "png":
		t = raster.New(cfg.Output.PNGWidth, cfg.Output.PNGHeight)
	}

	var result app.EvalResult
	if o.source == "" {
		logger.Debug("no input file, using the configured stair")
		result, _ = a.RenderParams(t, cfg.Stair)
	} else {
		src, err := os.ReadFile(o.source)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		result, _ = a.Render(t, string(src))
	}

	for _, w := range result.Warnings {
		logger.Warn(w.Message, "field", w.Field)
	}
	if !result.OK() {
		for _, e := range result.Errors {
			logger.Error(e.Message, "line", e.Line, "col", e.Col, "field", e.Field)
		}
		return fmt.Errorf("%d error(s)", len(result.Errors))
	}
	if result.Values == nil {
		return errors.New("input describes no stair")
	}

	if err := t.Save(path); err != nil {
		return err
	}
	printSummary(stdout, result, path)
	return nil
}

func isFormat(s string) bool {
	return s == "svg" || s == "dxf" || s == "png"
}

// outputPath derives the output file from the input file name.
func outputPath(source, format string) string {
	if source == "" {
		return "stairway." + format
	}
	return strings.TrimSuffix(source, filepath.Ext(source)) + "." + format
}

func printSummary(w io.Writer, r app.EvalResult, path string) {
	v := r.Values
	fmt.Fprintf(w, "steps        %d (comfortable %d-%d)\n", v.StepNumber, v.StepNumberMini, v.StepNumberMaxi)
	fmt.Fprintf(w, "riser        %.1f mm\n", v.StepHeight)
	fmt.Fprintf(w, "going        %.1f mm\n", v.StepGoing)
	fmt.Fprintf(w, "blondel      %.1f mm\n", v.BlondelLaw)
	fmt.Fprintf(w, "climb angle  %.1f deg\n", v.ClimbAngle)
	fmt.Fprintf(w, "walkpath     %.1f mm\n", v.TotalLength)
	fmt.Fprintf(w, "treads       %d\n", len(r.Steps))
	fmt.Fprintf(w, "wrote        %s\n", path)
}
