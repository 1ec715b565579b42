// Package sdfx implements canvas.Canvas with the SVG and DXF writers of
// the github.com/deadsy/sdfx render package.
package sdfx

import (
	"errors"
	"fmt"

	"github.com/chazu/stairway/pkg/canvas"
	"github.com/chazu/stairway/pkg/geom"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultSVGStyle is the stroke style of SVG output.
const DefaultSVGStyle = "fill:none;stroke:black;stroke-width:1"

// ErrEmpty is returned by Save when no stroke reached the file.
var ErrEmpty = errors.New("sdfx: nothing to save")

// Compile-time interface check.
var _ canvas.Canvas = (*File)(nil)

// lineWriter is the part of render.SVG and render.DXF used here.
type lineWriter interface {
	Line(p0, p1 v2.Vec)
	Save() error
}

// dxfWriter adapts render.DXF, which takes sdf.Line2 segments.
type dxfWriter struct{ *render.DXF }

var (
	_ lineWriter = (*render.SVG)(nil)
	_ lineWriter = dxfWriter{}
)

func (d dxfWriter) Line(p0, p1 v2.Vec) { d.DXF.Line(&sdf.Line2{p0, p1}) }

// File is a canvas backed by an SVG or DXF file. sdfx writes a single
// style, so layers are selected rather than styled.
type File struct {
	w      lineWriter
	format string
	path   string
	layers map[canvas.Layer]bool
	lines  int
}

// NewSVG returns a canvas writing the given layers to an SVG file at path.
// No layers means all layers.
func NewSVG(path string, layers ...canvas.Layer) *File {
	return newFile(render.NewSVG(path, DefaultSVGStyle), "svg", path, layers)
}

// NewDXF returns a canvas writing the given layers to a DXF file at path.
// No layers means all layers.
func NewDXF(path string, layers ...canvas.Layer) *File {
	return newFile(dxfWriter{render.NewDXF(path)}, "dxf", path, layers)
}

func newFile(w lineWriter, format, path string, layers []canvas.Layer) *File {
	if len(layers) == 0 {
		layers = canvas.AllLayers()
	}
	f := &File{w: w, format: format, path: path, layers: make(map[canvas.Layer]bool)}
	for _, l := range layers {
		f.layers[l] = true
	}
	return f
}

// Line adds a stroke when its layer is selected. Degenerate strokes are
// dropped.
func (f *File) Line(layer canvas.Layer, p0, p1 geom.Vec) {
	if !f.layers[layer] || geom.Near(p0, p1, geom.Epsilon) {
		return
	}
	f.w.Line(p0, p1)
	f.lines++
}

// Lines returns the number of strokes written.
func (f *File) Lines() int { return f.lines }

// Save writes the file.
func (f *File) Save() error {
	if f.lines == 0 {
		return fmt.Errorf("%s %s: %w", f.format, f.path, ErrEmpty)
	}
	if err := f.w.Save(); err != nil {
		return fmt.Errorf("sdfx: save %s %s: %w", f.format, f.path, err)
	}
	return nil
}
