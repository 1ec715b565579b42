package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/chazu/stairway/pkg/canvas"
	"github.com/chazu/stairway/pkg/geom"
)

func isBackground(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestImageStrokes(t *testing.T) {
	p := New(200, 200)
	pts := []geom.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	for i := range pts {
		p.Line(canvas.LayerBoundary, pts[i], pts[(i+1)%len(pts)])
	}
	p.Line(canvas.LayerWalk, geom.Vec{X: 50, Y: 0}, geom.Vec{X: 50, Y: 100})

	img := p.Image()
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Fatalf("size = %v", img.Bounds())
	}

	tests := []struct {
		name   string
		x, y   int
		wantBG bool
	}{
		{"corner outside the plan", 2, 2, true},
		{"inside the square", 50, 50, true},
		{"walk line", 100, 100, false},
		{"left boundary", 10, 100, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isBackground(img.At(tc.x, tc.y)); got != tc.wantBG {
				t.Errorf("pixel (%d, %d) background = %v, want %v", tc.x, tc.y, got, tc.wantBG)
			}
		})
	}
}

func TestImageEmpty(t *testing.T) {
	img := New(20, 10).Image()
	if !isBackground(img.At(5, 5)) {
		t.Error("empty canvas is not blank")
	}
}

func TestEncode(t *testing.T) {
	p := New(64, 32)
	p.Line(canvas.LayerBalancing, geom.Vec{X: 0, Y: 0}, geom.Vec{X: 10, Y: 5})

	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Errorf("decoded size = %v", img.Bounds())
	}

	if err := New(0, 10).Encode(&buf); err == nil {
		t.Error("Encode() accepted a zero-width image")
	}
}

func TestSave(t *testing.T) {
	p := New(16, 16)
	p.Line(canvas.LayerWalk, geom.Vec{X: 0, Y: 0}, geom.Vec{X: 1, Y: 1})
	if err := p.Save(filepath.Join(t.TempDir(), "plan.png")); err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
}
