package server

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/chazu/stairway/pkg/canvas"
	"github.com/chazu/stairway/pkg/canvas/raster"
	"github.com/chazu/stairway/pkg/canvas/sdfx"
	"github.com/chazu/stairway/pkg/design"
)

// --- Structs for Request Binding ---

type EvaluateRequest struct {
	Source string `json:"source"`
}

type PlanRequest struct {
	Source string   `json:"source"`
	Width  int      `json:"width"`  // png only, pixels
	Height int      `json:"height"` // png only, pixels
	Layers []string `json:"layers"` // empty means all layers
}

// --- Handler Functions ---

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, design.Defaults())
}

// Evaluate runs DSL source. Evaluation errors are part of the result and
// still answer 200, like the editor binding.
func (s *Server) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.app.Fork().Evaluate(req.Source))
}

// Compute lays out a JSON parameter set. Missing fields take their
// default values.
func (s *Server) Compute(c *gin.Context) {
	p := design.Defaults()
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result := s.app.Compute(p)
	if !result.OK() {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) PlanPNG(c *gin.Context) {
	req, layers, ok := s.bindPlan(c)
	if !ok {
		return
	}
	w, h := s.opts.PNGWidth, s.opts.PNGHeight
	if req.Width > 0 {
		w = req.Width
	}
	if req.Height > 0 {
		h = req.Height
	}
	if w > MaxImageSize || h > MaxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image size exceeds the maximum", "max": MaxImageSize})
		return
	}

	img := raster.New(w, h)
	if !s.render(c, canvas.Filter(img, layers...), req.Source) {
		return
	}
	var buf bytes.Buffer
	if err := img.Encode(&buf); err != nil {
		s.log.Error("png encode failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) PlanSVG(c *gin.Context) {
	s.planFile(c, "plan.svg", "image/svg+xml", sdfx.NewSVG)
}

func (s *Server) PlanDXF(c *gin.Context) {
	s.planFile(c, "plan.dxf", "application/dxf", sdfx.NewDXF)
}

// planFile renders through an sdfx file canvas in a temporary directory,
// since sdfx writes to paths only.
func (s *Server) planFile(c *gin.Context, name, contentType string, open func(string, ...canvas.Layer) *sdfx.File) {
	req, layers, ok := s.bindPlan(c)
	if !ok {
		return
	}
	dir, err := os.MkdirTemp("", "stairway-")
	if err != nil {
		s.log.Error("temp dir failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name)
	f := open(path, layers...)
	if !s.render(c, f, req.Source) {
		return
	}
	if err := f.Save(); err != nil {
		if errors.Is(err, sdfx.ErrEmpty) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no strokes on the selected layers"})
			return
		}
		s.log.Error("plan save failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

func (s *Server) bindPlan(c *gin.Context) (PlanRequest, []canvas.Layer, bool) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, nil, false
	}
	layers := make([]canvas.Layer, 0, len(req.Layers))
	for _, name := range req.Layers {
		l, err := canvas.ParseLayer(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return req, nil, false
		}
		layers = append(layers, l)
	}
	return req, layers, true
}

// render draws source onto cv and answers the request itself when there is
// nothing to send back.
func (s *Server) render(c *gin.Context, cv canvas.Canvas, source string) bool {
	result, n := s.app.Fork().Render(cv, source)
	if !result.OK() {
		c.JSON(http.StatusUnprocessableEntity, result)
		return false
	}
	if n == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "source describes no stair"})
		return false
	}
	return true
}
