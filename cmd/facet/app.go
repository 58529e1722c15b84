package main

import (
	"log/slog"

	"github.com/chazu/facet/pkg/bmesh"
	"github.com/chazu/facet/pkg/engine"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/kernel/earcut"
	"github.com/chazu/facet/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to faces.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App runs the script-to-mesh pipeline.
type App struct {
	engine       *engine.Engine
	triangulator kernel.Triangulator
	log          *slog.Logger
}

// MeshData is the JSON-serializable triangle mesh of a single face.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
	Face     string    `json:"face"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of one run.
type EvalResult struct {
	Verts     int             `json:"verts"`
	Edges     int             `json:"edges"`
	Faces     int             `json:"faces"`
	Meshes    []MeshData      `json:"meshes"`
	Wireframe []float32       `json:"wireframe"`
	Errors    []EvalErrorData `json:"errors"`
	Warnings  []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with the given engine settings and the
// ear-clipping triangulator.
func NewApp(cfg engine.Config, log *slog.Logger) *App {
	if log == nil {
		log = bmesh.Logger()
	}
	return &App{
		engine:       engine.NewEngineWithConfig(cfg),
		triangulator: earcut.New(),
		log:          log,
	}
}

// Evaluate takes Lisp source and returns mesh data + errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:    []MeshData{},
		Wireframe: []float32{},
		Errors:    []EvalErrorData{},
		Warnings:  []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a mesh.
	m, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the output format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	result.Verts, result.Edges, result.Faces = m.NumVerts(), m.NumEdges(), m.NumFaces()

	// Step 3: Broken invariants are reported but do not stop tessellation.
	for _, ie := range bmesh.Validate(m) {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: ie.Error()})
	}

	// Step 4: Triangulate each face with its own color.
	i := 0
	for f := range m.Faces() {
		tm, err := tessellate.TriangulateFace(m, f, a.triangulator)
		if err != nil {
			a.log.Warn("tessellate failed", "face", f, "err", err)
			result.Errors = append(result.Errors, EvalErrorData{
				Message: "tessellation failed: " + err.Error(),
			})
			continue
		}
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: tm.Vertices,
			Indices:  tm.Indices,
			Face:     tm.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
		i++
	}

	result.Wireframe = append(result.Wireframe, tessellate.Wireframe(m).Lines...)
	a.log.Debug("evaluate done", "meshes", len(result.Meshes), "warnings", len(result.Warnings))
	return result
}
