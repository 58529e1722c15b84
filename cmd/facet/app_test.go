package main

import (
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/chazu/facet/pkg/engine"
)

func newTestApp() *App {
	return NewApp(engine.DefaultConfig(), nil)
}

// TestE2EStarExample exercises the full pipeline: Lisp source -> engine ->
// mesh -> per-face triangles and wireframe.
func TestE2EStarExample(t *testing.T) {
	app := newTestApp()

	source, err := os.ReadFile("../../examples/star.facet")
	if err != nil {
		t.Fatalf("failed to read star.facet: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	// Star (10 corners) and square (4 corners).
	if result.Verts != 14 || result.Edges != 14 || result.Faces != 2 {
		t.Errorf("counts = %d/%d/%d, want 14/14/2", result.Verts, result.Edges, result.Faces)
	}
	if len(result.Meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(result.Meshes))
	}

	wantTris := []int{8, 2}
	for i, m := range result.Meshes {
		if got := len(m.Indices) / 3; got != wantTris[i] {
			t.Errorf("mesh %d: %d triangles, want %d", i, got, wantTris[i])
		}
		if m.Face == "" {
			t.Errorf("mesh %d: no face name", i)
		}
		if m.Color == "" {
			t.Errorf("mesh %d: no color assigned", i)
		}
	}
	if result.Meshes[0].Color == result.Meshes[1].Color {
		t.Error("faces should get distinct colors")
	}

	// Four floats per edge.
	if len(result.Wireframe) != 14*4 {
		t.Errorf("wireframe has %d floats, want %d", len(result.Wireframe), 14*4)
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	result := newTestApp().Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}

	// Slices must encode as [] rather than null.
	out, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"meshes", "wireframe", "errors", "warnings"} {
		if decoded[key] == nil {
			t.Errorf("%s encoded as null", key)
		}
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	result := newTestApp().Evaluate("(square :size 2")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

// TestE2EMalformedFace ensures a rejected face surfaces as an eval error.
func TestE2EMalformedFace(t *testing.T) {
	result := newTestApp().Evaluate(`
(def a (vert 0 0))
(def b (vert 1 0))
(face [a b])
`)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for a two-sided face")
	}
	if result.Errors[0].Message == "" {
		t.Error("error message should not be empty")
	}
}

// TestE2ELooseEdges ensures edges without faces still reach the wireframe.
func TestE2ELooseEdges(t *testing.T) {
	result := newTestApp().Evaluate(`
(def a (vert 0 0))
(def b (vert 1 0))
(def c (vert 1 1))
(edge a b)
(edge b c)
`)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes, got %d", len(result.Meshes))
	}
	want := []float32{0, 0, 1, 0, 1, 0, 1, 1}
	if len(result.Wireframe) != len(want) {
		t.Fatalf("wireframe = %v, want %v", result.Wireframe, want)
	}
	for i := range want {
		if result.Wireframe[i] != want[i] {
			t.Fatalf("wireframe = %v, want %v", result.Wireframe, want)
		}
	}
}

// TestE2EKilledFaceDropsMesh ensures a killed face is not rendered while its
// edges remain in the wireframe.
func TestE2EKilledFaceDropsMesh(t *testing.T) {
	result := newTestApp().Evaluate(`
(square)
(kill-face (circle :segments 6))
`)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 1 {
		t.Errorf("expected 1 mesh, got %d", len(result.Meshes))
	}
	if got := len(result.Wireframe) / 4; got != 10 {
		t.Errorf("wireframe segments = %d, want 10", got)
	}
}

// TestE2ERapidEvaluation simulates an editor re-evaluating on every
// keystroke. Run with -race to detect data races.
func TestE2ERapidEvaluation(t *testing.T) {
	app := NewApp(engine.Config{Timeout: 10 * time.Second}, nil)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src := "(square)"
			if i%2 == 1 {
				src = "(star)"
			}
			result := app.Evaluate(src)
			for _, e := range result.Errors {
				// Overlapping evaluations may supersede each other.
				if e.Message != "evaluation superseded by newer request" {
					t.Errorf("unexpected error: %s", e.Message)
				}
			}
		}()
	}
	wg.Wait()
}
