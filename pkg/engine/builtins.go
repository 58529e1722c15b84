package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/facet/pkg/bmesh"
	"github.com/chazu/facet/pkg/shapes"
	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing mesh handles through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVert wraps a bmesh.VertID so it can be passed between builtins.
type sexpVert struct {
	id bmesh.VertID
}

func (v *sexpVert) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vert %s)", v.id)
}
func (v *sexpVert) Type() *zygo.RegisteredType { return nil }

// sexpEdge wraps a bmesh.EdgeID.
type sexpEdge struct {
	id bmesh.EdgeID
}

func (e *sexpEdge) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(edge %s)", e.id)
}
func (e *sexpEdge) Type() *zygo.RegisteredType { return nil }

// sexpFace wraps a bmesh.FaceID.
type sexpFace struct {
	id bmesh.FaceID
}

func (f *sexpFace) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(face %s)", f.id)
}
func (f *sexpFace) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value is a flag.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// floatKW returns the keyword value as a float64, or def when absent.
func (a kwArgs) floatKW(name string, def float64) (float64, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// intKW returns the keyword value as an int, or def when absent.
func (a kwArgs) intKW(name string, def int) (int, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toPoint extracts a position from a two-element list or array of numbers.
func toPoint(s zygo.Sexp) (v2.Vec, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return v2.Vec{}, err
	}
	if len(items) != 2 {
		return v2.Vec{}, fmt.Errorf("expected [x y], got %d elements", len(items))
	}
	return toXY(items[0], items[1])
}

func toXY(sx, sy zygo.Sexp) (v2.Vec, error) {
	x, err := toFloat64(sx)
	if err != nil {
		return v2.Vec{}, err
	}
	y, err := toFloat64(sy)
	if err != nil {
		return v2.Vec{}, err
	}
	return v2.Vec{X: x, Y: y}, nil
}

func toVert(s zygo.Sexp) (bmesh.VertID, error) {
	if ref, ok := s.(*sexpVert); ok {
		return ref.id, nil
	}
	return bmesh.VertID{}, fmt.Errorf("expected vert reference, got %T (%s)", s, s.SexpString(nil))
}

func toEdge(s zygo.Sexp) (bmesh.EdgeID, error) {
	if ref, ok := s.(*sexpEdge); ok {
		return ref.id, nil
	}
	return bmesh.EdgeID{}, fmt.Errorf("expected edge reference, got %T (%s)", s, s.SexpString(nil))
}

func toFace(s zygo.Sexp) (bmesh.FaceID, error) {
	if ref, ok := s.(*sexpFace); ok {
		return ref.id, nil
	}
	return bmesh.FaceID{}, fmt.Errorf("expected face reference, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// mapList converts every element of a list or array with conv.
func mapList[T any](s zygo.Sexp, conv func(zygo.Sexp) (T, error)) ([]T, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := conv(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all facet DSL builtins into a zygomys environment.
// The builtins operate on the provided mesh, populating it during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, m *bmesh.Mesh) {

	// -----------------------------------------------------------------------
	// (vert) or (vert x y)
	// -----------------------------------------------------------------------
	env.AddFunction("vert", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		switch len(args) {
		case 0:
			return &sexpVert{id: m.CreateVert()}, nil
		case 2:
			pos, err := toXY(args[0], args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vert: %w", err)
			}
			return &sexpVert{id: m.CreateVertAt(pos)}, nil
		}
		return zygo.SexpNull, fmt.Errorf("vert takes no arguments or x and y, got %d", len(args))
	})

	// -----------------------------------------------------------------------
	// (move v x y)
	// -----------------------------------------------------------------------
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("move requires a vert, x and y")
		}
		v, err := toVert(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		pos, err := toXY(args[1], args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		return &zygo.SexpBool{Val: m.SetPos(v, pos)}, nil
	})

	// -----------------------------------------------------------------------
	// (edge a b)
	// -----------------------------------------------------------------------
	env.AddFunction("edge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("edge requires two verts")
		}
		a, err := toVert(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: %w", err)
		}
		b, err := toVert(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: %w", err)
		}
		e, err := m.CreateEdge(a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: %w", err)
		}
		return &sexpEdge{id: e}, nil
	})

	// -----------------------------------------------------------------------
	// (face [a b c] [e0 e1 e2]) or (face [a b c])
	// -----------------------------------------------------------------------
	env.AddFunction("face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 && len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("face requires a vert list and an optional edge list")
		}
		verts, err := mapList(args[0], toVert)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: verts: %w", err)
		}

		var f bmesh.FaceID
		if len(args) == 1 {
			f, err = m.CreateFaceFromVerts(verts)
		} else {
			edges, convErr := mapList(args[1], toEdge)
			if convErr != nil {
				return zygo.SexpNull, fmt.Errorf("face: edges: %w", convErr)
			}
			f, err = m.CreateFace(verts, edges)
		}
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: %w", err)
		}
		return &sexpFace{id: f}, nil
	})

	// -----------------------------------------------------------------------
	// (kill-vert v) (kill-edge e) (kill-face f)
	// -----------------------------------------------------------------------
	env.AddFunction("kill_vert", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("kill-vert requires one vert")
		}
		v, err := toVert(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kill-vert: %w", err)
		}
		return &zygo.SexpBool{Val: m.KillVert(v)}, nil
	})

	env.AddFunction("kill_edge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("kill-edge requires one edge")
		}
		e, err := toEdge(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kill-edge: %w", err)
		}
		return &zygo.SexpBool{Val: m.KillEdge(e)}, nil
	})

	env.AddFunction("kill_face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("kill-face requires one face")
		}
		f, err := toFace(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kill-face: %w", err)
		}
		return &zygo.SexpBool{Val: m.KillFace(f)}, nil
	})

	// -----------------------------------------------------------------------
	// (edge-between a b) -> edge or nil
	// -----------------------------------------------------------------------
	env.AddFunction("edge_between", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("edge-between requires two verts")
		}
		a, err := toVert(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge-between: %w", err)
		}
		b, err := toVert(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge-between: %w", err)
		}
		if e, ok := m.EdgeBetween(a, b); ok {
			return &sexpEdge{id: e}, nil
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (degree v)
	// -----------------------------------------------------------------------
	env.AddFunction("degree", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("degree requires one vert")
		}
		v, err := toVert(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("degree: %w", err)
		}
		return &zygo.SexpInt{Val: int64(m.Degree(v))}, nil
	})

	// -----------------------------------------------------------------------
	// (square :size 2)
	// -----------------------------------------------------------------------
	env.AddFunction("square", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		size, err := pa.floatKW("size", shapes.DefaultSquareSize)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("square: %w", err)
		}
		f, err := shapes.Square(m, size)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("square: %w", err)
		}
		return &sexpFace{id: f}, nil
	})

	// -----------------------------------------------------------------------
	// (star :points 5 :outer 1 :inner 0.4)
	// -----------------------------------------------------------------------
	env.AddFunction("star", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		points, err := pa.intKW("points", shapes.DefaultStarPoints)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("star: %w", err)
		}
		outer, err := pa.floatKW("outer", shapes.DefaultStarOuterRadius)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("star: %w", err)
		}
		inner, err := pa.floatKW("inner", shapes.DefaultStarInnerRadius)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("star: %w", err)
		}
		f, err := shapes.Star(m, points, outer, inner)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("star: %w", err)
		}
		return &sexpFace{id: f}, nil
	})

	// -----------------------------------------------------------------------
	// (circle :segments 32 :radius 1)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		segments, err := pa.intKW("segments", shapes.DefaultCircleSegments)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		radius, err := pa.floatKW("radius", shapes.DefaultCircleRadius)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		f, err := shapes.Circle(m, segments, radius)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		return &sexpFace{id: f}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon [[0 0] [1 0] [0 1]])
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("polygon requires a list of points")
		}
		pts, err := mapList(args[0], toPoint)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		f, err := shapes.Polygon(m, pts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		return &sexpFace{id: f}, nil
	})
}
