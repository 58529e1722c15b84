// Package engine provides the Lisp evaluation engine for facet.
// It wraps zygomys in a sandboxed environment and produces a bmesh.Mesh
// from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/facet/pkg/bmesh"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code or a rejected mesh
// operation.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Config holds engine settings.
type Config struct {
	// Timeout bounds a single evaluation. Zero means DefaultEvalTimeout.
	Timeout time.Duration
}

// DefaultConfig returns the settings used by NewEngine.
func DefaultConfig() Config {
	return Config{Timeout: DefaultEvalTimeout}
}

// Engine wraps the zygomys interpreter for mesh construction.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment and a fresh mesh for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	cfg        Config
}

// NewEngine creates a new Engine with DefaultConfig.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig())
}

// NewEngineWithConfig creates a new Engine with the given settings.
func NewEngineWithConfig(cfg Config) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultEvalTimeout
	}
	return &Engine{cfg: cfg}
}

// Evaluate takes Lisp source code and builds a new mesh.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns mesh + nil errors + nil error
//   - On parse/eval failure: returns nil mesh + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*bmesh.Mesh, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		m, evalErrs, err := e.evaluate(source)
		ch <- evalResult{mesh: m, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation, e.cfg.Timeout)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*bmesh.Mesh, []EvalError, error) {
	m := bmesh.New()

	// Empty source is a valid program that produces an empty mesh.
	if strings.TrimSpace(source) == "" {
		return m, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, m)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	bmesh.Logger().Debug("engine: evaluated",
		"verts", m.NumVerts(), "edges", m.NumEdges(), "faces", m.NumFaces())
	return m, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
