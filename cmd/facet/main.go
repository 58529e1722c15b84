// Command facet evaluates a mesh script and prints the triangulated
// faces, the wireframe and any errors as JSON.
//
// Usage:
//
//	facet [-timeout 5s] [-v] [script.facet]
//
// With no script argument the source is read from stdin.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/chazu/facet/pkg/bmesh"
	"github.com/chazu/facet/pkg/engine"
)

func main() {
	timeout := flag.Duration("timeout", engine.DefaultEvalTimeout, "evaluation time limit")
	verbose := flag.Bool("v", false, "log mesh operations to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	bmesh.SetLogger(log)

	source, err := readSource(flag.Arg(0))
	if err != nil {
		log.Error("read script", "err", err)
		os.Exit(2)
	}

	app := NewApp(engine.Config{Timeout: *timeout}, log)
	result := app.Evaluate(string(source))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Error("write result", "err", err)
		os.Exit(2)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

func readSource(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
