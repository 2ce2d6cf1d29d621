package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/pkgdu/pkg/dag"
)

type document struct {
	Packages []entry `json:"packages"`
}

type entry struct {
	Name     string       `json:"name"`
	Depth    int          `json:"depth"`
	Meta     dag.Metadata `json:"meta,omitempty"`
	Requires []string     `json:"requires,omitempty"`
}

// Encode writes g to w as indented JSON.
func Encode(w io.Writer, g *dag.DAG) error {
	doc := document{Packages: make([]entry, 0, g.NodeCount())}
	for _, n := range g.Nodes() {
		e := entry{Name: n.ID, Depth: n.Depth, Requires: g.Requires(n.ID)}
		if len(n.Meta) > 0 {
			e.Meta = n.Meta
		}
		doc.Packages = append(doc.Packages, e)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Decode rebuilds a graph written by [Encode]. Errors name the package at
// fault and wrap the dag sentinel errors. Decode does not close r.
func Decode(r io.Reader) (*dag.DAG, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := dag.New()
	for _, e := range doc.Packages {
		if err := g.AddNode(dag.Node{ID: e.Name, Depth: e.Depth, Meta: e.Meta}); err != nil {
			return nil, fmt.Errorf("package %q: %w", e.Name, err)
		}
	}
	for _, e := range doc.Packages {
		for _, dep := range e.Requires {
			if err := g.AddEdge(dag.Edge{From: e.Name, To: dep}); err != nil {
				return nil, fmt.Errorf("package %q requires %q: %w", e.Name, dep, err)
			}
		}
	}
	return g, nil
}

// WriteFile encodes g to path atomically (see [WriteAtomic]).
func WriteFile(path string, g *dag.DAG) error {
	return WriteAtomic(path, func(w io.Writer) error { return Encode(w, g) })
}

// WriteAtomic creates path with the bytes write produces. The data goes to
// a temporary file next to path that is renamed into place once complete,
// so an interrupted or failed write never leaves a truncated file behind.
func WriteAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pkgdu-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the graph stored at path.
func ReadFile(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
