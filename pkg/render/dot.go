package render

import (
	"bufio"
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pkgdu/pkg/dag"
)

// Options configures DOT output.
type Options struct {
	// Detailed adds the depth and every metadata entry below the package
	// name. Otherwise nodes show the name only.
	Detailed bool

	// Direction is the Graphviz rankdir (TB, LR, BT or RL). Empty means TB.
	Direction string
}

var graphAttrs = []string{
	`bgcolor="transparent"`,
	"ranksep=0.5",
	"nodesep=0.3",
	`node [shape=box, style="rounded,filled", fillcolor=white, fontname="monospace", fontsize=14]`,
	"edge [arrowsize=0.7]",
}

// ToDOT returns the DOT source for g. See [WriteDOT].
func ToDOT(g *dag.DAG, opts Options) string {
	var b strings.Builder
	_ = WriteDOT(&b, g, opts)
	return b.String()
}

// WriteDOT writes g as a Graphviz digraph. Matched packages (depth 0) are
// highlighted and share the first rank. Nodes are written sorted by name and
// edges in graph order, so equal graphs give equal output.
func WriteDOT(w io.Writer, g *dag.DAG, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "digraph pkgdu {\n  rankdir=%s;\n", cmp.Or(opts.Direction, "TB"))
	for _, a := range graphAttrs {
		fmt.Fprintf(bw, "  %s;\n", a)
	}
	bw.WriteString("\n")

	var matched []string
	for _, n := range g.Nodes() {
		if n.Depth == 0 {
			matched = append(matched, strconv.Quote(n.ID))
		}
		fmt.Fprintf(bw, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(*n, opts.Detailed), ", "))
	}
	if len(matched) > 1 {
		fmt.Fprintf(bw, "  { rank=same; %s; }\n", strings.Join(matched, "; "))
	}

	bw.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "  %q -> %q;\n", e.From, e.To)
	}
	bw.WriteString("}\n")

	return bw.Flush()
}

func nodeLabel(n dag.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}
	lines := []string{n.ID, "depth: " + strconv.Itoa(n.Depth)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		lines = append(lines, k+": "+n.Meta[k])
	}
	return strings.Join(lines, "\n")
}

func nodeAttrs(n dag.Node, detailed bool) []string {
	attrs := []string{"label=" + strconv.Quote(nodeLabel(n, detailed))}
	switch {
	case n.Depth == 0:
		attrs = append(attrs, "fillcolor=lightblue", "penwidth=2")
	case n.Depth < 0:
		attrs = append(attrs, "fontcolor=grey40", "color=grey60")
	}
	return attrs
}

// RenderSVG lays out DOT source and returns SVG, using the WebAssembly
// build of Graphviz bundled with go-graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return buf.Bytes(), nil
}
