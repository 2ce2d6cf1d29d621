// Package render draws dependency graphs as node-link diagrams.
//
// [ToDOT] and [WriteDOT] turn a dag.DAG into Graphviz DOT text, useful on
// its own (pipe it to dot, xdot or any other Graphviz tool). [RenderSVG]
// lays the DOT out in-process with go-graphviz, so no Graphviz installation
// is needed:
//
//	dot := render.ToDOT(g, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
package render
