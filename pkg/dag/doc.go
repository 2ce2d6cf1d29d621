// Package dag holds the requirement graph between installed packages.
//
// The resolver discovers dependencies one edge at a time; this package
// collects those edges so a closure can be exported as a picture (see the
// render package) or as JSON (see the io package). Nodes are package names
// and edges point from a package to what it requires:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "firefox"})
//	g.AddNode(dag.Node{ID: "gtk3"})
//	g.AddEdge(dag.Edge{From: "firefox", To: "gtk3"})
//	g.AssignDepths([]string{"firefox"})
//
// pacman allows installed packages to require each other in a loop, so a
// DAG is only acyclic once BreakCycles from [transform] has run. [DAG.Cycle]
// reports a remaining loop.
//
// [transform]: github.com/matzehuels/pkgdu/pkg/dag/transform
package dag
