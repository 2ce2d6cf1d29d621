package transform

import "github.com/matzehuels/pkgdu/pkg/dag"

// BreakCycles removes the back edges a depth-first walk finds, leaving an
// acyclic graph, and returns how many it removed.
//
// The walk starts at roots in the order given, continues at packages nothing
// requires, then at whatever is left. Starting at the matched packages means
// the edges cut are the ones pointing back toward them.
func BreakCycles(g *dag.DAG, roots ...string) int {
	starts := append([]string(nil), roots...)
	for _, n := range g.Unrequired() {
		starts = append(starts, n.ID)
	}
	for _, n := range g.Nodes() {
		starts = append(starts, n.ID)
	}

	done := make(map[string]bool)
	onPath := make(map[string]bool)
	var cut []dag.Edge

	var walk func(id string)
	walk = func(id string) {
		onPath[id] = true
		for _, dep := range g.Requires(id) {
			switch {
			case onPath[dep]:
				cut = append(cut, dag.Edge{From: id, To: dep})
			case !done[dep]:
				walk(dep)
			}
		}
		onPath[id] = false
		done[id] = true
	}

	for _, id := range starts {
		if _, ok := g.Node(id); ok && !done[id] {
			walk(id)
		}
	}

	for _, e := range cut {
		g.RemoveEdge(e.From, e.To)
	}
	return len(cut)
}
