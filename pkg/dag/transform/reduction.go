package transform

import (
	"slices"

	"github.com/matzehuels/pkgdu/pkg/dag"
)

// TransitiveReduction removes every requirement already implied through
// another dependency and returns how many edges it removed. If firefox
// requires gtk3 and glib2, and gtk3 requires glib2, firefox→glib2 goes.
//
// The graph must be acyclic (see [BreakCycles]); inside a loop every edge
// looks implied.
func TransitiveReduction(g *dag.DAG) int {
	below := descendants(g)
	direct := make(map[string][]string, g.NodeCount())
	for _, n := range g.Nodes() {
		direct[n.ID] = slices.Clone(g.Requires(n.ID))
	}

	removed := 0
	for _, e := range g.Edges() {
		for _, via := range direct[e.From] {
			if via != e.To && below[via][e.To] {
				g.RemoveEdge(e.From, e.To)
				removed++
				break
			}
		}
	}
	return removed
}

// descendants maps every package to the set of packages it reaches.
func descendants(g *dag.DAG) map[string]map[string]bool {
	memo := make(map[string]map[string]bool, g.NodeCount())

	var walk func(id string) map[string]bool
	walk = func(id string) map[string]bool {
		if set, ok := memo[id]; ok {
			return set
		}
		set := make(map[string]bool)
		memo[id] = set
		for _, dep := range g.Requires(id) {
			set[dep] = true
			for d := range walk(dep) {
				set[d] = true
			}
		}
		return set
	}

	for _, n := range g.Nodes() {
		walk(n.ID)
	}
	return memo
}
