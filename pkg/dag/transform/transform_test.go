package transform

import (
	"slices"
	"testing"

	"github.com/matzehuels/pkgdu/pkg/dag"
)

func graph(t *testing.T, edges ...[2]string) *dag.DAG {
	t.Helper()
	g := dag.New()
	for _, e := range edges {
		for _, id := range e {
			if _, ok := g.Node(id); !ok {
				if err := g.AddNode(dag.Node{ID: id}); err != nil {
					t.Fatal(err)
				}
			}
		}
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name    string
		edges   [][2]string
		roots   []string
		removed int
	}{
		{"no cycles", [][2]string{{"a", "b"}, {"b", "c"}}, nil, 0},
		{"mutual dependency", [][2]string{{"a", "b"}, {"b", "a"}}, nil, 1},
		{"triangle", [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, nil, 1},
		{"two loops", [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}}, nil, 2},
		{"self loop", [][2]string{{"a", "a"}}, nil, 1},
		{"diamond", [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, nil, 0},
		{"loop below root", [][2]string{{"app", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}}, []string{"app"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph(t, tt.edges...)
			before := g.EdgeCount()

			if got := BreakCycles(g, tt.roots...); got != tt.removed {
				t.Errorf("BreakCycles() = %d, want %d", got, tt.removed)
			}
			if g.EdgeCount() != before-tt.removed {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), before-tt.removed)
			}
			if loop := g.Cycle(); loop != nil {
				t.Errorf("loop left after BreakCycles: %v", loop)
			}
		})
	}
}

func TestBreakCyclesCutsEdgeTowardRoot(t *testing.T) {
	// glibc and its helper depend on each other; starting at glibc cuts the
	// helper's edge back to it.
	g := graph(t, [2]string{"glibc", "filesystem"}, [2]string{"filesystem", "glibc"})

	BreakCycles(g, "glibc")

	edges := g.Edges()
	if len(edges) != 1 || edges[0] != (dag.Edge{From: "glibc", To: "filesystem"}) {
		t.Errorf("Edges() = %v, want [glibc->filesystem]", edges)
	}
}

func TestBreakCyclesEmpty(t *testing.T) {
	if got := BreakCycles(dag.New()); got != 0 {
		t.Errorf("BreakCycles(empty) = %d, want 0", got)
	}
}

func TestTransitiveReduction(t *testing.T) {
	g := graph(t,
		[2]string{"firefox", "gtk3"},
		[2]string{"firefox", "glib2"},
		[2]string{"gtk3", "glib2"},
		[2]string{"glib2", "glibc"},
		[2]string{"firefox", "glibc"},
	)

	if got := TransitiveReduction(g); got != 2 {
		t.Errorf("TransitiveReduction() = %d, want 2", got)
	}

	want := []dag.Edge{
		{From: "firefox", To: "gtk3"},
		{From: "gtk3", To: "glib2"},
		{From: "glib2", To: "glibc"},
	}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestTransitiveReductionKeepsDiamond(t *testing.T) {
	g := graph(t, [2]string{"a", "b"}, [2]string{"a", "c"}, [2]string{"b", "d"}, [2]string{"c", "d"})
	if got := TransitiveReduction(g); got != 0 {
		t.Errorf("TransitiveReduction() = %d, want 0", got)
	}
	if TransitiveReduction(dag.New()) != 0 {
		t.Error("TransitiveReduction(empty) should remove nothing")
	}
}
