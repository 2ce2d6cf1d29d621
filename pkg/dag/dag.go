package dag

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] for an empty package name.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when the package is
	// already in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [DAG.AddEdge] when either end of the
	// edge is not in the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Metadata holds display attributes of a package, such as its version and
// formatted installed size.
type Metadata map[string]string

// Node is an installed package in the dependency graph.
type Node struct {
	ID    string   // Package name
	Depth int      // Hops from the nearest matched package, -1 if unreached
	Meta  Metadata // Never nil once added
}

// Edge is a resolved dependency: From requires To.
type Edge struct {
	From string
	To   string
}

// DAG is the requirement graph between installed packages.
//
// Despite the name it may contain loops until transform.BreakCycles has run;
// [DAG.Cycle] finds one. The zero value is not usable, use [New]. A DAG is
// not safe for concurrent use.
type DAG struct {
	nodes      map[string]*Node
	edges      []Edge
	requires   map[string][]string
	requiredBy map[string][]string
}

// New creates an empty graph.
func New() *DAG {
	return &DAG{
		nodes:      make(map[string]*Node),
		requires:   make(map[string][]string),
		requiredBy: make(map[string][]string),
	}
}

// AddNode adds a package to the graph.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	d.nodes[n.ID] = &n
	return nil
}

// AddEdge records that e.From requires e.To. Both packages must already be
// in the graph. Recording the same requirement twice is a no-op: a package
// that reaches one target through two dependency entries (say "sh" and
// "bash") gets one edge.
func (d *DAG) AddEdge(e Edge) error {
	for _, id := range []string{e.From, e.To} {
		if _, ok := d.nodes[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
	}
	if slices.Contains(d.requires[e.From], e.To) {
		return nil
	}
	d.edges = append(d.edges, e)
	d.requires[e.From] = append(d.requires[e.From], e.To)
	d.requiredBy[e.To] = append(d.requiredBy[e.To], e.From)
	return nil
}

// RemoveEdge drops the requirement from→to if present.
func (d *DAG) RemoveEdge(from, to string) {
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e == Edge{From: from, To: to} })
	d.requires[from] = slices.DeleteFunc(d.requires[from], func(s string) bool { return s == to })
	d.requiredBy[to] = slices.DeleteFunc(d.requiredBy[to], func(s string) bool { return s == from })
}

// Node returns the package named id.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all packages sorted by name. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.nodes))
	for _, id := range slices.Sorted(maps.Keys(d.nodes)) {
		nodes = append(nodes, d.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in the order they were added.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

func (d *DAG) NodeCount() int { return len(d.nodes) }
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Requires returns the direct dependencies of id. The slice must not be
// modified.
func (d *DAG) Requires(id string) []string { return d.requires[id] }

// RequiredBy returns the packages that directly depend on id. The slice
// must not be modified.
func (d *DAG) RequiredBy(id string) []string { return d.requiredBy[id] }

// Unrequired returns the packages nothing else in the graph depends on,
// sorted by name.
func (d *DAG) Unrequired() []*Node {
	var out []*Node
	for _, n := range d.Nodes() {
		if len(d.requiredBy[n.ID]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// AssignDepths sets each node's Depth to its breadth-first distance from the
// nearest of roots. Roots missing from the graph are ignored; nodes no root
// reaches get -1.
func (d *DAG) AssignDepths(roots []string) {
	for _, n := range d.nodes {
		n.Depth = -1
	}

	var queue []*Node
	for _, id := range roots {
		if n, ok := d.nodes[id]; ok && n.Depth < 0 {
			n.Depth = 0
			queue = append(queue, n)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, id := range d.requires[n.ID] {
			if dep := d.nodes[id]; dep.Depth < 0 {
				dep.Depth = n.Depth + 1
				queue = append(queue, dep)
			}
		}
	}
}

// Cycle returns one dependency loop as the packages along it, with the first
// repeated at the end, or nil if the graph is acyclic. Packages are visited
// in name order so the loop reported is stable.
func (d *DAG) Cycle() []string {
	const (
		unvisited = iota
		onPath
		finished
	)

	state := make(map[string]int, len(d.nodes))
	var path, loop []string

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = onPath
		path = append(path, id)
		for _, dep := range d.requires[id] {
			switch state[dep] {
			case unvisited:
				if visit(dep) {
					return true
				}
			case onPath:
				loop = append(slices.Clone(path[slices.Index(path, dep):]), dep)
				return true
			}
		}
		path = path[:len(path)-1]
		state[id] = finished
		return false
	}

	for _, id := range slices.Sorted(maps.Keys(d.nodes)) {
		if state[id] == unvisited && visit(id) {
			return loop
		}
	}
	return nil
}
