// Package transform simplifies dependency graphs before they are drawn.
//
// [BreakCycles] cuts the back edges of dependency loops so the graph is a
// true DAG, and [TransitiveReduction] then drops edges implied by longer
// paths:
//
//	removed := transform.BreakCycles(g, "firefox")
//	pruned := transform.TransitiveReduction(g)
//
// Both mutate the graph in place and report how many edges they removed.
package transform
