package cli

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgdu/pkg/dag"
	"github.com/matzehuels/pkgdu/pkg/dag/transform"
	"github.com/matzehuels/pkgdu/pkg/errors"
	graphio "github.com/matzehuels/pkgdu/pkg/io"
	"github.com/matzehuels/pkgdu/pkg/match"
	"github.com/matzehuels/pkgdu/pkg/render"
	"github.com/matzehuels/pkgdu/pkg/report"
)

type graphFlags struct {
	selectFlags
	output    string
	detailed  bool
	reduce    bool
	si        bool
	direction string
}

var directions = []string{"TB", "LR", "BT", "RL"}

// graphCommand creates the graph command for exporting dependency closures.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphFlags

	cmd := &cobra.Command{
		Use:   "graph [PATTERN]",
		Short: "Export the dependency graph of matched packages",
		Long: `Export the recursive dependencies of the matched packages as a Graphviz graph.

Without -o the DOT source is written to stdout. With -o the file extension
picks the format: .svg is laid out in-process, .dot and .gv are DOT, and
.json is a node-link document for other tools.`,
		Example: `  pkgdu graph firefox | dot -Tpng > firefox.png
  pkgdu graph firefox --reduce -o firefox.svg`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completePattern,
		RunE: func(cmd *cobra.Command, args []string) error {
			var pattern string
			if len(args) == 1 {
				pattern = args[0]
			}
			if c.file.SI != nil && !cmd.Flags().Changed("si") {
				opts.si = *c.file.SI
			}
			return c.runGraph(cmd, pattern, opts)
		},
	}

	c.registerSelect(cmd, &opts.selectFlags)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output `FILE` (.dot, .gv, .svg or .json; default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with depth, version and installed size")
	cmd.Flags().BoolVar(&opts.reduce, "reduce", false, "break cycles and drop edges implied by longer paths")
	cmd.Flags().BoolVar(&opts.si, "si", false, "use powers of 1000 for sizes in detailed labels")
	cmd.Flags().StringVar(&opts.direction, "direction", "TB", "layout direction: TB, LR, BT or RL")

	_ = cmd.RegisterFlagCompletionFunc("direction", cobra.FixedCompletions(directions, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, pattern string, opts graphFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format, err := outputFormat(opts.output)
	if err != nil {
		return err
	}
	opts.direction = strings.ToUpper(opts.direction)
	if !slices.Contains(directions, opts.direction) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid direction %q (want TB, LR, BT or RL)", opts.direction)
	}

	db, err := c.openDB(ctx, c.file)
	if err != nil {
		return err
	}

	var edges []dag.Edge
	onEdge := func(from, to string) { edges = append(edges, dag.Edge{From: from, To: to}) }

	seeds, exclude, err := c.matchSeeds(ctx, db, pattern, opts.selectFlags)
	if err != nil {
		return err
	}
	names, err := c.closure(ctx, db, seeds, onEdge)
	if err != nil {
		return err
	}
	names = match.Select(names, nil, exclude)
	roots := match.Select(seeds, nil, exclude)

	g := buildGraph(db, names, edges, opts.si)
	g.AssignDepths(roots)

	if loop := g.Cycle(); loop != nil {
		logger.Debug("dependency loop", "path", strings.Join(loop, " -> "))
	}

	removed := 0
	if opts.reduce {
		cut := transform.BreakCycles(g, roots...)
		removed = transform.TransitiveReduction(g)
		logger.Debug("reduced graph", "cycles", cut, "transitive", removed)
		removed += cut
	}

	if err := writeGraph(cmd, g, format, opts); err != nil {
		return err
	}
	if opts.output == "" {
		return nil
	}

	stderr := cmd.ErrOrStderr()
	printSuccess(stderr, "Dependency graph written")
	printFile(stderr, opts.output)
	printStats(stderr, g.NodeCount(), g.EdgeCount(), removed)
	return nil
}

func writeGraph(cmd *cobra.Command, g *dag.DAG, format string, opts graphFlags) error {
	if format == formatJSON {
		return graphio.WriteFile(opts.output, g)
	}

	ropts := render.Options{Detailed: opts.detailed, Direction: opts.direction}
	if opts.output == "" {
		return render.WriteDOT(cmd.OutOrStdout(), g, ropts)
	}
	dot := render.ToDOT(g, ropts)

	data := []byte(dot)
	if format == formatSVG {
		prog := newProgress(loggerFromContext(cmd.Context()))
		svg, err := render.RenderSVG(cmd.Context(), dot)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "cannot render %s", opts.output)
		}
		prog.done("Rendered SVG")
		data = svg
	}
	return graphio.WriteAtomic(opts.output, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// buildGraph turns a closure into a graph. Edges whose endpoints were
// excluded or dropped are skipped. Version and size go into node metadata.
func buildGraph(idx report.Lookup, names []string, edges []dag.Edge, si bool) *dag.DAG {
	g := dag.New()
	for _, name := range names {
		meta := dag.Metadata{}
		if pkg, err := idx.Package(name); err == nil {
			meta["version"] = pkg.Version
			meta["size"] = report.FormatSize(pkg.InstalledSize, si)
		}
		_ = g.AddNode(dag.Node{ID: name, Meta: meta})
	}
	for _, e := range edges {
		_ = g.AddEdge(e)
	}
	return g
}

const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

func outputFormat(path string) (string, error) {
	if path == "" {
		return formatDOT, nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot", ".gv":
		return formatDOT, nil
	case ".svg":
		return formatSVG, nil
	case ".json":
		return formatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unsupported output format %q (want .dot, .gv, .svg or .json)", ext)
	}
}
