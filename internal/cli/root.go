package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgdu/internal/config"
	"github.com/matzehuels/pkgdu/pkg/alpm"
	"github.com/matzehuels/pkgdu/pkg/deps"
	"github.com/matzehuels/pkgdu/pkg/match"
	"github.com/matzehuels/pkgdu/pkg/report"
)

// pathFlags locate the pacman database.
type pathFlags struct {
	pacmanConf string
	dbPath     string
	root       string
}

// selectFlags choose which packages a command works on.
type selectFlags struct {
	excludes []string
	regex    bool
}

func (c *CLI) registerSelect(cmd *cobra.Command, s *selectFlags) {
	cmd.Flags().StringArrayVarP(&s.excludes, "exclude", "x", nil, "skip packages matching `PATTERN` (repeatable)")
	cmd.Flags().BoolVar(&s.regex, "regex", false, "interpret patterns as regular expressions instead of globs")
	_ = cmd.RegisterFlagCompletionFunc("exclude", c.completePackages)
}

func (s *selectFlags) kind() match.Kind {
	if s.regex {
		return match.Regex
	}
	return match.Glob
}

type reportFlags struct {
	selectFlags
	recursive   bool
	sort        report.SortOrder
	description bool
	si          bool
	total       bool
	quiet       bool
}

// reportCommand creates the root command: the disk usage report.
func (c *CLI) reportCommand() *cobra.Command {
	var opts reportFlags

	cmd := &cobra.Command{
		Use:   "pkgdu [PATTERN]",
		Short: "Show the installed size of pacman packages",
		Long: `pkgdu lists installed pacman packages with their installed size.

PATTERN selects packages by name (a glob, or a regular expression with
--regex). Without PATTERN every installed package is listed. With
--recursive-depends-on the selection grows to everything the matched
packages depend on, directly or not. Exclude patterns apply last.`,
		Example: `  pkgdu 'python-*' -t
  pkgdu -r firefox -s name-asc
  pkgdu --regex '^lib.*32$' -q`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completePattern,
		RunE: func(cmd *cobra.Command, args []string) error {
			var pattern string
			if len(args) == 1 {
				pattern = args[0]
			}
			c.applyFileDefaults(cmd, &opts)
			return c.runReport(cmd, pattern, opts)
		},
	}

	c.registerSelect(cmd, &opts.selectFlags)
	cmd.Flags().BoolVarP(&opts.recursive, "recursive-depends-on", "r", false, "include the recursive dependencies of matched packages")
	cmd.Flags().VarP(&opts.sort, "sort", "s", "sort order: name-asc, name-desc, installed-size-asc, installed-size-desc")
	cmd.Flags().BoolVarP(&opts.description, "description", "d", false, "show package descriptions")
	cmd.Flags().BoolVar(&opts.si, "si", false, "use powers of 1000 (kB, MB) instead of 1024 (KiB, MiB)")
	cmd.Flags().BoolVarP(&opts.total, "total", "t", false, "append a (TOTAL) row")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the (TOTAL) row")
	cmd.MarkFlagsMutuallyExclusive("quiet", "sort")
	cmd.MarkFlagsMutuallyExclusive("quiet", "description")
	cmd.MarkFlagsMutuallyExclusive("quiet", "total")

	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return report.SortOrders(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// applyFileDefaults fills flags the user did not set from the defaults file.
func (c *CLI) applyFileDefaults(cmd *cobra.Command, opts *reportFlags) {
	flags := cmd.Flags()
	if c.file.Sort != nil && !flags.Changed("sort") && !opts.quiet {
		opts.sort = *c.file.Sort
	}
	if c.file.Description != nil && !flags.Changed("description") && !opts.quiet {
		opts.description = *c.file.Description
	}
	if c.file.SI != nil && !flags.Changed("si") {
		opts.si = *c.file.SI
	}
}

func (c *CLI) runReport(cmd *cobra.Command, pattern string, opts reportFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.recursive && pattern == "" {
		logger.Warn("--recursive-depends-on has no effect without a pattern")
		opts.recursive = false
	}

	db, err := c.openDB(ctx, c.file)
	if err != nil {
		return err
	}

	names, err := c.selectPackages(ctx, db, pattern, opts.selectFlags, opts.recursive)
	if err != nil {
		return err
	}

	rows := report.Assemble(ctx, names, db, report.Options{
		Sort:        opts.sort,
		Description: opts.description,
		Total:       opts.total,
		Quiet:       opts.quiet,
	})

	if err := report.Render(cmd.OutOrStdout(), rows, report.RenderOptions{
		Description: opts.description,
		SI:          opts.si,
	}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// openDB locates and opens the local database from the path flags and the
// defaults in file. An explicit database path wins, then an explicit root;
// otherwise pacman.conf decides.
func (c *CLI) openDB(ctx context.Context, file config.File) (*alpm.LocalDB, error) {
	logger := loggerFromContext(ctx)

	cfg := alpm.Config{
		RootDir: firstNonEmpty(c.paths.root, file.Root),
		DBPath:  firstNonEmpty(c.paths.dbPath, file.DBPath),
	}
	if cfg.RootDir == "" && cfg.DBPath == "" {
		confPath := firstNonEmpty(c.paths.pacmanConf, file.PacmanConf, alpm.DefaultConfigPath)
		loaded, err := alpm.LoadConfig(confPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded pacman configuration", "path", confPath)
		cfg = loaded
	}

	cfg = cfg.WithDefaults()
	logger.Debug("opening local database", "root", cfg.RootDir, "dbpath", cfg.DBPath)
	return cfg.OpenLocalDB()
}

// selectPackages applies the include pattern, the optional closure and the
// exclude patterns, in that order.
func (c *CLI) selectPackages(ctx context.Context, db deps.Index, pattern string, sel selectFlags, recursive bool) ([]string, error) {
	names, exclude, err := c.matchSeeds(ctx, db, pattern, sel)
	if err != nil {
		return nil, err
	}
	if recursive {
		if names, err = c.closure(ctx, db, names, nil); err != nil {
			return nil, err
		}
	}
	return match.Select(names, nil, exclude), nil
}

// matchSeeds compiles the patterns and returns the installed packages the
// include pattern matches, together with the compiled exclude set.
func (c *CLI) matchSeeds(ctx context.Context, db deps.Index, pattern string, sel selectFlags) ([]string, match.Set, error) {
	var include *match.Matcher
	if pattern != "" {
		m, err := match.Compile(sel.kind(), pattern)
		if err != nil {
			return nil, nil, err
		}
		include = m
	}
	exclude, err := match.CompileAll(sel.kind(), sel.excludes)
	if err != nil {
		return nil, nil, err
	}

	all, err := db.Packages()
	if err != nil {
		return nil, nil, err
	}
	names := match.Select(all, include, nil)
	loggerFromContext(ctx).Debug("matched packages", "pattern", pattern, "count", len(names))
	return names, exclude, nil
}

// closure expands seeds to their recursive dependencies. onEdge, when set,
// sees every resolved dependency edge.
func (c *CLI) closure(ctx context.Context, db deps.Index, seeds []string, onEdge func(from, to string)) ([]string, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	resolver := deps.NewResolver(db, deps.Options{
		Workers: c.file.Workers,
		Logger:  warnf(logger),
		OnEdge:  onEdge,
	})
	names, err := resolver.Closure(ctx, seeds)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Resolved %d packages", len(names)))
	return names, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
