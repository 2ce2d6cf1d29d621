// Package cli implements the pkgdu command-line interface.
//
// The root command prints the installed size of every package matching an
// optional glob or regular expression, optionally expanded to its recursive
// dependencies. The graph subcommand exports the same dependency closure as a
// Graphviz diagram.
//
// # Logging
//
// Diagnostics go to stderr through charmbracelet/log. The default level is
// warn; PKGDU_LOG (debug, info, warn, error) changes it and --verbose (-v)
// forces debug. The logger is carried in the command context so library
// hooks can reach it.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgdu/internal/config"
	"github.com/matzehuels/pkgdu/pkg/alpm"
	"github.com/matzehuels/pkgdu/pkg/buildinfo"
	"github.com/matzehuels/pkgdu/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pkgdu"

	// envLogLevel selects the default log level.
	envLogLevel = "PKGDU_LOG"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose bool
	paths   pathFlags
	file    config.File
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.reportCommand()
	root.Version = buildinfo.Get().Version
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&c.paths.pacmanConf, "config", "", "pacman configuration file (default "+alpm.DefaultConfigPath+")")
	pf.StringVar(&c.paths.dbPath, "dbpath", "", "pacman database directory (overrides the configuration file)")
	pf.StringVar(&c.paths.root, "root", "", "installation root (database at ROOT/var/lib/pacman)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		file, err := config.LoadDefault()
		if err != nil {
			return err
		}
		c.file = file

		c.SetLogLevel(c.logLevel())
		observability.Register(logHooks{})
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// logLevel applies --verbose over PKGDU_LOG over the default warn level.
func (c *CLI) logLevel() log.Level {
	if c.verbose {
		return LogDebug
	}
	if level, ok := levelFromEnv(); ok {
		return level
	}
	return LogWarn
}
