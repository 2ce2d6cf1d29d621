package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at the given level. Lines carry the
// program name instead of a timestamp since runs are short and usually piped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: appName,
		Level:  level,
	})
}

// levelFromEnv parses PKGDU_LOG. Unset or unparseable values report false.
func levelFromEnv() (log.Level, bool) {
	v := os.Getenv(envLogLevel)
	if v == "" {
		return 0, false
	}
	level, err := log.ParseLevel(v)
	if err != nil {
		return 0, false
	}
	return level, true
}

// warnf adapts a logger to the printf-style callback the resolver takes.
func warnf(l *log.Logger) func(string, ...any) {
	return func(format string, args ...any) { l.Warnf(format, args...) }
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Resolved 42 packages (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports resolver and report events at debug level through the
// logger found in the event's context.
type logHooks struct{}

func (logHooks) OnClosureStart(ctx context.Context, seeds int) {
	loggerFromContext(ctx).Debug("resolving dependencies", "seeds", seeds)
}

func (logHooks) OnPass(ctx context.Context, pass, expanded, discovered int) {
	loggerFromContext(ctx).Debug("pass", "n", pass, "expanded", expanded, "discovered", discovered)
}

func (logHooks) OnUnresolved(ctx context.Context, pkg, dep string) {
	loggerFromContext(ctx).Debug("edge dropped", "package", pkg, "dependency", dep)
}

func (logHooks) OnClosureComplete(ctx context.Context, size int, elapsed time.Duration, err error) {
	if err != nil {
		loggerFromContext(ctx).Debug("closure aborted", "err", err)
		return
	}
	loggerFromContext(ctx).Debug("closure complete", "packages", size, "elapsed", elapsed.Round(time.Millisecond))
}

func (logHooks) OnReportAssembled(ctx context.Context, rows int, total int64) {
	loggerFromContext(ctx).Debug("report assembled", "rows", rows, "total", total)
}

func (logHooks) OnRowDropped(ctx context.Context, name string, err error) {
	loggerFromContext(ctx).Debug("row dropped", "package", name, "err", err)
}
