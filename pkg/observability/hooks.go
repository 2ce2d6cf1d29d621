// Package observability lets the CLI watch the resolver and the report
// assembler without those packages knowing about logging.
//
// Libraries emit events through the registered hooks, which are no-ops until
// something is registered:
//
//	restore := observability.Register(myHooks{})
//	defer restore()
//
//	observability.Resolver().OnClosureStart(ctx, len(seeds))
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// ResolverHooks receives events from dependency closure computation.
type ResolverHooks interface {
	OnClosureStart(ctx context.Context, seeds int)
	// OnPass is called after each expansion pass with the number of names
	// expanded and newly discovered in that pass.
	OnPass(ctx context.Context, pass, expanded, discovered int)
	OnUnresolved(ctx context.Context, pkg, dependency string)
	OnClosureComplete(ctx context.Context, size int, duration time.Duration, err error)
}

// ReportHooks receives events from report assembly.
type ReportHooks interface {
	OnReportAssembled(ctx context.Context, rows int, total int64)
	OnRowDropped(ctx context.Context, name string, err error)
}

type NoopResolverHooks struct{}

func (NoopResolverHooks) OnClosureStart(context.Context, int)                          {}
func (NoopResolverHooks) OnPass(context.Context, int, int, int)                        {}
func (NoopResolverHooks) OnUnresolved(context.Context, string, string)                 {}
func (NoopResolverHooks) OnClosureComplete(context.Context, int, time.Duration, error) {}

type NoopReportHooks struct{}

func (NoopReportHooks) OnReportAssembled(context.Context, int, int64) {}
func (NoopReportHooks) OnRowDropped(context.Context, string, error)   {}

type registry struct {
	resolver ResolverHooks
	report   ReportHooks
}

var noop = &registry{resolver: NoopResolverHooks{}, report: NoopReportHooks{}}

var current atomic.Pointer[registry]

func load() *registry {
	if r := current.Load(); r != nil {
		return r
	}
	return noop
}

// Register installs h for every hook interface it implements and returns a
// function that restores the hooks in place before the call. A value
// implementing neither interface changes nothing.
func Register(h any) (restore func()) {
	prev := load()
	next := *prev
	if rh, ok := h.(ResolverHooks); ok {
		next.resolver = rh
	}
	if rh, ok := h.(ReportHooks); ok {
		next.report = rh
	}
	current.Store(&next)
	return func() { current.Store(prev) }
}

// Resolver returns the registered resolver hooks.
func Resolver() ResolverHooks { return load().resolver }

// Report returns the registered report hooks.
func Report() ReportHooks { return load().report }

// Reset restores the no-op hooks.
func Reset() { current.Store(noop) }
