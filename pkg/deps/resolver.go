package deps

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pkgdu/pkg/observability"
)

// ResolutionSet maps every package name discovered so far to whether its own
// dependencies have been processed (expanded).
type ResolutionSet map[string]bool

// NewResolutionSet returns a set holding every seed, unexpanded.
func NewResolutionSet(seeds []string) ResolutionSet {
	s := make(ResolutionSet, len(seeds))
	for _, name := range seeds {
		s[name] = false
	}
	return s
}

// Done reports whether every entry has been expanded.
func (s ResolutionSet) Done() bool {
	for _, expanded := range s {
		if !expanded {
			return false
		}
	}
	return true
}

// Pending returns the unexpanded names in sorted order.
func (s ResolutionSet) Pending() []string {
	var names []string
	for name, expanded := range s {
		if !expanded {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Names returns every name in the set in sorted order.
func (s ResolutionSet) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Resolver computes dependency closures over an [Index].
//
// A Resolver represents one run: the capability table it builds on first use
// is never refreshed, so the index must not change while it is in use.
type Resolver struct {
	index Index
	opts  Options

	once      sync.Once
	providers map[string][]provider
	loadErr   error
}

type provider struct {
	pkg     string
	version string
}

// NewResolver creates a Resolver reading from idx.
func NewResolver(idx Index, opts Options) *Resolver {
	return &Resolver{index: idx, opts: opts.WithDefaults()}
}

// Closure returns the sorted set of packages transitively required by seeds,
// seeds included. Seeds that are not installed are dropped with a warning, as
// are dependencies that cannot be resolved. The only errors are context
// cancellation and failure to enumerate the index.
func (r *Resolver) Closure(ctx context.Context, seeds []string) ([]string, error) {
	hooks := observability.Resolver()
	hooks.OnClosureStart(ctx, len(seeds))
	start := time.Now()

	set := NewResolutionSet(seeds)
	for pass := 1; !set.Done(); pass++ {
		pending := len(set.Pending())
		next, err := r.Step(ctx, set)
		if err != nil {
			hooks.OnClosureComplete(ctx, 0, time.Since(start), err)
			return nil, err
		}
		discovered := 0
		for name := range next {
			if _, ok := set[name]; !ok {
				discovered++
			}
		}
		hooks.OnPass(ctx, pass, pending, discovered)
		set = next
	}

	names := set.Names()
	hooks.OnClosureComplete(ctx, len(names), time.Since(start), nil)
	return names, nil
}

// expansion is the read-only result of looking up one pending package.
type expansion struct {
	name       string
	targets    []string
	unresolved []error
	err        error
}

// Step performs one expansion pass and returns the next set; current is not
// modified. Every pending name ends the pass either expanded or, when it is
// not in the index, removed. Resolved targets are added unexpanded unless
// already present, in which case their flag is left alone.
//
// Lookups run concurrently (bounded by Options.Workers); the results are
// merged by a single writer in sorted name order.
func (r *Resolver) Step(ctx context.Context, current ResolutionSet) (ResolutionSet, error) {
	if err := r.load(); err != nil {
		return nil, err
	}

	pending := current.Pending()
	results := make([]expansion, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, name := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.expand(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	next := maps.Clone(current)
	for _, res := range results {
		if res.err != nil {
			r.opts.Logger("skipping %s: %v", res.name, res.err)
			delete(next, res.name)
			continue
		}
		for _, err := range res.unresolved {
			r.opts.Logger("%s: %v", res.name, err)
			var ue *UnresolvedError
			if errors.As(err, &ue) {
				observability.Resolver().OnUnresolved(ctx, res.name, ue.Dependency.String())
			}
		}
		for _, target := range res.targets {
			r.opts.OnEdge(res.name, target)
			if _, ok := next[target]; !ok {
				next[target] = false
			}
		}
		next[res.name] = true
	}
	return next, nil
}

func (r *Resolver) expand(name string) expansion {
	pkg, err := r.index.Package(name)
	if err != nil {
		return expansion{name: name, err: err}
	}

	exp := expansion{name: name}
	for _, dep := range pkg.Depends {
		target, err := r.Resolve(dep)
		if err != nil {
			exp.unresolved = append(exp.unresolved, err)
			continue
		}
		exp.targets = append(exp.targets, target)
	}
	return exp
}

// Resolve maps a dependency to the name of an installed package.
//
// Provisions are consulted first, in index enumeration order, and the first
// one with a matching name whose version is absent or satisfies the
// constraint wins. Only then is a package with exactly the dependency's name
// accepted, whatever its version. Otherwise the error is an
// [*UnresolvedError].
func (r *Resolver) Resolve(dep Dependency) (string, error) {
	if err := r.load(); err != nil {
		return "", err
	}

	for _, p := range r.providers[dep.Name] {
		if dep.SatisfiedBy(p.version, r.index.VerCmp) {
			return p.pkg, nil
		}
	}

	if pkg, err := r.index.Package(dep.Name); err == nil {
		return pkg.Name, nil
	}
	return "", &UnresolvedError{Dependency: dep}
}

// load builds the capability table once per Resolver.
func (r *Resolver) load() error {
	r.once.Do(func() {
		names, err := r.index.Packages()
		if err != nil {
			r.loadErr = fmt.Errorf("list packages: %w", err)
			return
		}

		r.providers = make(map[string][]provider)
		for _, name := range names {
			pkg, err := r.index.Package(name)
			if err != nil {
				r.opts.Logger("skipping provisions of %s: %v", name, err)
				continue
			}
			for _, p := range pkg.Provides {
				r.providers[p.Name] = append(r.providers[p.Name], provider{pkg: pkg.Name, version: p.Version})
			}
		}
	})
	return r.loadErr
}
