// Package deps computes the dependency closure of installed packages.
//
// # Overview
//
// The package consumes an [Index], a read-only view of an installed package
// set (see the alpm package for the pacman local database implementation),
// and answers one question: given some seed packages, which installed
// packages do they require, directly or transitively?
//
// # Resolution
//
// Each [Dependency] names either a package or a capability. [Resolver.Resolve]
// maps it to an installed package:
//
//  1. the first provision (in index enumeration order) with the same name
//     whose version is absent or satisfies the constraint
//  2. otherwise the package with exactly that name, regardless of version
//
// Version constraints are evaluated with [Index.VerCmp], so the ordering
// rules (epochs, releases, alphanumeric segments) belong to the index.
//
// # Closure
//
// [Resolver.Closure] iterates [Resolver.Step], a pure transition from one
// [ResolutionSet] to the next, until every discovered name is expanded:
//
//	r := deps.NewResolver(db, deps.Options{
//	    Logger: func(msg string, args ...any) { logger.Warnf(msg, args...) },
//	})
//	names, err := r.Closure(ctx, []string{"firefox"})
//
// Missing packages and unresolved dependencies are reported through
// Options.Logger and skipped; they never abort the closure.
package deps
