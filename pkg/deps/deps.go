package deps

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound is returned by [Index.Package] when no installed package has
	// the requested name.
	ErrNotFound = errors.New("package not found")

	// ErrUnresolved is matched by every [UnresolvedError].
	ErrUnresolved = errors.New("unresolved dependency")
)

// Index is read-only access to an installed package set.
//
// Implementations must return the same answers for the whole lifetime of a
// [Resolver] and must be safe for concurrent calls to Package and VerCmp.
type Index interface {
	// Packages lists every installed package name in enumeration order.
	Packages() ([]string, error)
	// Package returns the named package or an error matching ErrNotFound.
	Package(name string) (*Package, error)
	// VerCmp compares two versions using the ecosystem's ordering and returns
	// -1, 0 or 1.
	VerCmp(a, b string) int
}

// Package is a snapshot of one installed package.
type Package struct {
	Name          string       // Unique, case-sensitive
	Version       string       // Full version string (epoch:pkgver-pkgrel)
	Description   string       // May be empty
	InstalledSize int64        // Bytes on disk
	Depends       []Dependency // Runtime requirements, in declaration order
	Provides      []Provide    // Capabilities advertised, in declaration order
}

// Constraint is the comparison operator of a versioned dependency.
type Constraint int

const (
	Any Constraint = iota
	Eq
	Ge
	Le
	Gt
	Lt
)

var constraintOps = [...]string{Any: "", Eq: "=", Ge: ">=", Le: "<=", Gt: ">", Lt: "<"}

// String returns the operator as written in package metadata.
func (c Constraint) String() string {
	if c < 0 || int(c) >= len(constraintOps) {
		return fmt.Sprintf("Constraint(%d)", int(c))
	}
	return constraintOps[c]
}

// Satisfied reports whether a comparison result cmp (provided version
// compared to required version) meets the constraint.
func (c Constraint) Satisfied(cmp int) bool {
	switch c {
	case Any:
		return true
	case Eq:
		return cmp == 0
	case Ge:
		return cmp >= 0
	case Le:
		return cmp <= 0
	case Gt:
		return cmp > 0
	case Lt:
		return cmp < 0
	}
	return false
}

// Dependency is one entry of a package's depends list. Version is set iff
// Constraint is not Any.
type Dependency struct {
	Name       string
	Constraint Constraint
	Version    string
}

// String renders the dependency in pacman notation, e.g. "glibc>=2.38".
func (d Dependency) String() string {
	if d.Constraint == Any {
		return d.Name
	}
	return d.Name + d.Constraint.String() + d.Version
}

// SatisfiedBy reports whether a provision at version satisfies d. An empty
// version satisfies every constraint.
func (d Dependency) SatisfiedBy(version string, vercmp func(a, b string) int) bool {
	if version == "" || d.Constraint == Any {
		return true
	}
	return d.Constraint.Satisfied(vercmp(version, d.Version))
}

// Provide is a capability advertised by a package. An empty Version means the
// capability satisfies any version constraint.
type Provide struct {
	Name    string
	Version string
}

// String renders the provision in pacman notation, e.g. "libfoo.so=1-64".
func (p Provide) String() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "=" + p.Version
}

// ParseDependency parses pacman dependency notation: "name", "name=ver",
// "name>=ver", "name<=ver", "name>ver" or "name<ver". A trailing
// optional-dependency description ("name: reason") is dropped.
func ParseDependency(s string) Dependency {
	if i := strings.Index(s, ": "); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)

	i := strings.IndexAny(s, "<>=")
	if i < 0 {
		return Dependency{Name: s}
	}

	name, rest := s[:i], s[i:]
	var c Constraint
	switch {
	case strings.HasPrefix(rest, ">="):
		c, rest = Ge, rest[2:]
	case strings.HasPrefix(rest, "<="):
		c, rest = Le, rest[2:]
	case strings.HasPrefix(rest, "="):
		c, rest = Eq, rest[1:]
	case strings.HasPrefix(rest, ">"):
		c, rest = Gt, rest[1:]
	default:
		c, rest = Lt, rest[1:]
	}
	if rest == "" {
		return Dependency{Name: name}
	}
	return Dependency{Name: name, Constraint: c, Version: rest}
}

// ParseProvide parses "name" or "name=version".
func ParseProvide(s string) Provide {
	name, version, _ := strings.Cut(strings.TrimSpace(s), "=")
	return Provide{Name: name, Version: version}
}

// UnresolvedError reports a dependency that matched neither a provision nor a
// package name.
type UnresolvedError struct {
	Dependency Dependency
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved dependency: %s", e.Dependency)
}

// Is makes errors.Is(err, ErrUnresolved) true.
func (e *UnresolvedError) Is(target error) bool { return target == ErrUnresolved }

// Options configures a [Resolver].
type Options struct {
	Workers int                   // Concurrent lookups per pass (default: GOMAXPROCS)
	Logger  func(string, ...any)  // Warning callback for skipped packages and edges (optional)
	OnEdge  func(from, to string) // Called for every resolved dependency edge (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if opts.OnEdge == nil {
		opts.OnEdge = func(string, string) {}
	}
	return opts
}
