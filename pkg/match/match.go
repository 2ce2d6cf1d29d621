// Package match selects package names by glob or regular expression.
//
// Glob patterns use doublestar syntax (*, ?, [a-z], {a,b}) and must match
// the whole name. Regular expressions use Go's RE2 syntax and match anywhere
// in the name unless anchored with ^ and $.
package match

import (
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/pkgdu/pkg/errors"
)

// Kind selects how patterns are interpreted.
type Kind int

const (
	Glob Kind = iota
	Regex
)

func (k Kind) String() string {
	switch k {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Matcher is a compiled pattern. It is safe for concurrent use.
type Matcher struct {
	kind    Kind
	pattern string
	re      *regexp.Regexp
}

// Compile compiles pattern once for repeated matching. Malformed patterns
// fail with INVALID_PATTERN.
func Compile(kind Kind, pattern string) (*Matcher, error) {
	if err := errors.ValidatePattern(pattern); err != nil {
		return nil, err
	}

	switch kind {
	case Glob:
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Wrap(errors.ErrCodeInvalidPattern, doublestar.ErrBadPattern, "invalid glob %q", pattern)
		}
		return &Matcher{kind: kind, pattern: pattern}, nil
	case Regex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "invalid regex %q", pattern)
		}
		return &Matcher{kind: kind, pattern: pattern, re: re}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown pattern kind %v", kind)
}

// Match reports whether name matches the pattern.
func (m *Matcher) Match(name string) bool {
	if m.re != nil {
		return m.re.MatchString(name)
	}
	ok, err := doublestar.Match(m.pattern, name)
	return err == nil && ok
}

// Kind returns the pattern kind.
func (m *Matcher) Kind() Kind { return m.kind }

// String returns the source pattern.
func (m *Matcher) String() string { return m.pattern }

// Set is a disjunction of matchers.
type Set []*Matcher

// CompileAll compiles every pattern with the same kind. The first malformed
// pattern aborts compilation.
func CompileAll(kind Kind, patterns []string) (Set, error) {
	set := make(Set, 0, len(patterns))
	for _, p := range patterns {
		m, err := Compile(kind, p)
		if err != nil {
			return nil, err
		}
		set = append(set, m)
	}
	return set, nil
}

// Any reports whether name matches at least one matcher. An empty set
// matches nothing.
func (s Set) Any(name string) bool {
	for _, m := range s {
		if m.Match(name) {
			return true
		}
	}
	return false
}

// Select returns the names accepted by include (nil accepts every name)
// and not rejected by exclude, preserving order.
func Select(names []string, include *Matcher, exclude Set) []string {
	var out []string
	for _, name := range names {
		if include != nil && !include.Match(name) {
			continue
		}
		if exclude.Any(name) {
			continue
		}
		out = append(out, name)
	}
	return out
}
