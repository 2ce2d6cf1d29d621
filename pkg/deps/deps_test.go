package deps

import (
	"errors"
	"fmt"
	"runtime"
	"testing"
)

func TestParseDependency(t *testing.T) {
	tests := []struct {
		in   string
		want Dependency
	}{
		{"glibc", Dependency{Name: "glibc"}},
		{"glibc>=2.38", Dependency{Name: "glibc", Constraint: Ge, Version: "2.38"}},
		{"glibc<=2.38", Dependency{Name: "glibc", Constraint: Le, Version: "2.38"}},
		{"libfoo.so=1-64", Dependency{Name: "libfoo.so", Constraint: Eq, Version: "1-64"}},
		{"python>3", Dependency{Name: "python", Constraint: Gt, Version: "3"}},
		{"python<4", Dependency{Name: "python", Constraint: Lt, Version: "4"}},
		{"java-runtime>=1:17.0-1", Dependency{Name: "java-runtime", Constraint: Ge, Version: "1:17.0-1"}},
		{"python-pygments: syntax highlighting", Dependency{Name: "python-pygments"}},
		{"qt6-base>=6.7: gui", Dependency{Name: "qt6-base", Constraint: Ge, Version: "6.7"}},
		{"  sh  ", Dependency{Name: "sh"}},
		{"foo>=", Dependency{Name: "foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseDependency(tt.in); got != tt.want {
				t.Errorf("ParseDependency(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseProvide(t *testing.T) {
	tests := []struct {
		in   string
		want Provide
	}{
		{"sh", Provide{Name: "sh"}},
		{"libzstd.so=1-64", Provide{Name: "libzstd.so", Version: "1-64"}},
		{"java-runtime=21", Provide{Name: "java-runtime", Version: "21"}},
		{"foo=", Provide{Name: "foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseProvide(tt.in); got != tt.want {
				t.Errorf("ParseProvide(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDependencyString(t *testing.T) {
	for _, s := range []string{"glibc", "glibc>=2.38", "a<=1", "b=2", "c>3", "d<4"} {
		if got := ParseDependency(s).String(); got != s {
			t.Errorf("ParseDependency(%q).String() = %q", s, got)
		}
	}
	for _, s := range []string{"sh", "libzstd.so=1-64"} {
		if got := ParseProvide(s).String(); got != s {
			t.Errorf("ParseProvide(%q).String() = %q", s, got)
		}
	}
}

func TestConstraintSatisfied(t *testing.T) {
	tests := []struct {
		c    Constraint
		cmp  int
		want bool
	}{
		{Any, -1, true}, {Any, 0, true}, {Any, 1, true},
		{Eq, -1, false}, {Eq, 0, true}, {Eq, 1, false},
		{Ge, -1, false}, {Ge, 0, true}, {Ge, 1, true},
		{Le, -1, true}, {Le, 0, true}, {Le, 1, false},
		{Gt, -1, false}, {Gt, 0, false}, {Gt, 1, true},
		{Lt, -1, true}, {Lt, 0, false}, {Lt, 1, false},
		{Constraint(42), 0, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v_%d", tt.c, tt.cmp), func(t *testing.T) {
			if got := tt.c.Satisfied(tt.cmp); got != tt.want {
				t.Errorf("%v.Satisfied(%d) = %v, want %v", tt.c, tt.cmp, got, tt.want)
			}
		})
	}
}

func TestConstraintString(t *testing.T) {
	want := map[Constraint]string{Any: "", Eq: "=", Ge: ">=", Le: "<=", Gt: ">", Lt: "<", Constraint(9): "Constraint(9)"}
	for c, s := range want {
		if got := c.String(); got != s {
			t.Errorf("Constraint(%d).String() = %q, want %q", int(c), got, s)
		}
	}
}

func TestSatisfiedByEmptyVersion(t *testing.T) {
	dep := Dependency{Name: "sh", Constraint: Ge, Version: "5"}
	called := false
	cmp := func(a, b string) int { called = true; return -1 }

	if !dep.SatisfiedBy("", cmp) {
		t.Error("unversioned provision should satisfy any constraint")
	}
	if called {
		t.Error("comparator should not be called for an unversioned provision")
	}
	if dep.SatisfiedBy("4", cmp) {
		t.Error("provision older than required should not satisfy >=")
	}
}

func TestUnresolvedError(t *testing.T) {
	var err error = &UnresolvedError{Dependency: ParseDependency("C>=1.0")}

	if !errors.Is(err, ErrUnresolved) {
		t.Error("UnresolvedError should match ErrUnresolved")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("UnresolvedError should not match ErrNotFound")
	}
	if got, want := err.Error(), "unresolved dependency: C>=1.0"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	if opts.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers = %d, want GOMAXPROCS", opts.Workers)
	}
	if opts.Logger == nil || opts.OnEdge == nil {
		t.Fatal("Logger and OnEdge should default to no-ops")
	}
	opts.Logger("ignored %d", 1)
	opts.OnEdge("a", "b")

	custom := Options{Workers: 3}.WithDefaults()
	if custom.Workers != 3 {
		t.Errorf("Workers = %d, want 3", custom.Workers)
	}
}

func TestResolutionSet(t *testing.T) {
	s := NewResolutionSet([]string{"c", "a", "b"})
	if s.Done() {
		t.Error("fresh set should not be done")
	}
	if got := s.Pending(); fmt.Sprint(got) != "[a b c]" {
		t.Errorf("Pending() = %v, want [a b c]", got)
	}

	s["a"] = true
	s["c"] = true
	if got := s.Pending(); fmt.Sprint(got) != "[b]" {
		t.Errorf("Pending() = %v, want [b]", got)
	}

	s["b"] = true
	if !s.Done() {
		t.Error("set with every name expanded should be done")
	}
	if got := s.Names(); fmt.Sprint(got) != "[a b c]" {
		t.Errorf("Names() = %v, want [a b c]", got)
	}
	if !NewResolutionSet(nil).Done() {
		t.Error("empty set should be done")
	}
}
