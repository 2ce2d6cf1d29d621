package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// DefaultVersion is used for packages written without a version.
const DefaultVersion = "1.0-1"

// Pkg describes one local database entry.
type Pkg struct {
	Name     string
	Version  string // pkgver-pkgrel, optionally with epoch (default: DefaultVersion)
	Desc     string
	Size     int64
	Depends  []string // pacman notation, e.g. "glibc>=2.38"
	Provides []string // pacman notation, e.g. "libfoo.so=1-64"
}

func (p Pkg) version() string {
	if p.Version == "" {
		return DefaultVersion
	}
	return p.Version
}

// DescFile renders p in the local database desc format.
func (p Pkg) DescFile() string {
	var b strings.Builder
	section := func(name string, values ...string) {
		if len(values) == 0 {
			return
		}
		fmt.Fprintf(&b, "%%%s%%\n", name)
		for _, v := range values {
			b.WriteString(v + "\n")
		}
		b.WriteString("\n")
	}

	section("NAME", p.Name)
	section("VERSION", p.version())
	if p.Desc != "" {
		section("DESC", p.Desc)
	}
	section("ARCH", "x86_64")
	section("SIZE", fmt.Sprint(p.Size))
	section("REASON", "1")
	section("DEPENDS", p.Depends...)
	section("PROVIDES", p.Provides...)
	return b.String()
}

// WriteLocalDB creates a local database holding pkgs and returns its DBPath.
func WriteLocalDB(t testing.TB, pkgs ...Pkg) string {
	t.Helper()
	dbPath := t.TempDir()
	local := filepath.Join(dbPath, "local")
	if err := os.MkdirAll(local, 0o755); err != nil {
		t.Fatalf("create local db: %v", err)
	}
	if err := os.WriteFile(filepath.Join(local, "ALPM_DB_VERSION"), []byte("9\n"), 0o644); err != nil {
		t.Fatalf("write db version: %v", err)
	}
	for _, p := range pkgs {
		WritePackage(t, dbPath, p)
	}
	return dbPath
}

// WritePackage adds p to the local database under dbPath.
func WritePackage(t testing.TB, dbPath string, p Pkg) {
	t.Helper()
	dir := filepath.Join(dbPath, "local", p.Name+"-"+p.version())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create entry %s: %v", p.Name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "desc"), []byte(p.DescFile()), 0o644); err != nil {
		t.Fatalf("write desc %s: %v", p.Name, err)
	}
}
