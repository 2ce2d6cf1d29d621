package alpm

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/pkgdu/pkg/deps"
	"github.com/matzehuels/pkgdu/pkg/errors"
)

// LocalDB is a read-only view of the pacman local database
// (<DBPath>/local/<name>-<pkgver>-<pkgrel>/desc). It implements [deps.Index].
//
// Entries are listed once by [Open]; desc files are parsed on first access
// and kept for the lifetime of the LocalDB. It is safe for concurrent use.
type LocalDB struct {
	dir     string
	names   []string
	entries map[string]string // package name -> entry directory

	mu   sync.RWMutex
	pkgs map[string]*deps.Package
}

// Open lists the local database under dbPath. A missing or unreadable
// database is a DATABASE_ERROR.
func Open(dbPath string) (*LocalDB, error) {
	dir := filepath.Join(dbPath, "local")
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "cannot read local database %s", dir)
	}

	db := &LocalDB{
		dir:     dir,
		entries: make(map[string]string, len(ents)),
		pkgs:    make(map[string]*deps.Package, len(ents)),
	}
	for _, e := range ents {
		if !e.IsDir() {
			continue // ALPM_DB_VERSION
		}
		name, ok := entryName(e.Name())
		if !ok || errors.ValidatePackageName(name) != nil {
			continue
		}
		if _, dup := db.entries[name]; dup {
			continue
		}
		db.entries[name] = e.Name()
		db.names = append(db.names, name)
	}
	return db, nil
}

// entryName strips "-pkgver-pkgrel" from a database entry directory name.
func entryName(dir string) (string, bool) {
	i := strings.LastIndexByte(dir, '-')
	if i <= 0 {
		return "", false
	}
	j := strings.LastIndexByte(dir[:i], '-')
	if j <= 0 {
		return "", false
	}
	return dir[:j], true
}

// Dir returns the local database directory.
func (db *LocalDB) Dir() string { return db.dir }

// Packages returns installed package names in database directory order.
func (db *LocalDB) Packages() ([]string, error) {
	return slices.Clone(db.names), nil
}

// Package returns the named package, parsing its desc file on first use.
func (db *LocalDB) Package(name string) (*deps.Package, error) {
	db.mu.RLock()
	pkg, ok := db.pkgs[name]
	db.mu.RUnlock()
	if ok {
		return pkg, nil
	}

	entry, ok := db.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", deps.ErrNotFound, name)
	}

	pkg, err := db.load(entry)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "read %s", entry)
	}
	if pkg.Name != name {
		return nil, errors.New(errors.ErrCodeDatabase, "entry %s describes %q", entry, pkg.Name)
	}

	db.mu.Lock()
	db.pkgs[name] = pkg
	db.mu.Unlock()
	return pkg, nil
}

func (db *LocalDB) load(entry string) (*deps.Package, error) {
	f, err := os.Open(filepath.Join(db.dir, entry, "desc"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDesc(f)
}

// VerCmp compares versions with pacman's ordering; see [VerCmp].
func (db *LocalDB) VerCmp(a, b string) int { return VerCmp(a, b) }

var _ deps.Index = (*LocalDB)(nil)
