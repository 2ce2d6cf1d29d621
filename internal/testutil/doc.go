// Package testutil provides test fixtures for the pacman local database.
//
// # Fixtures
//
// Raw files are embedded using go:embed:
//
//	fixtures/pacman.conf   stock Arch Linux pacman.conf
//	fixtures/desc          local database desc file of zstd
//
// # Local Databases
//
// WriteLocalDB lays out a throwaway database under t.TempDir() and returns
// the DBPath to hand to alpm.Open:
//
//	dbPath := testutil.WriteLocalDB(t,
//	    testutil.Pkg{Name: "a", Size: 100, Depends: []string{"b"}},
//	    testutil.Pkg{Name: "b", Size: 50},
//	)
//	db, err := alpm.Open(dbPath)
package testutil
