// Package alpm reads the pacman local package database without libalpm.
//
// [Open] lists the entries of <DBPath>/local and returns a [LocalDB], which
// implements deps.Index: package names, lazily parsed desc files (name,
// version, description, installed size, depends, provides) and pacman's
// version ordering ([VerCmp]).
//
// [LoadConfig] locates the database from pacman.conf:
//
//	cfg, err := alpm.LoadConfig(alpm.DefaultConfigPath)
//	if err != nil {
//	    return err
//	}
//	db, err := cfg.OpenLocalDB()
//
// Nothing in this package writes to the database.
package alpm
