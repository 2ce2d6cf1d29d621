// Package config loads the optional per-user defaults file.
//
// The file lives at $XDG_CONFIG_HOME/pkgdu/config.toml (falling back to
// ~/.config/pkgdu/config.toml), or wherever PKGDU_CONFIG points:
//
//	pacman_conf = "/etc/pacman.conf"
//	dbpath      = "/var/lib/pacman"
//	sort        = "name-asc"
//	si          = true
//	description = false
//	workers     = 4
//
// Command-line flags override the file; the file overrides built-in
// defaults. A missing file is not an error.
package config
