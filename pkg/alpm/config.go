package alpm

import (
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/matzehuels/pkgdu/pkg/errors"
)

const (
	// DefaultConfigPath is where pacman reads its configuration.
	DefaultConfigPath = "/etc/pacman.conf"

	defaultRootDir = "/"
	defaultDBPath  = "var/lib/pacman"
)

// Config holds the subset of pacman.conf that locates the local database.
type Config struct {
	RootDir string // Installation root (default: /)
	DBPath  string // Database directory (default: <RootDir>/var/lib/pacman)
}

// LoadConfig reads the [options] section of a pacman.conf file. Bare keys
// (Color, CheckSpace) and repeated keys (Include) are accepted; Include
// directives are not followed since they only carry repository settings.
func LoadConfig(path string) (Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:        true,
		AllowShadows:            true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot load %s", path)
	}

	opts := f.Section("options")
	cfg := Config{
		RootDir: opts.Key("RootDir").String(),
		DBPath:  opts.Key("DBPath").String(),
	}
	return cfg.WithDefaults(), nil
}

// WithDefaults fills in an empty RootDir with "/" and an empty DBPath with
// var/lib/pacman below the root, mirroring pacman.
func (c Config) WithDefaults() Config {
	cfg := c
	if cfg.RootDir == "" {
		cfg.RootDir = defaultRootDir
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.RootDir, defaultDBPath)
	}
	return cfg
}

// OpenLocalDB opens the local database described by c.
func (c Config) OpenLocalDB() (*LocalDB, error) {
	return Open(c.WithDefaults().DBPath)
}
