package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pkgdu/pkg/errors"
	"github.com/matzehuels/pkgdu/pkg/report"
)

const (
	appName  = "pkgdu"
	fileName = "config.toml"

	// EnvPath overrides the location of the defaults file.
	EnvPath = "PKGDU_CONFIG"
)

// File holds user defaults. Pointer fields are nil when the key is absent,
// so an explicit false can still override a built-in true.
type File struct {
	PacmanConf  string            `toml:"pacman_conf"`
	Root        string            `toml:"root"`
	DBPath      string            `toml:"dbpath"`
	Sort        *report.SortOrder `toml:"sort"`
	SI          *bool             `toml:"si"`
	Description *bool             `toml:"description"`
	Workers     int               `toml:"workers"`
}

// Path returns the defaults file location: PKGDU_CONFIG if set, otherwise
// the XDG config directory.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the defaults file at path. A missing file yields an empty File.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (File, error) {
	var f File
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot read %s", path)
	}

	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if f.Workers < 0 {
		return File{}, errors.New(errors.ErrCodeInvalidConfig, "%s: workers must not be negative", path)
	}
	return f, nil
}

// LoadDefault loads the file at [Path]. An undeterminable home directory is
// treated like a missing file.
func LoadDefault() (File, error) {
	path, err := Path()
	if err != nil {
		return File{}, nil
	}
	return Load(path)
}
