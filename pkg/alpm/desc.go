package alpm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/pkgdu/pkg/deps"
)

// Section headers of a local database desc file that pkgdu reads. Every
// other section is skipped.
const (
	sectionName     = "%NAME%"
	sectionVersion  = "%VERSION%"
	sectionDesc     = "%DESC%"
	sectionSize     = "%SIZE%"
	sectionISize    = "%ISIZE%"
	sectionDepends  = "%DEPENDS%"
	sectionProvides = "%PROVIDES%"
)

const maxDescLine = 1 << 20

// ParseDesc reads a pacman desc file: "%SECTION%" header lines each followed
// by one value per line and terminated by a blank line.
func ParseDesc(r io.Reader) (*deps.Package, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxDescLine)

	pkg := &deps.Package{}
	section := ""
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case line == "":
			section = ""
		case section == "" && isSectionHeader(line):
			section = line
		default:
			if err := setField(pkg, section, line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if pkg.Name == "" {
		return nil, fmt.Errorf("missing %s section", sectionName)
	}
	return pkg, nil
}

func isSectionHeader(line string) bool {
	return len(line) > 2 && strings.HasPrefix(line, "%") && strings.HasSuffix(line, "%")
}

func setField(pkg *deps.Package, section, value string) error {
	switch section {
	case sectionName:
		pkg.Name = value
	case sectionVersion:
		pkg.Version = value
	case sectionDesc:
		pkg.Description = value
	case sectionSize, sectionISize:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid size %q", value)
		}
		pkg.InstalledSize = n
	case sectionDepends:
		pkg.Depends = append(pkg.Depends, deps.ParseDependency(value))
	case sectionProvides:
		pkg.Provides = append(pkg.Provides, deps.ParseProvide(value))
	}
	return nil
}
