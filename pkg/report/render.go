package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/docker/go-units"
)

const (
	columnGap  = 2
	sizeFormat = "%.4g %s"
)

var (
	decimalUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}
	binaryUnits  = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}
)

// FormatSize renders a byte count for humans: powers of 1000 with SI units
// when si is set, powers of 1024 with IEC units otherwise.
func FormatSize(size int64, si bool) string {
	base, names := 1024.0, binaryUnits
	if si {
		base, names = 1000.0, decimalUnits
	}

	s := units.CustomSize(sizeFormat, float64(size), base, names)

	// Four significant digits can round up to the base (1048575 B gives
	// "1024 KiB"); carry into the next unit.
	num, unit, _ := strings.Cut(s, " ")
	v, err := strconv.ParseFloat(num, 64)
	i := slices.Index(names, unit)
	if err != nil || v < base || i < 0 || i == len(names)-1 {
		return s
	}
	return fmt.Sprintf(sizeFormat, v/base, names[i+1])
}

// RenderOptions controls the text layout.
type RenderOptions struct {
	Description bool // Add the description column
	SI          bool // Decimal units
}

// Render writes rows as a header-less, borderless, left-aligned table with
// the columns installed size, name and, optionally, description.
func Render(w io.Writer, rows []Row, opts RenderOptions) error {
	if len(rows) == 0 {
		return nil
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := []string{FormatSize(r.InstalledSize, opts.SI), r.Name}
		if opts.Description {
			cells = append(cells, r.Description)
		}
		data = append(data, cells)
	}

	last := len(data[0]) - 1
	cell := lipgloss.NewStyle().Align(lipgloss.Left)
	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		Rows(data...).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == last {
				return cell
			}
			return cell.PaddingRight(columnGap)
		})

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(t.Render(), "\n"), "\n") {
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
