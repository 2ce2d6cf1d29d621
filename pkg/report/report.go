package report

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/pkgdu/pkg/deps"
	"github.com/matzehuels/pkgdu/pkg/errors"
	"github.com/matzehuels/pkgdu/pkg/observability"
)

// TotalName is the name of the synthetic grand total row.
const TotalName = "(TOTAL)"

// SortOrder selects how package rows are ordered. The zero value is
// SizeDesc.
type SortOrder int

const (
	SizeDesc SortOrder = iota
	SizeAsc
	NameAsc
	NameDesc
)

var sortNames = [...]string{
	SizeDesc: "installed-size-desc",
	SizeAsc:  "installed-size-asc",
	NameAsc:  "name-asc",
	NameDesc: "name-desc",
}

// SortOrders lists the accepted flag values.
func SortOrders() []string {
	return []string{sortNames[NameAsc], sortNames[NameDesc], sortNames[SizeAsc], sortNames[SizeDesc]}
}

func (s SortOrder) String() string {
	if s < 0 || int(s) >= len(sortNames) {
		return "unknown"
	}
	return sortNames[s]
}

// Set parses a flag value.
func (s *SortOrder) Set(v string) error {
	for i, name := range sortNames {
		if v == name {
			*s = SortOrder(i)
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid sort order %q (valid: %s)", v, strings.Join(SortOrders(), ", "))
}

// Type names the flag value type in help output.
func (s *SortOrder) Type() string { return "order" }

// UnmarshalText lets a SortOrder be read from configuration files.
func (s *SortOrder) UnmarshalText(text []byte) error { return s.Set(string(text)) }

func (s SortOrder) compare(a, b Row) int {
	switch s {
	case SizeAsc:
		return cmp.Compare(a.InstalledSize, b.InstalledSize)
	case NameAsc:
		return strings.Compare(a.Name, b.Name)
	case NameDesc:
		return strings.Compare(b.Name, a.Name)
	default:
		return cmp.Compare(b.InstalledSize, a.InstalledSize)
	}
}

// Options controls row assembly.
type Options struct {
	Sort        SortOrder
	Description bool // Keep package descriptions
	Total       bool // Append a (TOTAL) row
	Quiet       bool // Only the (TOTAL) row; implies Total
}

// Row is one line of the report.
type Row struct {
	Name          string
	InstalledSize int64
	Description   string
}

// Lookup fetches package metadata by name. deps.Index satisfies it.
type Lookup interface {
	Package(name string) (*deps.Package, error)
}

// Assemble builds report rows for names.
//
// Names whose lookup fails are dropped. The total is summed over every row
// that survives lookup, before sorting and before quiet mode discards the
// package rows, and the (TOTAL) row is always last. Rows with equal keys
// keep their input order.
func Assemble(ctx context.Context, names []string, idx Lookup, opts Options) []Row {
	hooks := observability.Report()

	rows := make([]Row, 0, len(names)+1)
	for _, name := range names {
		pkg, err := idx.Package(name)
		if err != nil {
			hooks.OnRowDropped(ctx, name, err)
			continue
		}
		row := Row{Name: pkg.Name, InstalledSize: pkg.InstalledSize}
		if opts.Description {
			row.Description = pkg.Description
		}
		rows = append(rows, row)
	}

	total := Total(rows)
	slices.SortStableFunc(rows, opts.Sort.compare)

	if opts.Quiet {
		rows = rows[:0]
	}
	if opts.Total || opts.Quiet {
		rows = append(rows, Row{Name: TotalName, InstalledSize: total})
	}

	hooks.OnReportAssembled(ctx, len(rows), total)
	return rows
}

// Total sums the installed size of rows, skipping any (TOTAL) row.
func Total(rows []Row) int64 {
	var total int64
	for _, r := range rows {
		if r.Name == TotalName {
			continue
		}
		total += r.InstalledSize
	}
	return total
}
