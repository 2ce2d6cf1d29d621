// Package report turns a set of package names into the disk usage table.
//
// [Assemble] looks every name up, sorts the rows and appends the grand total;
// [Render] prints them:
//
//	rows := report.Assemble(ctx, names, db, report.Options{Total: true})
//	err := report.Render(os.Stdout, rows, report.RenderOptions{SI: true})
//
// which prints, for example:
//
//	2.757 MB  zstd
//	1.001 MB  zlib
//	3.758 MB  (TOTAL)
package report
