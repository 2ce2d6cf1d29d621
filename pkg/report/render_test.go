package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/pkgdu/pkg/deps"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		si   bool
		want string
	}{
		{0, false, "0 B"},
		{0, true, "0 B"},
		{999, true, "999 B"},
		{1000, true, "1 kB"},
		{1000, false, "1000 B"},
		{1024, false, "1 KiB"},
		{1536, false, "1.5 KiB"},
		{2756519, true, "2.757 MB"},
		{2756519, false, "2.629 MiB"},
		{123456789, true, "123.5 MB"},
		{5 << 30, false, "5 GiB"},
		{1048575, false, "1 MiB"},
		{1023999, false, "1000 KiB"},
		{999999, true, "1 MB"},
		{999949, true, "999.9 kB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.size, tt.si); got != tt.want {
			t.Errorf("FormatSize(%d, %v) = %q, want %q", tt.size, tt.si, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	rows := []Row{
		{Name: "a", InstalledSize: 1536},
		{Name: "bb", InstalledSize: 10},
		{Name: TotalName, InstalledSize: 1546},
	}

	var buf bytes.Buffer
	if err := Render(&buf, rows, RenderOptions{}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Render() = %q, want 3 lines", buf.String())
	}
	nameCol := strings.Index(lines[0], "a")
	for i, name := range []string{"a", "bb", TotalName} {
		if got := strings.Index(lines[i], name); got != nameCol {
			t.Errorf("line %d: name %q at column %d, want %d (%q)", i, name, got, nameCol, lines[i])
		}
		if strings.HasSuffix(lines[i], " ") {
			t.Errorf("line %d has trailing spaces: %q", i, lines[i])
		}
	}
	if !strings.HasPrefix(lines[0], "1.5 KiB") || !strings.HasPrefix(lines[1], "10 B") {
		t.Errorf("Render() = %q", buf.String())
	}
}

func TestRenderKeepsEveryRow(t *testing.T) {
	rows := Assemble(context.Background(), []string{"A", "B"}, lookup(
		deps.Package{Name: "A", InstalledSize: 100},
		deps.Package{Name: "B", InstalledSize: 50},
	), Options{Sort: SizeDesc, Total: true})

	var buf bytes.Buffer
	if err := Render(&buf, rows, RenderOptions{}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if want := "100 B  A\n50 B   B\n150 B  (TOTAL)\n"; buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
}

func TestRenderQuiet(t *testing.T) {
	rows := Assemble(context.Background(), []string{"A", "B"}, lookup(
		deps.Package{Name: "A", InstalledSize: 100},
		deps.Package{Name: "B", InstalledSize: 50},
	), Options{Quiet: true})

	var buf bytes.Buffer
	if err := Render(&buf, rows, RenderOptions{}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if want := "150 B  (TOTAL)\n"; buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
}

func TestRenderExact(t *testing.T) {
	rows := []Row{{Name: "a", InstalledSize: 1000}, {Name: "bb", InstalledSize: 10}}

	var buf bytes.Buffer
	if err := Render(&buf, rows, RenderOptions{SI: true}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if want := "1 kB  a\n10 B  bb\n"; buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
}

func TestRenderDescription(t *testing.T) {
	rows := []Row{
		{Name: "zlib", InstalledSize: 1, Description: "Compression library"},
		{Name: "glibc", InstalledSize: 2, Description: "GNU C Library"},
		{Name: TotalName, InstalledSize: 3},
	}

	var buf bytes.Buffer
	if err := Render(&buf, rows, RenderOptions{Description: true}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Render() = %q, want 3 lines", buf.String())
	}
	descCol := strings.Index(lines[0], "Compression")
	if got := strings.Index(lines[1], "GNU"); got != descCol {
		t.Errorf("description columns differ: %d vs %d\n%s", got, descCol, buf.String())
	}
	if !strings.HasSuffix(lines[2], TotalName) {
		t.Errorf("total line = %q", lines[2])
	}

	buf.Reset()
	if err := Render(&buf, rows, RenderOptions{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Compression") {
		t.Errorf("descriptions rendered when disabled: %q", buf.String())
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil, RenderOptions{}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Render(nil) = %q, want empty", buf.String())
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestRenderWriteError(t *testing.T) {
	want := errors.New("broken pipe")
	err := Render(failingWriter{want}, []Row{{Name: "a"}}, RenderOptions{})
	if !errors.Is(err, want) {
		t.Errorf("Render() error = %v, want %v", err, want)
	}
}
