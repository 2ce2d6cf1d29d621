package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v9.9.9"
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} v9.9.9\n") {
		t.Errorf("Template() = %q, want prefix with version", tmpl)
	}
	if !strings.Contains(String(), "version: v9.9.9") {
		t.Errorf("String() = %q, want version line", String())
	}
}

func TestFill(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name string
		in   Info
		want Info
	}{
		{
			name: "defaults filled from toolchain",
			in:   Info{Version: "dev", Commit: "none", Date: "unknown"},
			want: Info{Version: "v1.2.0", Commit: "0123456789ab", Date: "2025-01-02T03:04:05Z"},
		},
		{
			name: "ldflags win",
			in:   Info{Version: "v0.3.0", Commit: "abc1234", Date: "2024-12-20"},
			want: Info{Version: "v0.3.0", Commit: "abc1234", Date: "2024-12-20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.fill(bi); got != tt.want {
				t.Errorf("fill() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFillDevelBuild(t *testing.T) {
	bi := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	got := Info{Version: "dev", Commit: "none", Date: "unknown"}.fill(bi)
	if got.Version != "dev" {
		t.Errorf("Version = %q, want dev for (devel) builds", got.Version)
	}
}
