package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "xdg")
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		output string
		args   []string
		want   string
	}{
		{"", nil, "layout"},
		{"", []string{"rooms/cafe.toml"}, "cafe"},
		{"plan", []string{"rooms/cafe.toml"}, "plan"},
		{"out/plan.svg", nil, "out/plan.svg"},
	}
	for _, tt := range tests {
		if got := outputBase(tt.output, tt.args); got != tt.want {
			t.Errorf("outputBase(%q, %v) = %q, want %q", tt.output, tt.args, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		base   string
		format string
		single bool
		want   string
	}{
		{"layout", "svg", true, "layout.svg"},
		{"plan.svg", "svg", true, "plan.svg"},
		{"plan.out", "png", true, "plan.out"},
		{"plan", "png", false, "plan.png"},
		{"plan.svg", "svg", false, "plan.svg"},
		{"plan.svg", "json", false, "plan.svg.json"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.base, tt.format, tt.single); got != tt.want {
			t.Errorf("outputPath(%q, %q, %v) = %q, want %q", tt.base, tt.format, tt.single, got, tt.want)
		}
	}
}
