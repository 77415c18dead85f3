package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	for _, dir := range []string{baseDir, otherDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
	}

	target := filepath.Join(otherDir, "File.cs")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "File.cs")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "nested/File.cs" {
		t.Fatalf("expected nested/File.cs, got %q", got)
	}
}

func TestDetectFlags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    FileFlags
	}{
		{"plain", "class A {}\n", 0},
		{"bom", "\xEF\xBB\xBFclass A {}", FileHadBOM},
		{"crlf", "a\r\nb", FileHasCRLF},
		{"both", "\xEF\xBB\xBFa\r\n", FileHadBOM | FileHasCRLF},
		{"lone cr", "a\rb", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFlags([]byte(tt.content)); got != tt.want {
				t.Errorf("detectFlags() = %b, want %b", got, tt.want)
			}
		})
	}
}

func TestLineStart(t *testing.T) {
	idx := buildLineIndex([]byte("a\nbb\n"))
	cases := []struct {
		line uint32
		off  uint32
		ok   bool
	}{
		{0, 0, false},
		{1, 0, true},
		{2, 2, true},
		{3, 5, true},
		{4, 0, false},
	}
	for _, c := range cases {
		off, ok := lineStart(idx, c.line)
		if ok != c.ok || (ok && off != c.off) {
			t.Errorf("lineStart(%d) = %d,%v want %d,%v", c.line, off, ok, c.off, c.ok)
		}
	}
}
