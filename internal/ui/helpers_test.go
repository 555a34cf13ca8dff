package ui

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		items []string
		want  string
	}{
		{items: nil, want: ""},
		{items: []string{"export.csv"}, want: "export.csv"},
		{items: []string{"export.csv", "export.txt"}, want: "export."},
		{items: []string{"a", "b"}, want: ""},
	}
	for _, tt := range tests {
		if got := commonPrefix(tt.items); got != tt.want {
			t.Fatalf("commonPrefix(%v) = %q, want %q", tt.items, got, tt.want)
		}
	}
}

func TestLimitList(t *testing.T) {
	items := []string{"a", "b", "c"}
	if got := limitList(items, 5); !reflect.DeepEqual(got, items) {
		t.Fatalf("limitList() = %v", got)
	}
	if got := limitList(items, 2); !reflect.DeepEqual(got, []string{"a", "b", "..."}) {
		t.Fatalf("limitList() = %v", got)
	}
}

func TestSplitAndJoinPath(t *testing.T) {
	dir, base := splitPath("/tmp/exports/")
	if dir != "/tmp/exports/" || base != "" {
		t.Fatalf("splitPath(dir/) = %q, %q", dir, base)
	}
	dir, base = splitPath("exp")
	if dir != "." || base != "exp" {
		t.Fatalf("splitPath(exp) = %q, %q", dir, base)
	}
	if got := joinPath(".", "file.csv"); got != "file.csv" {
		t.Fatalf("joinPath(.) = %q", got)
	}
	if got := joinPath("/tmp", "file.csv"); got != "/tmp/file.csv" {
		t.Fatalf("joinPath(/tmp) = %q", got)
	}
}

func TestExpandUserPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, tilde, h := expandUserPath("~/lists.csv")
	if !tilde || h != home || got != filepath.Join(home, "lists.csv") {
		t.Fatalf("expandUserPath() = %q, %v, %q", got, tilde, h)
	}
	if got, tilde, _ := expandUserPath("plain.csv"); tilde || got != "plain.csv" {
		t.Fatalf("expandUserPath(plain) = %q, %v", got, tilde)
	}
}

func TestCompletePath(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"kids.csv", "kids.txt", "teens.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	m := newTestModel(t)
	m.startPathInput(inputImport, "", filepath.Join(dir, "te"))

	m.completePath()
	if got := m.input.Value(); got != filepath.Join(dir, "teens.csv") {
		t.Fatalf("completion = %q", got)
	}

	m.input.SetValue(filepath.Join(dir, "ki"))
	m.completePath()
	if got := m.input.Value(); got != filepath.Join(dir, "kids.") {
		t.Fatalf("completion = %q", got)
	}

	m.completePath()
	if !strings.HasPrefix(m.notice, "Matches: kids.csv  kids.txt") {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestDefaultExportPath(t *testing.T) {
	m := newTestModel(t)
	got := m.defaultExportPath()
	if !strings.HasPrefix(got, "content_filter_Child Safe Mode_") || !strings.HasSuffix(got, ".csv") {
		t.Fatalf("defaultExportPath() = %q", got)
	}

	m.opts.ExportDir = "/srv/exports"
	if got := m.defaultExportPath(); filepath.Dir(got) != "/srv/exports" {
		t.Fatalf("defaultExportPath() with dir = %q", got)
	}
}
