package ui

import (
	"path/filepath"
	"strings"
	"testing"

	"contentfilter/internal/backup"
	"contentfilter/internal/filter"
)

func TestDiffStringCounts(t *testing.T) {
	add, del := diffStringCounts([]string{"a", "b", "c"}, []string{"b", "c", "d", "e"})
	if add != 2 || del != 1 {
		t.Fatalf("diffStringCounts() = +%d -%d, want +2 -1", add, del)
	}
	add, del = diffStringCounts(nil, nil)
	if add != 0 || del != 0 {
		t.Fatalf("diffStringCounts(nil) = +%d -%d", add, del)
	}
}

func TestBuildBackupPreview(t *testing.T) {
	t.Setenv("CONTENTFILTER_BACKUP_DIR", t.TempDir())
	storePath := filepath.Join(t.TempDir(), "store.json")
	data := filter.Data{
		"Child Safe Mode": {Whitelist: []string{"a"}, Blacklist: []string{"x", "y"}},
		"Custom Mode":     {Whitelist: []string{}, Blacklist: []string{}},
	}
	item, err := backup.Create(storePath, data, "", 0)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	same, err := buildBackupPreview(item, data)
	if err != nil {
		t.Fatalf("buildBackupPreview() error = %v", err)
	}
	if !strings.Contains(same, "modes 2, whitelist items 1, blacklist items 2") || !strings.Contains(same, "No differences") {
		t.Fatalf("preview = %q", same)
	}

	current := filter.Data{
		"Child Safe Mode": {Whitelist: []string{"a", "b"}, Blacklist: []string{"x"}},
	}
	diff, err := buildBackupPreview(item, current)
	if err != nil {
		t.Fatalf("buildBackupPreview() error = %v", err)
	}
	if !strings.Contains(diff, "Child Safe Mode: whitelist +0 -1, blacklist +1 -0") {
		t.Fatalf("preview = %q", diff)
	}
	if strings.Contains(diff, "Custom Mode:") {
		t.Fatalf("empty mode on both sides should not be listed: %q", diff)
	}
}

func TestBuildBackupPreviewMissingFile(t *testing.T) {
	if _, err := buildBackupPreview(backup.Backup{Path: filepath.Join(t.TempDir(), "gone.json")}, nil); err == nil {
		t.Fatalf("expected error for missing backup")
	}
}
