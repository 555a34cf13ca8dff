package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"contentfilter/internal/backup"
	"contentfilter/internal/codec"
	"contentfilter/internal/filter"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	t.Setenv("CONTENTFILTER_BACKUP_DIR", t.TempDir())
	return NewModel(filter.NewStore(), Options{StorePath: filepath.Join(t.TempDir(), "store.json")})
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(filter.NewStore(), Options{SplitView: true})

	if m.opts.StorePath != codec.DefaultStorePath {
		t.Fatalf("StorePath = %q, want %q", m.opts.StorePath, codec.DefaultStorePath)
	}
	if m.opts.BackupKeep != backup.DefaultKeep {
		t.Fatalf("BackupKeep = %d, want %d", m.opts.BackupKeep, backup.DefaultKeep)
	}
	if !m.splitView {
		t.Fatalf("split view option not applied")
	}
	if len(m.modes) != len(filter.Catalogue()) {
		t.Fatalf("modes = %v", m.modes)
	}
	if m.currentMode() != filter.DefaultMode() {
		t.Fatalf("currentMode() = %q, want %q", m.currentMode(), filter.DefaultMode())
	}
	if m.kind != filter.Whitelist || m.focus != focusModes {
		t.Fatalf("unexpected initial tab/focus: %v %v", m.kind, m.focus)
	}
}

func TestCurrentModeOutOfRange(t *testing.T) {
	m := Model{store: filter.NewStore(), modes: []string{"a"}, selected: 3}
	if got := m.currentMode(); got != "" {
		t.Fatalf("currentMode() = %q, want empty", got)
	}
	lists := m.currentLists()
	if len(lists.Whitelist) != 0 || len(lists.Blacklist) != 0 {
		t.Fatalf("currentLists() = %+v, want empty", lists)
	}
}

func TestNewModelShowsLoadError(t *testing.T) {
	loadErr := errors.New("load store: decode store: bad json")
	m := NewModel(filter.NewStore(), Options{Autosave: true, LoadErr: loadErr})

	if !errors.Is(m.err, loadErr) {
		t.Fatalf("err = %v, want load error", m.err)
	}
	if m.opts.Autosave {
		t.Fatalf("autosave should stay off after a failed load")
	}
	if view := m.View(); !strings.Contains(view, "decode store: bad json") {
		t.Fatalf("View() does not show the load error:\n%s", view)
	}
}
