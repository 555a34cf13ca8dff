package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	raw := `
ui:
  theme: default
  split_view: true
store:
  path: /tmp/store.json
  autosave: true
backup:
  keep: 3
server:
  addr: ":9090"
  colour: blue
extras:
  foo: bar
`
	cfg := Default()
	warnings, err := parse([]byte(raw), &cfg)
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if !cfg.UI.SplitView || !cfg.Store.Autosave {
		t.Fatalf("bool fields not decoded: %#v", cfg)
	}
	if cfg.Store.Path != "/tmp/store.json" || cfg.Backup.Keep != 3 || cfg.Server.Addr != ":9090" {
		t.Fatalf("parse() = %#v", cfg)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", warnings)
	}
	if !strings.Contains(warnings[0], `unknown server key "colour"`) {
		t.Fatalf("warnings[0] = %q", warnings[0])
	}
	if !strings.Contains(warnings[1], `unknown section "extras"`) {
		t.Fatalf("warnings[1] = %q", warnings[1])
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg := Default()
	if _, err := parse([]byte("advanced:\n  log_level: debug\n"), &cfg); err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if cfg.Advanced.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.Advanced.LogLevel)
	}
	if cfg.Backup.Keep != defaultKeep || cfg.Server.Addr != defaultAddr {
		t.Fatalf("defaults lost: %#v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not a mapping", raw: "- a\n- b\n"},
		{name: "bad type", raw: "backup:\n  keep: many\n"},
		{name: "broken yaml", raw: "ui: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if _, err := parse([]byte(tt.raw), &cfg); err == nil {
				t.Fatalf("parse(%q) expected error", tt.raw)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	cfg := Default()
	warnings, err := parse(nil, &cfg)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("parse(nil) = %v, %v", warnings, err)
	}
}

func TestNormalizeConfig(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "neon"
	cfg.Backup.Keep = -1
	cfg.Store.Path = " "
	cfg.Server.PasswordHash = "$2a$10$x"

	warnings := normalizeConfig(&cfg)
	if len(warnings) != 3 {
		t.Fatalf("warnings = %v, want 3", warnings)
	}
	if cfg.UI.Theme != "default" || cfg.Backup.Keep != defaultKeep || cfg.Store.Path != defaultStoreRel {
		t.Fatalf("normalizeConfig() = %#v", cfg)
	}
	if cfg.Server.Username != "admin" || !cfg.AuthEnabled() {
		t.Fatalf("server auth not normalized: %#v", cfg.Server)
	}
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("store:\n  path: mine.json\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONTENTFILTER_CONFIG", path)

	cfg, warnings, used, found, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found || used != path {
		t.Fatalf("Load() found=%v path=%q", found, used)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	if cfg.Store.Path != "mine.json" {
		t.Fatalf("Store.Path = %q", cfg.Store.Path)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CONTENTFILTER_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	cfg, _, _, found, err := Load()
	if err != nil || found {
		t.Fatalf("Load() found=%v err=%v", found, err)
	}
	if cfg != Default() {
		t.Fatalf("Load() = %#v, want defaults", cfg)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	raw, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	cfg := Config{}
	warnings, err := parse(raw, &cfg)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("parse(Marshal()) = %v, %v", warnings, err)
	}
	if cfg != Default() {
		t.Fatalf("round trip = %#v, want %#v", cfg, Default())
	}
}

func TestLoadZeroKeepUsesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backup:\n  keep: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONTENTFILTER_CONFIG", path)

	cfg, warnings, _, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backup.Keep != defaultKeep {
		t.Fatalf("Backup.Keep = %d, want %d", cfg.Backup.Keep, defaultKeep)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "backup.keep 0") {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestDirFollowsConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONTENTFILTER_CONFIG", filepath.Join(dir, "config.yaml"))
	got, err := Dir()
	if err != nil || got != dir {
		t.Fatalf("Dir() = %q, %v; want %q", got, err, dir)
	}
}
