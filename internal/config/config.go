package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	appDir          = "contentfilter"
	fileName        = "config.yaml"
	defaultKeep     = 10
	defaultAddr     = "127.0.0.1:8080"
	defaultStoreRel = "content_filter_config.json"
)

type Config struct {
	UI       UIConfig       `yaml:"ui"`
	Store    StoreConfig    `yaml:"store"`
	Export   ExportConfig   `yaml:"export"`
	Backup   BackupConfig   `yaml:"backup"`
	Server   ServerConfig   `yaml:"server"`
	Advanced AdvancedConfig `yaml:"advanced"`
}

type UIConfig struct {
	Theme     string `yaml:"theme"`
	SplitView bool   `yaml:"split_view"`
}

type StoreConfig struct {
	Path     string `yaml:"path"`
	Autosave bool   `yaml:"autosave"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

type BackupConfig struct {
	Keep int `yaml:"keep"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

type AdvancedConfig struct {
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		UI: UIConfig{
			Theme: "default",
		},
		Store: StoreConfig{
			Path: defaultStoreRel,
		},
		Backup: BackupConfig{
			Keep: defaultKeep,
		},
		Server: ServerConfig{
			Addr: defaultAddr,
		},
	}
}

// AuthEnabled reports whether the dashboard requires basic auth.
func (c Config) AuthEnabled() bool {
	return c.Server.PasswordHash != ""
}

func ResolvePath() (string, error) {
	if env := os.Getenv("CONTENTFILTER_CONFIG"); env != "" {
		return env, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Dir is the directory of the config file; the log file lives beside it.
func Dir() (string, error) {
	path, err := ResolvePath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// Load reads the first config file found. It returns the config, non-fatal
// warnings, the path used and whether a file was found.
func Load() (Config, []string, string, bool, error) {
	paths, err := candidatePaths()
	if err != nil {
		return Default(), nil, "", false, err
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Default(), nil, "", false, err
		}
		cfg := Default()
		warnings, err := parse(data, &cfg)
		if err != nil {
			return Default(), nil, "", false, fmt.Errorf("parse %s: %w", path, err)
		}
		warnings = append(warnings, normalizeConfig(&cfg)...)
		return cfg, warnings, path, true, nil
	}
	return Default(), nil, "", false, nil
}

func normalizeConfig(cfg *Config) []string {
	warnings := make([]string, 0)
	if cfg.UI.Theme != "" && cfg.UI.Theme != "default" {
		warnings = append(warnings, fmt.Sprintf("ui.theme %q is not supported; using default", cfg.UI.Theme))
	}
	cfg.UI.Theme = "default"
	if strings.TrimSpace(cfg.Store.Path) == "" {
		cfg.Store.Path = defaultStoreRel
	}
	if cfg.Backup.Keep <= 0 {
		warnings = append(warnings, fmt.Sprintf("backup.keep %d must be at least 1; using %d", cfg.Backup.Keep, defaultKeep))
		cfg.Backup.Keep = defaultKeep
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Server.PasswordHash != "" && cfg.Server.Username == "" {
		warnings = append(warnings, "server.password_hash set without server.username; using \"admin\"")
		cfg.Server.Username = "admin"
	}
	return warnings
}

var knownKeys = map[string]map[string]struct{}{
	"ui":       {"theme": {}, "split_view": {}},
	"store":    {"path": {}, "autosave": {}},
	"export":   {"dir": {}},
	"backup":   {"keep": {}},
	"server":   {"addr": {}, "username": {}, "password_hash": {}},
	"advanced": {"log_level": {}},
}

func parse(raw []byte, cfg *Config) ([]string, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping at top level", doc.Line)
	}
	warnings := unknownKeyWarnings(doc)
	if err := doc.Decode(cfg); err != nil {
		return warnings, err
	}
	return warnings, nil
}

func unknownKeyWarnings(doc *yaml.Node) []string {
	var warnings []string
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		section := strings.ToLower(key.Value)
		known, ok := knownKeys[section]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("line %d: unknown section %q", key.Line, key.Value))
			continue
		}
		if value.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(value.Content); j += 2 {
			sub := value.Content[j]
			if _, ok := known[sub.Value]; !ok {
				warnings = append(warnings, fmt.Sprintf("line %d: unknown %s key %q", sub.Line, section, sub.Value))
			}
		}
	}
	return warnings
}

func candidatePaths() ([]string, error) {
	if env := os.Getenv("CONTENTFILTER_CONFIG"); env != "" {
		return []string{env}, nil
	}
	primary, err := ResolvePath()
	if err != nil {
		return nil, err
	}
	paths := []string{primary}
	if sudoPath, ok := sudoConfigPath(primary); ok {
		paths = append(paths, sudoPath)
	}
	return paths, nil
}

func sudoConfigPath(primary string) (string, bool) {
	sudoUser := os.Getenv("SUDO_USER")
	if sudoUser == "" {
		return "", false
	}
	current := os.Getenv("USER")
	if current == sudoUser {
		return "", false
	}
	u, err := user.Lookup(sudoUser)
	if err != nil || u.HomeDir == "" {
		return "", false
	}
	path := filepath.Join(u.HomeDir, ".config", appDir, fileName)
	if path == primary {
		return "", false
	}
	return path, true
}

// Marshal renders cfg as YAML, used by "config init".
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
