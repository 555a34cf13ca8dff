package backup

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"contentfilter/internal/codec"
	"contentfilter/internal/filter"
)

const (
	timeFormat   = "20060102-150405"
	DefaultKeep  = 10
	backupFolder = ".config/contentfilter/backups"
	filePrefix   = "store-"
	fileExt      = ".json"
)

var ErrEmptyPath = errors.New("backup path is empty")

// Backup is one snapshot of a store file.
type Backup struct {
	Path        string
	Store       string
	Time        time.Time
	Size        int64
	Description string
}

// Summary renders the backup for listings, e.g. "3 minutes ago  1.2 kB  before clear".
func (b Backup) Summary() string {
	parts := []string{humanize.Time(b.Time), humanize.Bytes(uint64(b.Size))}
	if b.Description != "" {
		parts = append(parts, b.Description)
	}
	return strings.Join(parts, "  ")
}

func Dir() (string, error) {
	if dir := os.Getenv("CONTENTFILTER_BACKUP_DIR"); dir != "" {
		return dir, nil
	}
	home, err := resolveHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, backupFolder), nil
}

func resolveHomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		u, err := user.Lookup(sudoUser)
		if err == nil && u.HomeDir != "" {
			return u.HomeDir, nil
		}
	}
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	return os.UserHomeDir()
}

// StoreName derives the backup key from a store file path.
func StoreName(storePath string) string {
	base := filepath.Base(storePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "store"
	}
	return b.String()
}

// Create writes a snapshot of data for the store at storePath and prunes old
// snapshots down to keep. keep <= 0 disables pruning.
func Create(storePath string, data filter.Data, description string, keep int) (Backup, error) {
	dir, err := Dir()
	if err != nil {
		return Backup{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Backup{}, err
	}
	raw, err := codec.EncodeStore(data)
	if err != nil {
		return Backup{}, err
	}

	store := StoreName(storePath)
	ts := time.Now()
	suffix := ""
	desc := strings.TrimSpace(description)
	if desc != "" {
		desc = truncateDescription(desc, 40)
		suffix = "__" + url.PathEscape(desc)
	}
	name := fmt.Sprintf("%s%s-%s%s%s", filePrefix, store, ts.Format(timeFormat), suffix, fileExt)
	dest := filepath.Join(dir, name)
	if err := os.WriteFile(dest, raw, 0o644); err != nil {
		return Backup{}, err
	}
	slog.Info("backup created", "store", store, "dest", dest, "description", desc)

	b := Backup{
		Path:        dest,
		Store:       store,
		Time:        ts,
		Size:        int64(len(raw)),
		Description: desc,
	}
	_ = prune(storePath, keep)
	return b, nil
}

// List returns the snapshots of a store, newest first.
func List(storePath string) ([]Backup, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	store := StoreName(storePath)
	prefix := filePrefix + store + "-"
	items := make([]Backup, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, fileExt) {
			continue
		}
		tsPart := strings.TrimSuffix(strings.TrimPrefix(name, prefix), fileExt)
		desc := ""
		if parts := strings.SplitN(tsPart, "__", 2); len(parts) == 2 {
			tsPart = parts[0]
			if decoded, err := url.PathUnescape(parts[1]); err == nil {
				desc = decoded
			} else {
				desc = parts[1]
			}
		}
		ts, err := time.ParseInLocation(timeFormat, tsPart, time.Local)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, Backup{
			Path:        filepath.Join(dir, name),
			Store:       store,
			Time:        ts,
			Size:        info.Size(),
			Description: desc,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Time.Equal(items[j].Time) {
			return items[i].Path > items[j].Path
		}
		return items[i].Time.After(items[j].Time)
	})
	return items, nil
}

// Load decodes a snapshot.
func Load(b Backup) (filter.Data, error) {
	if b.Path == "" {
		return nil, ErrEmptyPath
	}
	return codec.LoadStore(b.Path)
}

// Restore writes the snapshot over the store file. The current content, when
// given, is snapshotted first so a restore can itself be undone.
func Restore(b Backup, storePath string, current filter.Data, keep int) (filter.Data, error) {
	data, err := Load(b)
	if err != nil {
		return nil, err
	}
	if current != nil {
		if _, err := Create(storePath, current, "pre-restore", keep); err != nil {
			return nil, fmt.Errorf("pre-restore backup: %w", err)
		}
	}
	if err := codec.SaveStore(storePath, data); err != nil {
		return nil, err
	}
	slog.Info("backup restored", "src", b.Path, "dest", storePath)
	return data, nil
}

func prune(storePath string, keep int) error {
	if keep <= 0 {
		return nil
	}
	items, err := List(storePath)
	if err != nil {
		return err
	}
	if len(items) <= keep {
		return nil
	}
	for _, b := range items[keep:] {
		_ = os.Remove(b.Path)
	}
	return nil
}

func truncateDescription(desc string, max int) string {
	if max <= 0 || desc == "" {
		return ""
	}
	if utf8.RuneCountInString(desc) <= max {
		return desc
	}
	runes := []rune(desc)
	return string(runes[:max])
}
