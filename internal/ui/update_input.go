package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"contentfilter/internal/codec"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) beginInput(mode inputMode, placeholder, value string) tea.Cmd {
	m.err = nil
	m.notice = ""
	m.statsMode = false
	m.verdict = nil
	m.inputMode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) startAddInput() tea.Cmd {
	if m.currentMode() == "" {
		return nil
	}
	m.focus = focusMain
	return m.beginInput(inputAdd, "item, or several separated by commas", "")
}

func (m *Model) startSearch() tea.Cmd {
	m.focus = focusMain
	return m.beginInput(inputSearch, "search", m.searchQuery)
}

func (m *Model) startClearConfirm() tea.Cmd {
	if m.currentMode() == "" {
		return nil
	}
	cmd := m.beginInput(inputClearConfirm, "type yes to confirm", "")
	m.notice = "Clear all lists of " + m.currentMode() + "? Type yes to confirm"
	return cmd
}

func (m *Model) startCheck() tea.Cmd {
	if m.currentMode() == "" {
		return nil
	}
	return m.beginInput(inputCheck, "text to check", "")
}

func (m *Model) startManualBackup() tea.Cmd {
	if m.opts.DryRun {
		m.setDryRunNotice("create a backup of " + m.opts.StorePath)
		return nil
	}
	return m.beginInput(inputManualBackup, "backup description (optional)", "")
}

func (m *Model) startPathInput(mode inputMode, placeholder, value string) tea.Cmd {
	if mode == inputExport || mode == inputImport {
		if m.currentMode() == "" {
			return nil
		}
	}
	return m.beginInput(mode, placeholder, value)
}

func (m *Model) closeInput() {
	m.inputMode = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) submitInput() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	mode := m.inputMode
	m.closeInput()

	switch mode {
	case inputAdd:
		return m.addItems(value)
	case inputClearConfirm:
		if !strings.EqualFold(value, "yes") {
			m.notice = "Clear cancelled"
			return nil
		}
		return m.clearMode()
	case inputCheck:
		verdict, err := m.store.Check(m.currentMode(), value)
		if err != nil {
			m.err = err
			return nil
		}
		m.verdict = &verdict
		return nil
	case inputManualBackup:
		m.busy = true
		return createBackupCmd(m.opts.StorePath, m.store.Snapshot(), value, m.opts.BackupKeep, true)
	}

	if value == "" {
		m.err = fmt.Errorf("path cannot be empty")
		return nil
	}
	path, _, _ := expandUserPath(value)

	switch mode {
	case inputSave:
		if m.opts.DryRun {
			m.setDryRunNotice("save store to " + path)
			return nil
		}
		m.busy = true
		return saveStoreCmd(path, m.store.Snapshot())
	case inputLoad:
		if m.opts.DryRun {
			m.setDryRunNotice("load store from " + path)
			return nil
		}
		m.busy = true
		return tea.Batch(m.maybeBackup("before load"), loadStoreCmd(path))
	case inputExport:
		if _, err := codec.FormatFromPath(path); err != nil {
			m.err = err
			return nil
		}
		if m.opts.DryRun {
			m.setDryRunNotice("export " + m.currentMode() + " to " + path)
			return nil
		}
		m.busy = true
		return exportCmd(path, m.currentMode(), m.currentLists())
	case inputImport:
		if _, err := codec.FormatFromPath(path); err != nil {
			m.err = err
			return nil
		}
		if m.opts.DryRun {
			m.setDryRunNotice("import " + path + " into " + m.currentMode())
			return nil
		}
		m.busy = true
		return tea.Batch(m.maybeBackup("before import"), importCmd(m.currentMode(), path))
	}
	return nil
}

func (m *Model) completePath() {
	raw := m.input.Value()
	if raw == "" {
		m.notice = "Type a path, then press Tab"
		return
	}

	expanded, useTilde, home := expandUserPath(raw)
	dir, base := splitPath(expanded)

	entries, err := os.ReadDir(dir)
	if err != nil {
		m.err = err
		return
	}

	type cand struct {
		name  string
		isDir bool
	}
	cands := make([]cand, 0)
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, base) {
			cands = append(cands, cand{name: name, isDir: entry.IsDir()})
		}
	}
	if len(cands) == 0 {
		m.notice = "No matches"
		return
	}

	sort.Slice(cands, func(i, j int) bool { return cands[i].name < cands[j].name })
	names := make([]string, 0, len(cands))
	for _, c := range cands {
		if c.isDir {
			names = append(names, c.name+string(os.PathSeparator))
		} else {
			names = append(names, c.name)
		}
	}

	prefix := commonPrefix(names)
	if prefix == "" {
		prefix = base
	}

	newValue := joinPath(dir, prefix)
	if strings.HasSuffix(prefix, string(os.PathSeparator)) && !strings.HasSuffix(newValue, string(os.PathSeparator)) {
		newValue += string(os.PathSeparator)
	}
	if useTilde && home != "" && strings.HasPrefix(newValue, home) {
		newValue = "~" + strings.TrimPrefix(newValue, home)
	}

	m.input.SetValue(newValue)
	m.input.CursorEnd()

	if len(names) > 1 && prefix == base {
		m.notice = "Matches: " + strings.Join(limitList(names, 8), "  ")
	} else {
		m.notice = ""
	}
}

func expandUserPath(path string) (expanded string, useTilde bool, home string) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			if path == "~" {
				return h, true, h
			}
			return filepath.Join(h, strings.TrimPrefix(path, "~/")), true, h
		}
	}
	return path, false, ""
}

func splitPath(path string) (dir string, base string) {
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		return path, ""
	}
	dir = filepath.Dir(path)
	if dir == "" {
		dir = "."
	}
	return dir, filepath.Base(path)
}

func joinPath(dir, base string) string {
	if dir == "." || dir == "" {
		return base
	}
	return filepath.Join(dir, base)
}

func commonPrefix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := items[0]
	for _, item := range items[1:] {
		for !strings.HasPrefix(item, prefix) {
			if prefix == "" {
				return ""
			}
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func limitList(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	out := append([]string{}, items[:max]...)
	out = append(out, "...")
	return out
}
