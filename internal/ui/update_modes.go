package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleHelpMode(msg tea.Msg) (Model, tea.Cmd, bool) {
	if !m.helpMode {
		return m, nil, false
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	switch key.String() {
	case "esc", "?":
		m.helpMode = false
		return m, nil, true
	case "ctrl+c", "q":
		return m, tea.Quit, true
	default:
		return m, nil, true
	}
}

// handleOverlayMode closes the stats and check result panels.
func (m Model) handleOverlayMode(msg tea.Msg) (Model, tea.Cmd, bool) {
	if !m.statsMode && m.verdict == nil {
		return m, nil, false
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc", "enter", "q", "i":
		m.statsMode = false
		m.verdict = nil
		return m, nil, true
	case "c":
		if m.verdict != nil {
			m.verdict = nil
			return m, m.startCheck(), true
		}
		return m, nil, true
	default:
		return m, nil, true
	}
}

func (m Model) handleBackupMode(msg tea.Msg) (Model, tea.Cmd, bool) {
	if !m.backupMode {
		return m, nil, false
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc", "ctrl+r", "q":
		m.backupMode = false
		m.backupItems = nil
		m.backupPreview = ""
		m.backupErr = nil
		m.busy = false
		return m, nil, true
	case "j", "down":
		if len(m.backupItems) > 0 && m.backupIndex < len(m.backupItems)-1 {
			m.backupIndex++
			m.backupPreview = ""
			return m, previewBackupCmd(m.backupItems[m.backupIndex], m.store.Snapshot()), true
		}
		return m, nil, true
	case "k", "up":
		if len(m.backupItems) > 0 && m.backupIndex > 0 {
			m.backupIndex--
			m.backupPreview = ""
			return m, previewBackupCmd(m.backupItems[m.backupIndex], m.store.Snapshot()), true
		}
		return m, nil, true
	case "enter":
		if len(m.backupItems) == 0 || m.backupIndex >= len(m.backupItems) {
			return m, nil, true
		}
		item := m.backupItems[m.backupIndex]
		if m.opts.DryRun {
			m.setDryRunNotice("restore backup from " + item.Time.Format("2006-01-02 15:04:05"))
			return m, nil, true
		}
		m.err = nil
		m.busy = true
		return m, restoreBackupCmd(item, m.opts.StorePath, m.store.Snapshot(), m.opts.BackupKeep), true
	default:
		return m, nil, true
	}
}

func (m Model) handleInputMode(msg tea.Msg) (Model, tea.Cmd, bool) {
	if m.inputMode == inputNone {
		return m, nil, false
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	if key.String() == "tab" {
		switch m.inputMode {
		case inputExport, inputImport, inputSave, inputLoad:
			m.completePath()
			return m, nil, true
		}
	}

	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		if m.inputMode == inputSearch {
			m.searchQuery = ""
		}
		if m.inputMode == inputClearConfirm {
			m.notice = "Clear cancelled"
		}
		m.closeInput()
		return m, nil, true
	case "enter":
		if m.inputMode == inputSearch {
			m.inputMode = inputNone
			m.input.Blur()
			return m, nil, true
		}
		return m, m.submitInput(), true
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	switch m.inputMode {
	case inputExport, inputImport, inputSave, inputLoad:
		m.notice = ""
	case inputSearch:
		m.searchQuery = m.input.Value()
		m.clampSelections()
	}
	return m, cmd, true
}
