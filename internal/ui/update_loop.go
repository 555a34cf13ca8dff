package ui

import (
	"fmt"

	"contentfilter/internal/filter"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.focus == focusModes {
			m.focus = focusMain
		} else {
			m.focus = focusModes
		}
		return m, nil
	case "1":
		m.kind = filter.Whitelist
		return m, nil
	case "2":
		m.kind = filter.Blacklist
		return m, nil
	case "h", "left", "l", "right":
		m.toggleKind()
		return m, nil
	case "j", "down":
		if m.focus == focusModes {
			m.selectMode(m.selected + 1)
			return m, nil
		}
		m.moveMainSelection(1)
		return m, nil
	case "k", "up":
		if m.focus == focusModes {
			m.selectMode(m.selected - 1)
			return m, nil
		}
		m.moveMainSelection(-1)
		return m, nil
	case "g", "home":
		m.setCurrentIndex(0)
		return m, nil
	case "G", "end":
		m.setCurrentIndex(len(m.visibleItems(m.kind)) - 1)
		m.clampSelections()
		return m, nil
	case "S":
		m.splitView = !m.splitView
		return m, nil
	case "?":
		m.helpMode = !m.helpMode
		if m.helpMode {
			m.statsMode = false
			m.verdict = nil
			m.inputMode = inputNone
			m.input.Blur()
		}
		return m, nil
	case "esc":
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.input.SetValue("")
			m.notice = "Search cleared"
		}
		return m, nil
	case "a":
		return m, m.startAddInput()
	case "d", "delete":
		return m, m.removeSelected()
	case "/":
		return m, m.startSearch()
	case "o":
		return m, m.sortLists(filter.Ascending)
	case "O":
		return m, m.sortLists(filter.Descending)
	case "C":
		return m, m.startClearConfirm()
	case "c":
		return m, m.startCheck()
	case "i":
		stats, err := m.store.Stats(m.currentMode())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.stats = stats
		m.statsMode = true
		return m, nil
	case "y":
		item, ok := m.selectedItem()
		if !ok {
			m.notice = "Nothing selected"
			return m, nil
		}
		return m, copyCmd(item)
	case "ctrl+s":
		return m, m.startPathInput(inputSave, "store path (.json)", m.opts.StorePath)
	case "ctrl+o":
		return m, m.startPathInput(inputLoad, "store path (.json)", m.opts.StorePath)
	case "ctrl+e":
		return m, m.startPathInput(inputExport, "export path (.csv or .txt)", m.defaultExportPath())
	case "alt+i":
		return m, m.startPathInput(inputImport, "import path (.csv or .txt)", "")
	case "ctrl+b":
		return m, m.startManualBackup()
	case "ctrl+r":
		m.backupMode = true
		m.backupItems = nil
		m.backupIndex = 0
		m.backupPreview = ""
		m.backupErr = nil
		m.busy = true
		return m, listBackupsCmd(m.opts.StorePath)
	case "ctrl+z":
		return m, m.undo()
	case "ctrl+y":
		return m, m.redo()
	case "ctrl+l":
		m.err = nil
		m.notice = ""
		return m, nil
	default:
		if len(msg.Runes) > 0 {
			m.notice = fmt.Sprintf("Unknown key %q (press ? for help)", msg.String())
		}
		return m, nil
	}
}
