package ui

import (
	"fmt"
	"log/slog"

	"contentfilter/internal/codec"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if next, cmd, handled := m.handleHelpMode(msg); handled {
		return next, cmd
	}

	if next, cmd, handled := m.handleOverlayMode(msg); handled {
		return next, cmd
	}

	if next, cmd, handled := m.handleBackupMode(msg); handled {
		return next, cmd
	}

	if next, cmd, handled := m.handleInputMode(msg); handled {
		return next, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case storeSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = fmt.Errorf("save %s: %w", msg.path, msg.err)
			return m, nil
		}
		m.err = nil
		m.dirty = false
		m.opts.StorePath = msg.path
		m.notice = "Saved store to " + msg.path
		return m, nil
	case storeLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = fmt.Errorf("load %s: %w", msg.path, msg.err)
			return m, nil
		}
		m.store.Replace(msg.data)
		m.opts.StorePath = msg.path
		m.resetAfterReplace()
		m.notice = "Loaded store from " + msg.path
		return m, nil
	case exportedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = fmt.Errorf("export %s: %w", msg.path, msg.err)
			return m, nil
		}
		m.err = nil
		m.notice = fmt.Sprintf("Exported %s to %s", msg.mode, msg.path)
		return m, nil
	case importedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = fmt.Errorf("import %s: %w", msg.path, msg.err)
			return m, nil
		}
		before, err := m.store.Lists(msg.mode)
		if err != nil {
			m.err = err
			return m, nil
		}
		added, err := codec.Merge(m.store, msg.mode, msg.lists)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.notice = fmt.Sprintf("Imported %d new items into %s from %s", added, msg.mode, msg.path)
		if added == 0 {
			return m, nil
		}
		m.recordUndo("import "+msg.path, msg.mode, before)
		return m, m.afterMutation()
	case backupCreatedMsg:
		if msg.manual {
			m.busy = false
		}
		if msg.err != nil {
			if !msg.manual {
				m.backupDone = false
			}
			m.err = fmt.Errorf("backup failed: %w", msg.err)
			return m, nil
		}
		slog.Debug("backup created", "path", msg.item.Path)
		if msg.manual {
			m.err = nil
			m.notice = "Backup created: " + msg.item.Summary()
		}
		return m, nil
	case backupsMsg:
		m.busy = false
		if !m.backupMode {
			return m, nil
		}
		if msg.err != nil {
			m.backupErr = msg.err
			return m, nil
		}
		m.backupErr = nil
		m.backupItems = msg.items
		m.backupIndex = 0
		m.backupPreview = ""
		if len(m.backupItems) == 0 {
			return m, nil
		}
		return m, previewBackupCmd(m.backupItems[0], m.store.Snapshot())
	case backupPreviewMsg:
		if !m.backupMode || len(m.backupItems) == 0 || m.backupIndex >= len(m.backupItems) {
			return m, nil
		}
		if m.backupItems[m.backupIndex].Path != msg.path {
			return m, nil
		}
		if msg.err != nil {
			m.backupPreview = "Preview unavailable: " + msg.err.Error()
			return m, nil
		}
		m.backupPreview = msg.preview
		return m, nil
	case restoreMsg:
		m.busy = false
		if msg.err != nil {
			m.err = fmt.Errorf("restore failed: %w", msg.err)
			return m, nil
		}
		m.store.Replace(msg.data)
		m.resetAfterReplace()
		m.backupMode = false
		m.backupItems = nil
		m.backupPreview = ""
		m.notice = "Restored backup from " + msg.item.Time.Format("2006-01-02 15:04:05")
		return m, nil
	case clipboardMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("clipboard: %w", msg.err)
			return m, nil
		}
		m.err = nil
		m.notice = fmt.Sprintf("Copied %q", msg.text)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}
