package ui

import (
	"fmt"
	"slices"
	"strings"

	"contentfilter/internal/filter"
	"contentfilter/internal/validation"

	tea "github.com/charmbracelet/bubbletea"
)

const undoLimit = 20

// undoAction restores one mode to the lists it had before a mutation.
type undoAction struct {
	label  string
	mode   string
	before filter.Lists
	after  filter.Lists
}

func (m *Model) setDryRunNotice(action string) {
	m.err = nil
	m.notice = "DRY RUN: would " + action
}

// maybeBackup snapshots the store once per session, before the first
// destructive change.
func (m *Model) maybeBackup(description string) tea.Cmd {
	if m.backupDone || m.opts.DryRun || m.opts.StorePath == "" {
		return nil
	}
	m.backupDone = true
	return createBackupCmd(m.opts.StorePath, m.store.Snapshot(), description, m.opts.BackupKeep, false)
}

// afterMutation marks the store dirty and saves it when autosave is on.
func (m *Model) afterMutation() tea.Cmd {
	m.dirty = true
	m.clampSelections()
	if !m.opts.Autosave {
		return nil
	}
	m.busy = true
	return saveStoreCmd(m.opts.StorePath, m.store.Snapshot())
}

func (m *Model) recordUndo(label, mode string, before filter.Lists) {
	after, err := m.store.Lists(mode)
	if err != nil {
		return
	}
	if listsEqual(before, after) {
		return
	}
	m.pushUndo(undoAction{label: label, mode: mode, before: before, after: after}, true)
}

func (m *Model) pushUndo(action undoAction, clearRedo bool) {
	if len(m.undoStack) >= undoLimit {
		m.undoStack = m.undoStack[1:]
	}
	m.undoStack = append(m.undoStack, action)
	if clearRedo {
		m.redoStack = nil
	}
}

func (m *Model) pushRedo(action undoAction) {
	if len(m.redoStack) >= undoLimit {
		m.redoStack = m.redoStack[1:]
	}
	m.redoStack = append(m.redoStack, action)
}

func (m *Model) undo() tea.Cmd {
	if len(m.undoStack) == 0 {
		m.notice = "Nothing to undo"
		return nil
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	if err := m.store.SetLists(action.mode, action.before); err != nil {
		m.err = err
		return nil
	}
	m.pushRedo(action)
	m.focusMode(action.mode)
	m.err = nil
	m.notice = "Undid " + action.label
	return m.afterMutation()
}

func (m *Model) redo() tea.Cmd {
	if len(m.redoStack) == 0 {
		m.notice = "Nothing to redo"
		return nil
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	if err := m.store.SetLists(action.mode, action.after); err != nil {
		m.err = err
		return nil
	}
	m.pushUndo(action, false)
	m.focusMode(action.mode)
	m.err = nil
	m.notice = "Redid " + action.label
	return m.afterMutation()
}

func (m *Model) focusMode(mode string) {
	if idx := indexOfMode(m.modes, mode); idx >= 0 {
		m.selected = idx
	}
}

// addItems adds every comma or newline separated value of raw to the current
// list. Nothing is added when one of the values is invalid.
func (m *Model) addItems(raw string) tea.Cmd {
	items := validation.SplitItems(raw)
	if len(items) == 0 {
		m.err = filter.ErrEmptyItem
		return nil
	}
	for _, item := range items {
		if err := validation.ValidateItem(item); err != nil {
			m.err = fmt.Errorf("%q: %w", item, err)
			return nil
		}
	}
	mode := m.currentMode()
	if m.opts.DryRun {
		m.setDryRunNotice(fmt.Sprintf("add %d item(s) to %s", len(items), m.kind.Label()))
		return nil
	}
	before := m.currentLists()
	added, err := m.store.AddMany(mode, m.kind, items)
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	if added == 0 {
		m.notice = fmt.Sprintf("Already in %s: %s", m.kind.Label(), strings.Join(items, ", "))
		return nil
	}
	m.notice = fmt.Sprintf("Added %d item(s) to %s", added, m.kind.Label())
	if added < len(items) {
		m.notice += fmt.Sprintf(" (%d duplicate)", len(items)-added)
	}
	m.recordUndo("add to "+strings.ToLower(m.kind.Label()), mode, before)
	cmd := m.afterMutation()
	m.selectItem(items[len(items)-1])
	return cmd
}

func (m *Model) removeSelected() tea.Cmd {
	item, ok := m.selectedItem()
	if !ok {
		m.notice = "Select an item to delete"
		return nil
	}
	mode := m.currentMode()
	if m.opts.DryRun {
		m.setDryRunNotice(fmt.Sprintf("remove %q from %s", item, m.kind.Label()))
		return nil
	}
	before := m.currentLists()
	if err := m.store.Remove(mode, m.kind, item); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.notice = fmt.Sprintf("Removed %q from %s", item, m.kind.Label())
	m.recordUndo("remove "+item, mode, before)
	return m.afterMutation()
}

func (m *Model) sortLists(dir filter.Direction) tea.Cmd {
	mode := m.currentMode()
	if m.opts.DryRun {
		m.setDryRunNotice("sort " + mode + " " + dir.String())
		return nil
	}
	before := m.currentLists()
	if err := m.store.Sort(mode, dir); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.notice = "Sorted lists " + dir.String()
	m.recordUndo("sort "+dir.String(), mode, before)
	if listsEqual(before, m.currentLists()) {
		return nil
	}
	return m.afterMutation()
}

func (m *Model) clearMode() tea.Cmd {
	mode := m.currentMode()
	if m.opts.DryRun {
		m.setDryRunNotice("clear all lists of " + mode)
		return nil
	}
	backupCmd := m.maybeBackup("before clear")
	before := m.currentLists()
	if err := m.store.Clear(mode); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.notice = "Cleared all lists of " + mode
	m.recordUndo("clear", mode, before)
	return tea.Batch(backupCmd, m.afterMutation())
}

func listsEqual(a, b filter.Lists) bool {
	return slices.Equal(a.Whitelist, b.Whitelist) && slices.Equal(a.Blacklist, b.Blacklist)
}
