package ui

import (
	"contentfilter/internal/backup"
	"contentfilter/internal/codec"
	"contentfilter/internal/filter"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type storeSavedMsg struct {
	path string
	err  error
}

type storeLoadedMsg struct {
	path string
	data filter.Data
	err  error
}

type exportedMsg struct {
	path string
	mode string
	err  error
}

type importedMsg struct {
	mode  string
	path  string
	lists filter.Lists
	err   error
}

type backupCreatedMsg struct {
	item   backup.Backup
	manual bool
	err    error
}

type backupsMsg struct {
	items []backup.Backup
	err   error
}

type backupPreviewMsg struct {
	path    string
	preview string
	err     error
}

type restoreMsg struct {
	item backup.Backup
	data filter.Data
	err  error
}

type clipboardMsg struct {
	text string
	err  error
}

var clipboardWrite = clipboard.WriteAll

func saveStoreCmd(path string, data filter.Data) tea.Cmd {
	return func() tea.Msg {
		err := codec.SaveStore(path, data)
		return storeSavedMsg{path: path, err: err}
	}
}

func loadStoreCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := codec.LoadStore(path)
		return storeLoadedMsg{path: path, data: data, err: err}
	}
}

func exportCmd(path, mode string, lists filter.Lists) tea.Cmd {
	return func() tea.Msg {
		err := codec.ExportFile(path, mode, lists)
		return exportedMsg{path: path, mode: mode, err: err}
	}
}

// importCmd reads path for mode, the mode selected when the import started.
func importCmd(mode, path string) tea.Cmd {
	return func() tea.Msg {
		lists, err := codec.ImportFile(path)
		return importedMsg{mode: mode, path: path, lists: lists, err: err}
	}
}

// createBackupCmd writes data, captured by the caller before mutating.
func createBackupCmd(storePath string, data filter.Data, description string, keep int, manual bool) tea.Cmd {
	return func() tea.Msg {
		item, err := backup.Create(storePath, data, description, keep)
		return backupCreatedMsg{item: item, manual: manual, err: err}
	}
}

func listBackupsCmd(storePath string) tea.Cmd {
	return func() tea.Msg {
		items, err := backup.List(storePath)
		return backupsMsg{items: items, err: err}
	}
}

func previewBackupCmd(item backup.Backup, current filter.Data) tea.Cmd {
	return func() tea.Msg {
		preview, err := buildBackupPreview(item, current)
		return backupPreviewMsg{path: item.Path, preview: preview, err: err}
	}
}

func restoreBackupCmd(item backup.Backup, storePath string, current filter.Data, keep int) tea.Cmd {
	return func() tea.Msg {
		data, err := backup.Restore(item, storePath, current, keep)
		return restoreMsg{item: item, data: data, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboardWrite(text)
		return clipboardMsg{text: text, err: err}
	}
}
