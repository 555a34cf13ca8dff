package ui

import (
	"contentfilter/internal/backup"
	"contentfilter/internal/codec"
	"contentfilter/internal/filter"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

type focusArea int

const (
	focusModes focusArea = iota
	focusMain
)

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputSearch
	inputClearConfirm
	inputCheck
	inputExport
	inputImport
	inputSave
	inputLoad
	inputManualBackup
)

// Options carries the command line and config settings of a TUI session.
type Options struct {
	StorePath  string
	ExportDir  string
	BackupKeep int
	Autosave   bool
	SplitView  bool
	DryRun     bool
	NoColor    bool
	// LoadErr is the error from reading the store at startup. The session
	// starts empty, shows it and keeps autosave off so the unreadable file
	// is only replaced by an explicit save.
	LoadErr error
}

type Model struct {
	store *filter.Store
	opts  Options

	modes    []string
	selected int
	focus    focusArea

	kind        filter.ListKind
	whiteIndex  int
	blackIndex  int
	splitView   bool
	searchQuery string

	helpMode  bool
	statsMode bool
	stats     filter.Stats
	verdict   *filter.Verdict

	backupMode    bool
	backupItems   []backup.Backup
	backupIndex   int
	backupPreview string
	backupErr     error
	backupDone    bool

	undoStack []undoAction
	redoStack []undoAction
	dirty     bool
	busy      bool
	notice    string
	err       error

	width     int
	height    int
	spinner   spinner.Model
	input     textinput.Model
	inputMode inputMode
}

// NewModel builds the TUI state over store. The store is shared and mutated
// in place.
func NewModel(store *filter.Store, opts Options) Model {
	if opts.StorePath == "" {
		opts.StorePath = codec.DefaultStorePath
	}
	if opts.BackupKeep == 0 {
		opts.BackupKeep = backup.DefaultKeep
	}
	if opts.LoadErr != nil {
		opts.Autosave = false
	}

	sp := spinner.New()
	sp.Spinner = spinner.Line

	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = 40
	ti.Prompt = ""

	return Model{
		store:     store,
		opts:      opts,
		modes:     store.Modes(),
		focus:     focusModes,
		kind:      filter.Whitelist,
		splitView: opts.SplitView,
		spinner:   sp,
		input:     ti,
		inputMode: inputNone,
		err:       opts.LoadErr,
	}
}

func (m *Model) currentMode() string {
	if len(m.modes) == 0 || m.selected < 0 || m.selected >= len(m.modes) {
		return ""
	}
	return m.modes[m.selected]
}

func (m *Model) currentLists() filter.Lists {
	lists, err := m.store.Lists(m.currentMode())
	if err != nil {
		return filter.Lists{}
	}
	return lists
}
