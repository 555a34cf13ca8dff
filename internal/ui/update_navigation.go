package ui

import (
	"contentfilter/internal/filter"
)

func (m *Model) selectMode(index int) {
	if len(m.modes) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(m.modes) {
		index = len(m.modes) - 1
	}
	if index == m.selected {
		return
	}
	m.selected = index
	m.whiteIndex = 0
	m.blackIndex = 0
	m.err = nil
	m.notice = ""
}

func (m *Model) toggleKind() {
	if m.kind == filter.Whitelist {
		m.kind = filter.Blacklist
		return
	}
	m.kind = filter.Whitelist
}

// visibleItems is the list of kind for the current mode after the search
// filter.
func (m *Model) visibleItems(kind filter.ListKind) []string {
	return filter.MatchItems(m.currentLists().Get(kind), m.searchQuery)
}

func (m *Model) indexFor(kind filter.ListKind) int {
	if kind == filter.Blacklist {
		return m.blackIndex
	}
	return m.whiteIndex
}

func (m *Model) currentIndex() int {
	return m.indexFor(m.kind)
}

func (m *Model) setCurrentIndex(index int) {
	if index < 0 {
		index = 0
	}
	if m.kind == filter.Blacklist {
		m.blackIndex = index
		return
	}
	m.whiteIndex = index
}

func (m *Model) moveMainSelection(delta int) {
	items := m.visibleItems(m.kind)
	if len(items) == 0 {
		return
	}
	next := m.currentIndex() + delta
	if next < 0 {
		next = 0
	}
	if next >= len(items) {
		next = len(items) - 1
	}
	m.setCurrentIndex(next)
}

func (m *Model) clampSelections() {
	if n := len(m.visibleItems(filter.Whitelist)); m.whiteIndex >= n {
		m.whiteIndex = max(n-1, 0)
	}
	if n := len(m.visibleItems(filter.Blacklist)); m.blackIndex >= n {
		m.blackIndex = max(n-1, 0)
	}
	if m.selected >= len(m.modes) {
		m.selected = 0
	}
}

func (m *Model) selectedItem() (string, bool) {
	items := m.visibleItems(m.kind)
	idx := m.currentIndex()
	if idx < 0 || idx >= len(items) {
		return "", false
	}
	return items[idx], true
}

// selectItem moves the cursor onto item in the current list, if visible.
func (m *Model) selectItem(item string) {
	for i, candidate := range m.visibleItems(m.kind) {
		if candidate == item {
			m.setCurrentIndex(i)
			return
		}
	}
}

func (m *Model) refreshModes() {
	current := m.currentMode()
	m.modes = m.store.Modes()
	m.selected = 0
	for i, mode := range m.modes {
		if mode == current {
			m.selected = i
			break
		}
	}
	m.clampSelections()
}

func (m *Model) resetAfterReplace() {
	m.refreshModes()
	m.undoStack = nil
	m.redoStack = nil
	m.dirty = false
	m.err = nil
	m.whiteIndex = 0
	m.blackIndex = 0
}

func indexOfMode(modes []string, mode string) int {
	for i, name := range modes {
		if name == mode {
			return i
		}
	}
	return -1
}
