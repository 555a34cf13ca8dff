package ui

import (
	"fmt"
	"strings"

	"contentfilter/internal/filter"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	blockedStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	allowedStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62")).Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("237")).Padding(0, 1)
	inputStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	statusStyle      = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("250")).Padding(0, 1)
	sidebarStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	mainStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

func (m Model) View() string {
	sidebarWidth := 24
	if m.width > 0 {
		if m.width/4 > sidebarWidth {
			sidebarWidth = m.width / 4
		}
		if sidebarWidth > 32 {
			sidebarWidth = 32
		}
	}

	mainWidth := 80
	if m.width > 0 {
		mainWidth = m.width - sidebarWidth - 1
		if mainWidth < 40 {
			mainWidth = 40
		}
	}

	sidebar := renderSidebar(m, sidebarWidth)
	main := renderMain(m, mainWidth)
	content := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)

	status := renderStatus(m)
	return lipgloss.JoinVertical(lipgloss.Left, content, status)
}

func renderSidebar(m Model, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Modes"))
	b.WriteString("\n")

	if len(m.modes) == 0 {
		b.WriteString(dimStyle.Render("No modes"))
		return sidebarStyle.Width(width).Render(b.String())
	}

	for i, mode := range m.modes {
		prefix := "  "
		line := mode
		if i == m.selected {
			prefix = "› "
			if m.focus == focusModes {
				line = selectedStyle.Render(mode)
			} else {
				line = titleStyle.Render(mode)
			}
		}
		b.WriteString(prefix + line + "\n")
	}

	return sidebarStyle.Width(width).Render(b.String())
}

func renderMain(m Model, width int) string {
	var b strings.Builder

	mode := m.currentMode()
	if mode == "" {
		mode = "None"
	}
	header := mode
	if m.dirty {
		header += " *"
	}
	if m.busy {
		header = fmt.Sprintf("%s %s Working...", header, m.spinner.View())
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	if desc := filter.Describe(mode); desc != "" {
		b.WriteString(dimStyle.Render(desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	switch {
	case m.helpMode:
		b.WriteString(renderHelp())
		return mainStyle.Width(width).Render(b.String())
	case m.backupMode:
		b.WriteString(renderBackups(m))
		return mainStyle.Width(width).Render(b.String())
	case m.statsMode:
		b.WriteString(renderStats(m.stats))
		return mainStyle.Width(width).Render(b.String())
	case m.verdict != nil:
		b.WriteString(renderVerdict(*m.verdict))
		return mainStyle.Width(width).Render(b.String())
	}

	if m.splitView {
		colWidth := (width - 6) / 2
		left := renderListColumn(m, filter.Whitelist, colWidth)
		right := renderListColumn(m, filter.Blacklist, colWidth)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	} else {
		b.WriteString(renderTabs(m))
		b.WriteString("\n\n")
		b.WriteString(renderList(m, m.kind))
	}

	if m.inputMode != inputNone {
		b.WriteString("\n\n")
		b.WriteString(renderInput(m))
	}

	return mainStyle.Width(width).Render(b.String())
}

func renderTabs(m Model) string {
	lists := m.currentLists()
	labels := make([]string, 0, len(filter.Kinds))
	for _, kind := range filter.Kinds {
		label := fmt.Sprintf(" %s (%d) ", kind.Label(), len(lists.Get(kind)))
		if kind == m.kind {
			labels = append(labels, tabActiveStyle.Render(label))
		} else {
			labels = append(labels, tabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

func renderListColumn(m Model, kind filter.ListKind, width int) string {
	label := fmt.Sprintf(" %s (%d) ", kind.Label(), len(m.currentLists().Get(kind)))
	if kind == m.kind {
		label = tabActiveStyle.Render(label)
	} else {
		label = tabInactiveStyle.Render(label)
	}
	return lipgloss.NewStyle().Width(width).Render(label + "\n\n" + renderList(m, kind))
}

func renderList(m Model, kind filter.ListKind) string {
	items := m.visibleItems(kind)
	if len(items) == 0 {
		if m.searchQuery != "" {
			return dimStyle.Render("No items match " + fmt.Sprintf("%q", m.searchQuery))
		}
		return dimStyle.Render("No items")
	}

	index := m.indexFor(kind)
	start, end := listWindow(len(items), index, m.listHeight())
	var b strings.Builder
	if start > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		prefix := "  "
		line := items[i]
		if i == index {
			prefix = "› "
			if m.focus == focusMain && kind == m.kind {
				line = selectedStyle.Render(line)
			} else {
				line = titleStyle.Render(line)
			}
		}
		b.WriteString(prefix + line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(items) {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ↓ %d more", len(items)-end)))
	}
	return b.String()
}

func renderInput(m Model) string {
	return inputStyle.Render(inputLabel(m.inputMode)+": ") + m.input.View()
}

func renderStatus(m Model) string {
	parts := make([]string, 0, 4)
	if m.opts.DryRun {
		parts = append(parts, "DRY RUN")
	}
	if m.searchQuery != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.searchQuery))
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	} else {
		parts = append(parts, "a add  d delete  / search  c check  i stats  ? help  q quit")
	}
	return statusStyle.Render(strings.Join(parts, " | "))
}
