package ui

import (
	"fmt"
	"strings"

	"contentfilter/internal/filter"
)

var helpLines = []string{
	"Navigation",
	"  tab        switch focus between modes and lists",
	"  j/k        move selection",
	"  h/l 1/2    whitelist / blacklist",
	"  g/G        first / last item",
	"  S          toggle split view",
	"",
	"Lists",
	"  a          add items (comma separated)",
	"  d          delete selected item",
	"  y          copy selected item",
	"  /          search, esc clears",
	"  o/O        sort ascending / descending",
	"  C          clear all lists of the mode",
	"  ctrl+z/y   undo / redo",
	"",
	"Tools",
	"  c          check text against the mode",
	"  i          statistics",
	"  ctrl+e     export mode (.csv/.txt)",
	"  alt+i      import into mode (.csv/.txt)",
	"  ctrl+s     save store",
	"  ctrl+o     load store",
	"  ctrl+b     create backup",
	"  ctrl+r     browse and restore backups",
	"",
	"  ?          close help",
}

func renderHelp() string {
	return titleStyle.Render("Keys") + "\n\n" + strings.Join(helpLines, "\n")
}

func renderStats(stats filter.Stats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Statistics"))
	b.WriteString("\n\n")
	for _, kind := range filter.Kinds {
		s := stats.Whitelist
		if kind == filter.Blacklist {
			s = stats.Blacklist
		}
		b.WriteString(titleStyle.Render(kind.Label()))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Items:          %d\n", s.Count)
		fmt.Fprintf(&b, "  Average length: %.1f\n", s.AverageLength)
		fmt.Fprintf(&b, "  Shortest:       %s\n", filter.OrNA(s.Shortest))
		fmt.Fprintf(&b, "  Longest:        %s\n\n", filter.OrNA(s.Longest))
	}
	b.WriteString(dimStyle.Render("esc to close"))
	return b.String()
}

func renderVerdict(v filter.Verdict) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Check result"))
	b.WriteString("\n\n")
	if v.IsBlocked() {
		b.WriteString(blockedStyle.Render(string(v.Status)))
	} else {
		b.WriteString(allowedStyle.Render(string(v.Status)))
	}
	fmt.Fprintf(&b, "  (%d words checked)\n\n", v.WordsTotal)
	b.WriteString("Blocked words: " + joinOrNone(v.Blocked) + "\n")
	b.WriteString("Allowed words: " + joinOrNone(v.Allowed) + "\n\n")
	b.WriteString(dimStyle.Render("c check again, esc to close"))
	return b.String()
}

func renderBackups(m Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Backups"))
	b.WriteString("\n\n")
	if m.backupErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.backupErr.Error()))
		return b.String()
	}
	if m.busy && m.backupItems == nil {
		b.WriteString(m.spinner.View() + " Loading...")
		return b.String()
	}
	if len(m.backupItems) == 0 {
		b.WriteString(dimStyle.Render("No backups for " + m.opts.StorePath))
		return b.String()
	}
	start, end := listWindow(len(m.backupItems), m.backupIndex, 10)
	for i := start; i < end; i++ {
		line := m.backupItems[i].Summary()
		if i == m.backupIndex {
			b.WriteString("› " + selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")
	if m.backupPreview != "" {
		b.WriteString(m.backupPreview)
		b.WriteString("\n\n")
	}
	b.WriteString(dimStyle.Render("enter restore, esc close"))
	return b.String()
}

func inputLabel(mode inputMode) string {
	switch mode {
	case inputAdd:
		return "Add"
	case inputSearch:
		return "Search"
	case inputClearConfirm:
		return "Confirm clear"
	case inputCheck:
		return "Check"
	case inputExport:
		return "Export to"
	case inputImport:
		return "Import from"
	case inputSave:
		return "Save to"
	case inputLoad:
		return "Load from"
	case inputManualBackup:
		return "Backup"
	default:
		return "Input"
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return 20
	}
	h := m.height - 12
	if h < 3 {
		h = 3
	}
	return h
}

// listWindow returns the [start, end) range of n rows to draw so that index
// stays visible within max rows.
func listWindow(n, index, max int) (int, int) {
	if max <= 0 || n <= max {
		return 0, n
	}
	start := index - max/2
	if start < 0 {
		start = 0
	}
	if start+max > n {
		start = n - max
	}
	return start, start + max
}
