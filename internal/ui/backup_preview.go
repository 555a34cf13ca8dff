package ui

import (
	"fmt"
	"sort"
	"strings"

	"contentfilter/internal/backup"
	"contentfilter/internal/filter"
)

func buildBackupPreview(item backup.Backup, current filter.Data) (string, error) {
	data, err := backup.Load(item)
	if err != nil {
		return "", err
	}

	white, black := 0, 0
	for _, lists := range data {
		white += len(lists.Whitelist)
		black += len(lists.Blacklist)
	}
	lines := []string{
		fmt.Sprintf("Backup contains: modes %d, whitelist items %d, blacklist items %d", len(data), white, black),
	}

	names := make([]string, 0, len(data)+len(current))
	seen := make(map[string]struct{})
	for _, set := range []filter.Data{current, data} {
		for name := range set {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)

	changed := false
	for _, name := range names {
		cur, bak := current[name], data[name]
		wAdd, wDel := diffStringCounts(cur.Whitelist, bak.Whitelist)
		bAdd, bDel := diffStringCounts(cur.Blacklist, bak.Blacklist)
		if wAdd+wDel+bAdd+bDel == 0 {
			continue
		}
		changed = true
		lines = append(lines, fmt.Sprintf("%s: whitelist +%d -%d, blacklist +%d -%d", name, wAdd, wDel, bAdd, bDel))
	}
	if !changed {
		lines = append(lines, "No differences from the current store")
	}
	return strings.Join(lines, "\n"), nil
}

// diffStringCounts counts items restoring backup would add to and delete
// from current.
func diffStringCounts(current, backup []string) (add int, del int) {
	cur := make(map[string]struct{}, len(current))
	for _, v := range current {
		cur[v] = struct{}{}
	}
	bak := make(map[string]struct{}, len(backup))
	for _, v := range backup {
		bak[v] = struct{}{}
	}
	for v := range bak {
		if _, ok := cur[v]; !ok {
			add++
		}
	}
	for v := range cur {
		if _, ok := bak[v]; !ok {
			del++
		}
	}
	return add, del
}
