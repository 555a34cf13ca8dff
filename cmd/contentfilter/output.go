package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"contentfilter/internal/filter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

func printItems(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(items))
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}

func printStats(w io.Writer, stats filter.Stats) {
	fmt.Fprintf(w, "%s\n", stats.Mode)
	for _, kind := range filter.Kinds {
		s := stats.Whitelist
		if kind == filter.Blacklist {
			s = stats.Blacklist
		}
		fmt.Fprintf(w, "%s:\n", kind.Label())
		fmt.Fprintf(w, "  Items:          %d\n", s.Count)
		fmt.Fprintf(w, "  Average length: %.1f\n", s.AverageLength)
		fmt.Fprintf(w, "  Shortest:       %s\n", filter.OrNA(s.Shortest))
		fmt.Fprintf(w, "  Longest:        %s\n", filter.OrNA(s.Longest))
	}
}

func printVerdict(w io.Writer, v filter.Verdict) {
	fmt.Fprintf(w, "%s (%s, %d words)\n", v.Status, v.Mode, v.WordsTotal)
	fmt.Fprintf(w, "Blocked words: %s\n", orNone(v.Blocked))
	fmt.Fprintf(w, "Allowed words: %s\n", orNone(v.Allowed))
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
