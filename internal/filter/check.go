package filter

import (
	"strings"
	"unicode"
)

type Status string

const (
	StatusAllowed Status = "ALLOWED"
	StatusBlocked Status = "BLOCKED"
)

// Verdict is the outcome of checking a block of text against a mode.
type Verdict struct {
	Mode       string   `json:"mode"`
	Status     Status   `json:"status"`
	Blocked    []string `json:"blocked"`
	Allowed    []string `json:"allowed"`
	WordsTotal int      `json:"words_total"`
}

func (v Verdict) IsBlocked() bool {
	return v.Status == StatusBlocked
}

// Check classifies text as BLOCKED when any of its words is on the
// blacklist of mode. Comparison is exact after lowercasing both sides.
// Whitelisted words are reported but never change the status.
func (s *Store) Check(mode, text string) (Verdict, error) {
	lists, err := s.Lists(mode)
	if err != nil {
		return Verdict{}, err
	}
	return checkWords(mode, lists, Words(text)), nil
}

func checkWords(mode string, lists Lists, words []string) Verdict {
	black := lowerSet(lists.Blacklist)
	white := lowerSet(lists.Whitelist)

	v := Verdict{
		Mode:       mode,
		Status:     StatusAllowed,
		Blocked:    []string{},
		Allowed:    []string{},
		WordsTotal: len(words),
	}
	seenBlocked := make(map[string]struct{})
	seenAllowed := make(map[string]struct{})
	for _, w := range words {
		if _, ok := black[w]; ok {
			if _, dup := seenBlocked[w]; !dup {
				seenBlocked[w] = struct{}{}
				v.Blocked = append(v.Blocked, w)
			}
			continue
		}
		if _, ok := white[w]; ok {
			if _, dup := seenAllowed[w]; !dup {
				seenAllowed[w] = struct{}{}
				v.Allowed = append(v.Allowed, w)
			}
		}
	}
	if len(v.Blocked) > 0 {
		v.Status = StatusBlocked
	}
	return v
}

// Words splits text into lowercased words. Apostrophes and hyphens are kept
// inside words; every other non letter or digit separates them.
func Words(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-')
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'-")
		if f == "" {
			continue
		}
		out = append(out, strings.ToLower(f))
	}
	return out
}

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}
