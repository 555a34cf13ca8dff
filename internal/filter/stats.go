package filter

import "unicode/utf8"

// ListStats summarizes one list.
type ListStats struct {
	Count         int     `json:"count"`
	AverageLength float64 `json:"average_length"`
	Shortest      string  `json:"shortest,omitempty"`
	Longest       string  `json:"longest,omitempty"`
}

type Stats struct {
	Mode      string    `json:"mode"`
	Whitelist ListStats `json:"whitelist"`
	Blacklist ListStats `json:"blacklist"`
}

func (s *Store) Stats(mode string) (Stats, error) {
	lists, err := s.Lists(mode)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Mode:      mode,
		Whitelist: computeListStats(lists.Whitelist),
		Blacklist: computeListStats(lists.Blacklist),
	}, nil
}

// computeListStats measures length in characters. Ties on length pick the
// lexicographically smallest item as shortest and the largest as longest.
func computeListStats(items []string) ListStats {
	if len(items) == 0 {
		return ListStats{}
	}
	total := 0
	shortest, longest := items[0], items[0]
	minLen := utf8.RuneCountInString(shortest)
	maxLen := minLen
	for _, item := range items {
		n := utf8.RuneCountInString(item)
		total += n
		if n < minLen || (n == minLen && item < shortest) {
			shortest, minLen = item, n
		}
		if n > maxLen || (n == maxLen && item > longest) {
			longest, maxLen = item, n
		}
	}
	return ListStats{
		Count:         len(items),
		AverageLength: float64(total) / float64(len(items)),
		Shortest:      shortest,
		Longest:       longest,
	}
}

// OrNA renders an empty statistic as "N/A".
func OrNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
