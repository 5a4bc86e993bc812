package fofa

import "sort"

// StatEntry is one row of a field distribution.
type StatEntry struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// TopStats orders a distribution by count, highest first, and keeps at most
// limit entries. A limit of zero or less keeps everything. Ties are ordered by
// value so that output is reproducible; callers must not rely on it.
func TopStats(dist map[string]int, limit int) []StatEntry {
	entries := make([]StatEntry, 0, len(dist))
	for value, count := range dist {
		entries = append(entries, StatEntry{Value: value, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}

		return entries[i].Value < entries[j].Value
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}
