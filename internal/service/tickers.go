package service

import "strings"

// ParseCustomTickers splits a comma separated list typed by the user.
// Entries are trimmed and upper-cased; empties and repeats are dropped and
// first-seen order is kept.
func ParseCustomTickers(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, part := range strings.Split(text, ",") {
		t := strings.ToUpper(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// MergeTickers appends the entries of extra missing from selected. Both lists
// are trimmed and upper-cased before comparison.
func MergeTickers(selected, extra []string) []string {
	out := make([]string, 0, len(selected)+len(extra))
	seen := map[string]struct{}{}
	for _, list := range [][]string{selected, extra} {
		for _, t := range list {
			t = strings.ToUpper(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
